package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aaquiib/Credit-Risk-Modelling/pkg/risk"
	"github.com/aaquiib/Credit-Risk-Modelling/pkg/schema"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Handler serves the assessment endpoints.
type Handler struct {
	svc    *risk.Service
	logger *slog.Logger
}

func NewHandler(svc *risk.Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// CreateAssessment classifies the applicant in the request body.
// POST /api/v1/assessments
func (h *Handler) CreateAssessment(c *gin.Context) {
	var req risk.Applicant
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, ErrorCodeInvalidJSON, "Invalid request payload", gin.H{"reason": err.Error()})
		return
	}
	a, err := h.svc.Assess(c.Request.Context(), req)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	RespondWithSuccess(c, http.StatusCreated, a)
}

// GetAssessment returns one stored assessment.
// GET /api/v1/assessments/:id
func (h *Handler) GetAssessment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondWithError(c, http.StatusBadRequest, ErrorCodeInvalidIDFormat, "Invalid assessment ID format.", gin.H{"id": c.Param("id")})
		return
	}
	a, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	RespondWithSuccess(c, http.StatusOK, a)
}

// ListAssessments pages through stored assessments, newest first.
// GET /api/v1/assessments?limit=&offset=
func (h *Handler) ListAssessments(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", strconv.Itoa(DefaultLimit))
	limit, err := strconv.Atoi(limitStr)
	if err != nil {
		RespondWithError(c, http.StatusBadRequest, ErrorCodeValidation, "Invalid limit parameter: not a number.", gin.H{"limit": limitStr})
		return
	}
	if limit <= 0 {
		limit = DefaultLimit
	} else if limit > MaxLimit {
		limit = MaxLimit
	}

	offsetStr := c.DefaultQuery("offset", "0")
	offset, err := strconv.Atoi(offsetStr)
	if err != nil {
		RespondWithError(c, http.StatusBadRequest, ErrorCodeValidation, "Invalid offset parameter: not a number.", gin.H{"offset": offsetStr})
		return
	}
	if offset < 0 {
		offset = 0
	}

	list, err := h.svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	RespondWithSuccess(c, http.StatusOK, list)
}

// FieldSpec describes one applicant field for form builders.
type FieldSpec struct {
	Name   string   `json:"name"`
	Role   string   `json:"role"`
	Domain []string `json:"domain,omitempty"`
	Min    int      `json:"min,omitempty"`
	Max    int      `json:"max,omitempty"`
}

// Schema lists the applicant fields, their domains and the job levels.
// GET /api/v1/schema
func (h *Handler) Schema(c *gin.Context) {
	var fields []FieldSpec
	for _, f := range schema.Applicant().Fields() {
		fields = append(fields, FieldSpec{Name: f.Name, Role: f.Role.String(), Domain: f.Domain, Min: f.Min, Max: f.Max})
	}
	RespondWithSuccess(c, http.StatusOK, gin.H{
		"fields":     fields,
		"job_levels": schema.JobLevels(),
	})
}
