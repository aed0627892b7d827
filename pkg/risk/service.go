package risk

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"

	"github.com/aaquiib/Credit-Risk-Modelling/pkg/data"
	"github.com/aaquiib/Credit-Risk-Modelling/pkg/model"
)

// Encoder turns one applicant record into a feature row.
type Encoder interface {
	Fitted() bool
	Width() int
	TransformRecord(r data.Record) ([]float64, error)
}

// Repository persists assessments.
type Repository interface {
	Save(ctx context.Context, a *Assessment) error
	Get(ctx context.Context, id uuid.UUID) (*Assessment, error)
	List(ctx context.Context, limit, offset int) ([]*Assessment, error)
}

// Recorder observes assessment outcomes.
type Recorder interface {
	AssessmentCompleted(label int, elapsed time.Duration)
	AssessmentFailed(kind string)
}

// Assessment is the outcome of classifying one applicant.
type Assessment struct {
	ID        uuid.UUID `json:"id"`
	Applicant Applicant `json:"applicant"`
	Label     int       `json:"label"`
	ProbBad   float64   `json:"prob_bad"`
	ProbGood  float64   `json:"prob_good"`
	Explanation
	CreatedAt time.Time `json:"created_at"`
}

// Service classifies applicants with a fitted encoder and classifier. Both
// are fixed at construction and only read afterwards, so one Service can
// serve concurrent requests.
type Service struct {
	encoder    Encoder
	classifier model.Classifier
	repo       Repository
	recorder   Recorder
	logger     *slog.Logger
	now        func() time.Time
}

type Option func(*Service)

func WithRepository(r Repository) Option { return func(s *Service) { s.repo = r } }
func WithRecorder(r Recorder) Option     { return func(s *Service) { s.recorder = r } }
func WithLogger(l *slog.Logger) Option   { return func(s *Service) { s.logger = l } }
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService checks that enc is fitted and produces rows of the width clf
// was trained on.
func NewService(enc Encoder, clf model.Classifier, opts ...Option) (*Service, error) {
	if enc == nil || !enc.Fitted() {
		return nil, fmt.Errorf("%w: feature transformer is not fitted", model.ErrModelArtifact)
	}
	if clf == nil {
		return nil, fmt.Errorf("%w: no classifier", model.ErrModelArtifact)
	}
	if enc.Width() != clf.NumFeatures() {
		return nil, fmt.Errorf("%w: transformer emits %d features, classifier expects %d",
			model.ErrModelArtifact, enc.Width(), clf.NumFeatures())
	}
	s := &Service{
		encoder:    enc,
		classifier: clf,
		logger:     slog.Default(),
		now:        time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// Assess validates, encodes and classifies a, then stores the result when
// a repository is configured.
func (s *Service) Assess(ctx context.Context, a Applicant) (*Assessment, error) {
	start := s.now()
	out, err := s.assess(ctx, a)
	if err != nil {
		kind := Kind(err)
		if s.recorder != nil {
			s.recorder.AssessmentFailed(kind)
		}
		s.logger.Warn("assessment failed", slog.String("kind", kind), slog.String("error", err.Error()))
		return nil, err
	}
	if s.recorder != nil {
		s.recorder.AssessmentCompleted(out.Label, s.now().Sub(start))
	}
	s.logger.Info("assessment completed",
		slog.String("id", out.ID.String()),
		slog.String("risk_level", out.RiskLevel),
		slog.Float64("prob_good", out.ProbGood),
	)
	return out, nil
}

func (s *Service) assess(ctx context.Context, a Applicant) (*Assessment, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	row, err := s.encoder.TransformRecord(a.Record())
	if err != nil {
		return nil, fmt.Errorf("transform applicant: %w", err)
	}
	X := mat.NewDense(1, len(row), row)
	labels, err := s.classifier.Predict(X)
	if err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}
	proba, err := s.classifier.PredictProba(X)
	if err != nil {
		return nil, fmt.Errorf("predict probability: %w", err)
	}

	out := &Assessment{
		ID:          uuid.New(),
		Applicant:   a,
		Label:       labels[0],
		ProbBad:     proba[0][model.Bad],
		ProbGood:    proba[0][model.Good],
		Explanation: Explain(a, labels[0], proba[0]),
		CreatedAt:   s.now().UTC(),
	}
	if s.repo != nil {
		if err := s.repo.Save(ctx, out); err != nil {
			return nil, fmt.Errorf("save assessment: %w", err)
		}
	}
	return out, nil
}

// Get returns a stored assessment.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Assessment, error) {
	if s.repo == nil {
		return nil, ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

// List returns stored assessments, newest first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*Assessment, error) {
	if s.repo == nil {
		return []*Assessment{}, nil
	}
	return s.repo.List(ctx, limit, offset)
}
