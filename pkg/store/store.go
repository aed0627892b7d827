package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/aaquiib/Credit-Risk-Modelling/pkg/risk"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// AssessmentRecord is the database row of one assessment.
type AssessmentRecord struct {
	ID              uuid.UUID     `gorm:"type:uuid;primaryKey"`
	Age             int           `gorm:"not null"`
	Sex             string        `gorm:"type:varchar(16);not null"`
	Job             string        `gorm:"type:varchar(1);not null"`
	Housing         string        `gorm:"type:varchar(16);not null"`
	SavingAccounts  string        `gorm:"type:varchar(32);not null"`
	CheckingAccount string        `gorm:"type:varchar(32);not null"`
	CreditAmount    int           `gorm:"not null"`
	Duration        int           `gorm:"not null"`
	Purpose         string        `gorm:"type:varchar(64);not null"`
	Label           int           `gorm:"not null"`
	ProbBad         float64       `gorm:"not null"`
	ProbGood        float64       `gorm:"not null"`
	RiskLevel       string        `gorm:"type:varchar(16);not null"`
	Headline        string        `gorm:"type:varchar(16)"`
	HeadlineLabel   string        `gorm:"type:varchar(64)"`
	Recommendation  string        `gorm:"type:varchar(128)"`
	Factors         []risk.Factor `gorm:"type:text;serializer:json"`
	CreatedAt       time.Time     `gorm:"index"`
}

func (AssessmentRecord) TableName() string { return "assessments" }

// Open connects to the database named by driver and dsn and migrates the schema.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("store: unknown driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("store: connect %s: %w", driver, err)
	}
	if err := db.AutoMigrate(&AssessmentRecord{}); err != nil {
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	slog.Debug("assessment store ready", slog.String("driver", driver))
	return db, nil
}

// Repository implements risk.Repository with GORM.
type Repository struct {
	db *gorm.DB
}

var _ risk.Repository = (*Repository)(nil)

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Save inserts an assessment.
func (r *Repository) Save(ctx context.Context, a *risk.Assessment) error {
	rec := toRecord(a)
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("failed to save assessment: %w", err)
	}
	return nil
}

// Get loads an assessment by ID.
func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*risk.Assessment, error) {
	var rec AssessmentRecord
	err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, risk.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}
	return fromRecord(rec), nil
}

// List returns assessments newest first.
func (r *Repository) List(ctx context.Context, limit, offset int) ([]*risk.Assessment, error) {
	var recs []AssessmentRecord
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	out := make([]*risk.Assessment, len(recs))
	for i, rec := range recs {
		out[i] = fromRecord(rec)
	}
	return out, nil
}

// Ping checks the database connection.
func (r *Repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func toRecord(a *risk.Assessment) AssessmentRecord {
	return AssessmentRecord{
		ID:              a.ID,
		Age:             a.Applicant.Age,
		Sex:             a.Applicant.Sex,
		Job:             a.Applicant.Job,
		Housing:         a.Applicant.Housing,
		SavingAccounts:  a.Applicant.SavingAccounts,
		CheckingAccount: a.Applicant.CheckingAccount,
		CreditAmount:    a.Applicant.CreditAmount,
		Duration:        a.Applicant.Duration,
		Purpose:         a.Applicant.Purpose,
		Label:           a.Label,
		ProbBad:         a.ProbBad,
		ProbGood:        a.ProbGood,
		RiskLevel:       a.RiskLevel,
		Headline:        a.Headline,
		HeadlineLabel:   a.HeadlineLabel,
		Recommendation:  a.Recommendation,
		Factors:         a.Factors,
		CreatedAt:       a.CreatedAt,
	}
}

func fromRecord(rec AssessmentRecord) *risk.Assessment {
	return &risk.Assessment{
		ID: rec.ID,
		Applicant: risk.Applicant{
			Age:             rec.Age,
			Sex:             rec.Sex,
			Job:             rec.Job,
			Housing:         rec.Housing,
			SavingAccounts:  rec.SavingAccounts,
			CheckingAccount: rec.CheckingAccount,
			CreditAmount:    rec.CreditAmount,
			Duration:        rec.Duration,
			Purpose:         rec.Purpose,
		},
		Label:    rec.Label,
		ProbBad:  rec.ProbBad,
		ProbGood: rec.ProbGood,
		Explanation: risk.Explanation{
			RiskLevel:      rec.RiskLevel,
			Headline:       rec.Headline,
			HeadlineLabel:  rec.HeadlineLabel,
			Factors:        rec.Factors,
			Recommendation: rec.Recommendation,
		},
		CreatedAt: rec.CreatedAt.UTC(),
	}
}
