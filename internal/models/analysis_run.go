package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AnalysisRun records one execution of the RFM pipeline for a client.
// Status moves running → completed (with Summary) or running → failed
// (with ErrorMessage), exactly once, never back.
type AnalysisRun struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ClientID uuid.UUID `gorm:"type:uuid;not null;index:idx_rfm_runs_client" json:"client_id"`

	// Configuration snapshot, resolved once before the pipeline starts.
	PeriodType      string    `gorm:"type:text;not null;default:'yearly'" json:"period_type"`
	StartDate       time.Time `gorm:"not null" json:"start_date"`
	EndDate         time.Time `gorm:"not null" json:"end_date"`
	MinTransactions int       `gorm:"not null;default:1" json:"min_transactions"`
	ExcludeRefunds  bool      `gorm:"not null;default:true" json:"exclude_refunds"`
	ScoringMethod   string    `gorm:"type:text;not null;default:'quintile'" json:"scoring_method"`

	Status       string         `gorm:"type:text;not null;default:'running'" json:"status"`
	Summary      datatypes.JSON `gorm:"type:jsonb" json:"summary,omitempty"`
	ErrorMessage string         `gorm:"type:text" json:"error_message,omitempty"`

	InvokedBy   string     `gorm:"type:text" json:"invoked_by"`
	StartedAt   time.Time  `gorm:"not null" json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name
func (AnalysisRun) TableName() string {
	return "rfm_analysis_runs"
}

// BeforeCreate sets UUID before creating
func (r *AnalysisRun) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Run status constants
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// Period type constants
const (
	PeriodMonthly   = "monthly"
	PeriodQuarterly = "quarterly"
	PeriodYearly    = "yearly"
	PeriodCustom    = "custom"
)
