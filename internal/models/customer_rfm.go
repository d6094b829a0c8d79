package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CustomerRFM holds the latest segmentation result for one customer of a
// client. Rows are overwritten in place on every run; there is exactly one
// row per (client_id, customer_id).
type CustomerRFM struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ClientID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_customers_rfm_client_customer" json:"client_id"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_customers_rfm_client_customer" json:"customer_id"`

	// Raw behavioral metrics
	RecencyDays     int     `gorm:"not null" json:"recency_days"`
	FrequencyCount  int     `gorm:"not null" json:"frequency_count"`
	MonetaryTotal   float64 `gorm:"type:decimal(15,2);not null" json:"monetary_total"`
	MonetaryAverage float64 `gorm:"type:decimal(15,2);not null" json:"monetary_average"`

	// Quintile scores (each 1-5)
	RecencyScore   int    `gorm:"not null" json:"recency_score"`
	FrequencyScore int    `gorm:"not null" json:"frequency_score"`
	MonetaryScore  int    `gorm:"not null" json:"monetary_score"`
	RFMScore       string `gorm:"type:varchar(3);not null" json:"rfm_score"`
	ScoreTotal     int    `gorm:"not null" json:"score_total"`

	// Segment assignment
	SegmentKey  string `gorm:"type:text;not null;index:idx_customers_rfm_segment" json:"segment_key"`
	SegmentName string `gorm:"type:text;not null" json:"segment_name"`
	SegmentCode string `gorm:"type:varchar(8);not null" json:"segment_code"`

	// Analysis period snapshot
	PeriodStart time.Time `gorm:"not null" json:"period_start"`
	PeriodEnd   time.Time `gorm:"not null" json:"period_end"`

	// Transaction summary
	FirstPurchaseAt time.Time `gorm:"not null" json:"first_purchase_at"`
	LastPurchaseAt  time.Time `gorm:"not null" json:"last_purchase_at"`

	// Churn prediction (heuristic, recency-based)
	ChurnRisk        string `gorm:"type:text;not null" json:"churn_risk"`
	ChurnProbability int    `gorm:"not null" json:"churn_probability"`

	// Recommended follow-up
	RecommendedPriority string `gorm:"type:text;not null" json:"recommended_priority"`
	RecommendedCampaign string `gorm:"type:text;not null" json:"recommended_campaign"`
	RecommendedOffer    string `gorm:"type:text;not null" json:"recommended_offer"`
	RecommendedAction   string `gorm:"type:text" json:"recommended_action"`

	CalculatedAt time.Time `gorm:"not null" json:"calculated_at"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name
func (CustomerRFM) TableName() string {
	return "customers_rfm"
}

// BeforeCreate sets UUID before creating
func (c *CustomerRFM) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Churn risk tiers
const (
	ChurnRiskHigh   = "high"
	ChurnRiskMedium = "medium"
	ChurnRiskLow    = "low"
)
