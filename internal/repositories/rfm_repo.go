package repositories

import (
	"erp-rfm-engine/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RFMRepo interface defines the write side of the segmentation pipeline
type RFMRepo interface {
	CreateRun(run *models.AnalysisRun) error
	UpdateRun(run *models.AnalysisRun) error
	GetRun(id uuid.UUID) (*models.AnalysisRun, error)
	GetLatestRun(clientID uuid.UUID) (*models.AnalysisRun, error)
	UpsertCustomers(rows []models.CustomerRFM) error
	GetCustomerSegments(clientID uuid.UUID) ([]models.CustomerRFM, error)
}

type rfmRepo struct {
	db *gorm.DB
}

// NewRFMRepo creates a new RFM result repository
func NewRFMRepo(db *gorm.DB) RFMRepo {
	return &rfmRepo{db: db}
}

// CreateRun inserts a new analysis run record
func (r *rfmRepo) CreateRun(run *models.AnalysisRun) error {
	return r.db.Create(run).Error
}

// UpdateRun persists the terminal state of a run
func (r *rfmRepo) UpdateRun(run *models.AnalysisRun) error {
	return r.db.Save(run).Error
}

// GetRun retrieves a run by ID
func (r *rfmRepo) GetRun(id uuid.UUID) (*models.AnalysisRun, error) {
	var run models.AnalysisRun
	err := r.db.Where("id = ?", id).First(&run).Error
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// GetLatestRun retrieves the most recently started run for a client
func (r *rfmRepo) GetLatestRun(clientID uuid.UUID) (*models.AnalysisRun, error) {
	var run models.AnalysisRun
	err := r.db.Where("client_id = ?", clientID).
		Order("started_at DESC").
		First(&run).Error
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// upsertBatchSize keeps each statement under the postgres parameter limit.
const upsertBatchSize = 200

// UpsertCustomers writes one row per customer keyed by (client_id,
// customer_id). Re-running with identical inputs overwrites rows in place,
// so the write is idempotent per customer.
func (r *rfmRepo) UpsertCustomers(rows []models.CustomerRFM) error {
	if len(rows) == 0 {
		return nil
	}

	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "client_id"}, {Name: "customer_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"recency_days", "frequency_count", "monetary_total", "monetary_average",
			"recency_score", "frequency_score", "monetary_score", "rfm_score", "score_total",
			"segment_key", "segment_name", "segment_code",
			"period_start", "period_end", "first_purchase_at", "last_purchase_at",
			"churn_risk", "churn_probability",
			"recommended_priority", "recommended_campaign", "recommended_offer", "recommended_action",
			"calculated_at", "updated_at",
		}),
	}).CreateInBatches(rows, upsertBatchSize).Error
}

// GetCustomerSegments retrieves the latest segmentation rows for a client
func (r *rfmRepo) GetCustomerSegments(clientID uuid.UUID) ([]models.CustomerRFM, error) {
	var rows []models.CustomerRFM
	err := r.db.Where("client_id = ?", clientID).
		Order("score_total DESC, monetary_total DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
