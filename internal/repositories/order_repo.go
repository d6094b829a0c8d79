package repositories

import (
	"time"

	"erp-rfm-engine/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderRepo interface defines the read side of the segmentation pipeline
type OrderRepo interface {
	ListEligible(clientID uuid.UUID, start, end time.Time, excludeRefunds bool) ([]models.SaleOrder, error)
}

type orderRepo struct {
	db *gorm.DB
}

// NewOrderRepo creates a new sale order repository
func NewOrderRepo(db *gorm.DB) OrderRepo {
	return &orderRepo{db: db}
}

// ListEligible retrieves every transaction that qualifies for analysis in a
// single batched read: confirmed/done orders of the client whose order date
// falls inside [start, end]. Refunds carry a non-positive amount and are
// filtered out unless the run is configured to include them.
func (r *orderRepo) ListEligible(clientID uuid.UUID, start, end time.Time, excludeRefunds bool) ([]models.SaleOrder, error) {
	var orders []models.SaleOrder
	query := r.db.
		Where("client_id = ?", clientID).
		Where("status IN ?", []string{models.OrderStatusConfirmed, models.OrderStatusDone}).
		Where("order_date BETWEEN ? AND ?", start, end)

	if excludeRefunds {
		query = query.Where("total_amount > 0")
	}

	err := query.Order("order_date ASC").Find(&orders).Error
	if err != nil {
		return nil, err
	}

	return orders, nil
}
