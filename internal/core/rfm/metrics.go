package rfm

import (
	"sort"
	"time"

	"erp-rfm-engine/internal/models"
	"github.com/google/uuid"
)

// CustomerAggregate groups a customer's eligible transactions.
type CustomerAggregate struct {
	CustomerID   uuid.UUID
	Transactions []Transaction
	Total        float64
}

// Transaction is one (date, amount) pair of a customer aggregate.
type Transaction struct {
	Date   time.Time
	Amount float64
}

// CustomerMetrics are the derived RFM base metrics of one customer.
type CustomerMetrics struct {
	CustomerID      uuid.UUID
	RecencyDays     int
	FrequencyCount  int
	MonetaryTotal   float64
	MonetaryAverage float64
	FirstPurchase   time.Time
	LastPurchase    time.Time
}

// aggregateByCustomer groups eligible orders by customer, summing amounts.
// The result is sorted by customer id so downstream output is deterministic
// regardless of map iteration order.
func aggregateByCustomer(orders []models.SaleOrder) []CustomerAggregate {
	byCustomer := make(map[uuid.UUID]*CustomerAggregate)
	for _, o := range orders {
		agg, ok := byCustomer[o.CustomerID]
		if !ok {
			agg = &CustomerAggregate{CustomerID: o.CustomerID}
			byCustomer[o.CustomerID] = agg
		}
		agg.Transactions = append(agg.Transactions, Transaction{Date: o.OrderDate, Amount: o.TotalAmount})
		agg.Total += o.TotalAmount
	}

	aggregates := make([]CustomerAggregate, 0, len(byCustomer))
	for _, agg := range byCustomer {
		aggregates = append(aggregates, *agg)
	}
	sort.Slice(aggregates, func(i, j int) bool {
		return aggregates[i].CustomerID.String() < aggregates[j].CustomerID.String()
	})
	return aggregates
}

// deriveMetrics computes recency, frequency and monetary metrics for one
// customer relative to the analysis date. Recency is clamped at zero: a
// purchase recorded after the analysis date counts as "today".
func deriveMetrics(agg CustomerAggregate, analysisDate time.Time) CustomerMetrics {
	txs := make([]Transaction, len(agg.Transactions))
	copy(txs, agg.Transactions)
	sort.Slice(txs, func(i, j int) bool { return txs[i].Date.After(txs[j].Date) })

	last := txs[0].Date
	first := txs[len(txs)-1].Date

	recencyDays := int(analysisDate.Sub(last).Hours() / 24)
	if recencyDays < 0 {
		recencyDays = 0
	}

	frequency := len(txs)
	return CustomerMetrics{
		CustomerID:      agg.CustomerID,
		RecencyDays:     recencyDays,
		FrequencyCount:  frequency,
		MonetaryTotal:   agg.Total,
		MonetaryAverage: agg.Total / float64(frequency),
		FirstPurchase:   first,
		LastPurchase:    last,
	}
}
