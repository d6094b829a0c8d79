package rfm

import (
	"math"
	"sort"

	"erp-rfm-engine/internal/models"
)

// Summary is the run-level aggregation persisted on the analysis run.
type Summary struct {
	TotalCustomers    int     `json:"total_customers"`
	CustomersExcluded int     `json:"customers_excluded"`
	TotalTransactions int     `json:"total_transactions"`
	TotalRevenue      float64 `json:"total_revenue"`

	// AvgOrderValue is population weighted (revenue over all transactions),
	// deliberately a different statistic from the per-customer
	// monetary_average mean of means.
	AvgOrderValue  float64 `json:"avg_order_value"`
	AvgFrequency   float64 `json:"avg_frequency"`
	AvgRecencyDays float64 `json:"avg_recency_days"`

	Segments          []SegmentSummary `json:"segments"`
	ScoreDistribution []ScoreBucket    `json:"score_distribution"`
}

// SegmentSummary aggregates the customers of one segment.
type SegmentSummary struct {
	Key           string  `json:"key"`
	Name          string  `json:"name"`
	Count         int     `json:"count"`
	Revenue       float64 `json:"revenue"`
	AvgScoreTotal float64 `json:"avg_score_total"`
	Percentage    float64 `json:"percentage"`
}

// ScoreBucket is one bar of the RFM score histogram.
type ScoreBucket struct {
	Score string `json:"score"`
	Count int    `json:"count"`
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// buildSummary aggregates scored customer rows into the run summary.
// Segment entries follow taxonomy order and only cover segments that
// actually received customers; the histogram is sorted by descending count
// with ties broken by score string.
func buildSummary(rows []models.CustomerRFM, excluded int) Summary {
	s := Summary{
		TotalCustomers:    len(rows),
		CustomersExcluded: excluded,
		Segments:          []SegmentSummary{},
		ScoreDistribution: []ScoreBucket{},
	}
	if len(rows) == 0 {
		return s
	}

	type segAcc struct {
		count      int
		revenue    float64
		scoreTotal int
	}
	bySegment := make(map[string]*segAcc)
	byScore := make(map[string]int)
	var totalRecency int

	for _, row := range rows {
		acc, ok := bySegment[row.SegmentKey]
		if !ok {
			acc = &segAcc{}
			bySegment[row.SegmentKey] = acc
		}
		acc.count++
		acc.revenue += row.MonetaryTotal
		acc.scoreTotal += row.ScoreTotal

		byScore[row.RFMScore]++
		s.TotalTransactions += row.FrequencyCount
		s.TotalRevenue += row.MonetaryTotal
		totalRecency += row.RecencyDays
	}

	if s.TotalTransactions > 0 {
		s.AvgOrderValue = s.TotalRevenue / float64(s.TotalTransactions)
	}
	s.AvgFrequency = float64(s.TotalTransactions) / float64(len(rows))
	s.AvgRecencyDays = float64(totalRecency) / float64(len(rows))

	for _, def := range segments {
		acc, ok := bySegment[def.Key]
		if !ok {
			continue
		}
		s.Segments = append(s.Segments, SegmentSummary{
			Key:           def.Key,
			Name:          def.Name,
			Count:         acc.count,
			Revenue:       acc.revenue,
			AvgScoreTotal: round1(float64(acc.scoreTotal) / float64(acc.count)),
			Percentage:    round1(float64(acc.count) / float64(len(rows)) * 100),
		})
	}

	for score, count := range byScore {
		s.ScoreDistribution = append(s.ScoreDistribution, ScoreBucket{Score: score, Count: count})
	}
	sort.Slice(s.ScoreDistribution, func(i, j int) bool {
		if s.ScoreDistribution[i].Count != s.ScoreDistribution[j].Count {
			return s.ScoreDistribution[i].Count > s.ScoreDistribution[j].Count
		}
		return s.ScoreDistribution[i].Score < s.ScoreDistribution[j].Score
	})

	return s
}
