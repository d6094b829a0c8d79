package rfm

import "erp-rfm-engine/internal/models"

// ChurnPrediction is the recency-derived churn heuristic of one customer.
type ChurnPrediction struct {
	Risk        string
	Probability int
}

// Recommendation is the per-customer follow-up bundle derived from the
// assigned segment.
type Recommendation struct {
	Priority string
	Campaign string
	Offer    string
	Action   string
}

// predictChurn derives churn risk and probability from the recency score
// alone. Probability is a percentage heuristic, 100 - 20 per score point,
// clipped at zero; with scores always >= 1 it never exceeds 80.
func predictChurn(recencyScore int) ChurnPrediction {
	var risk string
	switch {
	case recencyScore <= 2:
		risk = models.ChurnRiskHigh
	case recencyScore == 3:
		risk = models.ChurnRiskMedium
	default:
		risk = models.ChurnRiskLow
	}

	probability := 100 - recencyScore*20
	if probability < 0 {
		probability = 0
	}

	return ChurnPrediction{Risk: risk, Probability: probability}
}

// recommendFor looks up the recommendation bundle of a segment key. Unknown
// keys get a generic bundle rather than an error; classification guarantees
// known keys in practice.
func recommendFor(segmentKey string) Recommendation {
	def, ok := segmentsByKey[segmentKey]
	if !ok {
		return Recommendation{
			Priority: PriorityLow,
			Campaign: "General Campaign",
			Offer:    "Standard Offer",
		}
	}
	return Recommendation{
		Priority: def.Priority,
		Campaign: def.Campaign,
		Offer:    def.Offer,
		Action:   def.Action,
	}
}
