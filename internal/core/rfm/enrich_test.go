package rfm

import (
	"testing"

	"erp-rfm-engine/internal/models"
)

func TestPredictChurn_Tiers(t *testing.T) {
	tests := []struct {
		score    int
		wantRisk string
		wantProb int
	}{
		{1, models.ChurnRiskHigh, 80},
		{2, models.ChurnRiskHigh, 60},
		{3, models.ChurnRiskMedium, 40},
		{4, models.ChurnRiskLow, 20},
		{5, models.ChurnRiskLow, 0},
	}
	for _, tt := range tests {
		got := predictChurn(tt.score)
		if got.Risk != tt.wantRisk {
			t.Errorf("risk for score %d: got %q, want %q", tt.score, got.Risk, tt.wantRisk)
		}
		if got.Probability != tt.wantProb {
			t.Errorf("probability for score %d: got %d, want %d", tt.score, got.Probability, tt.wantProb)
		}
	}
}

func TestPredictChurn_ProbabilityNeverExceeds80(t *testing.T) {
	// Recency scores are always >= 1, so the 100%-at-score-0 branch of the
	// heuristic is unreachable in practice.
	for score := 1; score <= 5; score++ {
		got := predictChurn(score)
		if got.Probability < 0 || got.Probability > 80 {
			t.Errorf("probability for score %d out of range: %d", score, got.Probability)
		}
	}
}

func TestRecommendFor_SegmentPriorities(t *testing.T) {
	high := []string{"champions", "cant_lose", "at_risk"}
	medium := []string{"loyal", "potential_loyalists", "need_attention"}
	low := []string{"new_customers", "promising", "about_to_sleep", "hibernating", "lost"}

	for _, key := range high {
		if got := recommendFor(key); got.Priority != PriorityHigh {
			t.Errorf("priority for %q: got %q, want %q", key, got.Priority, PriorityHigh)
		}
	}
	for _, key := range medium {
		if got := recommendFor(key); got.Priority != PriorityMedium {
			t.Errorf("priority for %q: got %q, want %q", key, got.Priority, PriorityMedium)
		}
	}
	for _, key := range low {
		if got := recommendFor(key); got.Priority != PriorityLow {
			t.Errorf("priority for %q: got %q, want %q", key, got.Priority, PriorityLow)
		}
	}
}

func TestRecommendFor_UnknownKeyFallback(t *testing.T) {
	got := recommendFor("does_not_exist")
	if got.Campaign != "General Campaign" {
		t.Errorf("campaign: got %q, want %q", got.Campaign, "General Campaign")
	}
	if got.Offer != "Standard Offer" {
		t.Errorf("offer: got %q, want %q", got.Offer, "Standard Offer")
	}
	if got.Action != "" {
		t.Errorf("action: got %q, want empty", got.Action)
	}
}
