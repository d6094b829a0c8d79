package rfm

import (
	"encoding/json"
	"fmt"
	"time"

	"erp-rfm-engine/internal/models"
	"erp-rfm-engine/internal/repositories"
	"erp-rfm-engine/internal/shared/utils"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ScoringMethodQuintile is the only scoring method this engine implements.
const ScoringMethodQuintile = "quintile"

// Service runs the RFM segmentation pipeline for one client at a time.
// Concurrent runs for different clients are safe; serializing runs for the
// same client is the caller's responsibility (the customer upsert is
// last-write-wins).
type Service struct {
	orderRepo repositories.OrderRepo
	rfmRepo   repositories.RFMRepo
}

// NewService creates a new segmentation service
func NewService(orderRepo repositories.OrderRepo, rfmRepo repositories.RFMRepo) *Service {
	return &Service{
		orderRepo: orderRepo,
		rfmRepo:   rfmRepo,
	}
}

// RunAnalysis executes one synchronous analysis run: it records the run,
// loads eligible transactions, scores and classifies every qualifying
// customer, upserts the per-customer results and writes the summary back
// onto the run. Any error after the run record exists marks the run failed
// exactly once and is returned to the caller. An empty qualifying
// population is not an error: the run completes with a zero summary.
func (s *Service) RunAnalysis(clientID uuid.UUID, cfg Config, invokedBy string) (*models.AnalysisRun, error) {
	now := time.Now().UTC()
	resolved, resolveErr := ResolveConfig(cfg, now)

	runCfg := resolved
	if resolveErr != nil {
		// Record the run with the raw config so the failure is visible.
		runCfg = cfg
	}

	run := &models.AnalysisRun{
		ClientID:        clientID,
		PeriodType:      runCfg.PeriodType,
		StartDate:       runCfg.StartDate,
		EndDate:         runCfg.EndDate,
		MinTransactions: runCfg.MinTransactions,
		ExcludeRefunds:  runCfg.ExcludeRefunds(),
		ScoringMethod:   ScoringMethodQuintile,
		Status:          models.RunStatusRunning,
		InvokedBy:       invokedBy,
		StartedAt:       now,
	}
	if err := s.rfmRepo.CreateRun(run); err != nil {
		return nil, fmt.Errorf("failed to create analysis run: %w", err)
	}

	utils.LogInfo("RFM analysis started", map[string]interface{}{
		"run_id":    run.ID,
		"client_id": clientID,
		"period":    runCfg.PeriodType,
		"start":     runCfg.StartDate,
		"end":       runCfg.EndDate,
	})

	if resolveErr != nil {
		return s.failRun(run, resolveErr)
	}

	summary, err := s.execute(run, resolved)
	if err != nil {
		return s.failRun(run, err)
	}

	utils.LogInfo("RFM analysis completed", map[string]interface{}{
		"run_id":             run.ID,
		"client_id":          clientID,
		"customers_analyzed": summary.TotalCustomers,
		"customers_excluded": summary.CustomersExcluded,
	})
	return run, nil
}

// execute performs the compute and persist phases against an already
// recorded run. It returns the summary it wrote on success.
func (s *Service) execute(run *models.AnalysisRun, cfg Config) (*Summary, error) {
	orders, err := s.orderRepo.ListEligible(run.ClientID, cfg.StartDate, cfg.EndDate, cfg.ExcludeRefunds())
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	aggregates := aggregateByCustomer(orders)

	qualified := make([]CustomerAggregate, 0, len(aggregates))
	excluded := 0
	for _, agg := range aggregates {
		if len(agg.Transactions) < cfg.MinTransactions {
			excluded++
			continue
		}
		qualified = append(qualified, agg)
	}

	if len(qualified) == 0 {
		summary := buildSummary(nil, excluded)
		if err := s.completeRun(run, summary); err != nil {
			return nil, err
		}
		return &summary, nil
	}

	metrics := make([]CustomerMetrics, len(qualified))
	recency := make([]float64, len(qualified))
	frequency := make([]float64, len(qualified))
	monetary := make([]float64, len(qualified))
	for i, agg := range qualified {
		m := deriveMetrics(agg, cfg.EndDate)
		metrics[i] = m
		recency[i] = float64(m.RecencyDays)
		frequency[i] = float64(m.FrequencyCount)
		monetary[i] = m.MonetaryTotal
	}

	recencyBounds := quintileBounds(recency)
	frequencyBounds := quintileBounds(frequency)
	monetaryBounds := quintileBounds(monetary)

	calculatedAt := time.Now().UTC()
	rows := make([]models.CustomerRFM, len(metrics))
	for i, m := range metrics {
		r := scoreRecency(float64(m.RecencyDays), recencyBounds)
		f := scoreAscending(float64(m.FrequencyCount), frequencyBounds)
		mo := scoreAscending(m.MonetaryTotal, monetaryBounds)
		rfmScore := fmt.Sprintf("%d%d%d", r, f, mo)
		total := r + f + mo

		segment := Classify(rfmScore, total)
		churn := predictChurn(r)
		rec := recommendFor(segment.Key)

		rows[i] = models.CustomerRFM{
			ClientID:            run.ClientID,
			CustomerID:          m.CustomerID,
			RecencyDays:         m.RecencyDays,
			FrequencyCount:      m.FrequencyCount,
			MonetaryTotal:       m.MonetaryTotal,
			MonetaryAverage:     m.MonetaryAverage,
			RecencyScore:        r,
			FrequencyScore:      f,
			MonetaryScore:       mo,
			RFMScore:            rfmScore,
			ScoreTotal:          total,
			SegmentKey:          segment.Key,
			SegmentName:         segment.Name,
			SegmentCode:         segment.Code,
			PeriodStart:         cfg.StartDate,
			PeriodEnd:           cfg.EndDate,
			FirstPurchaseAt:     m.FirstPurchase,
			LastPurchaseAt:      m.LastPurchase,
			ChurnRisk:           churn.Risk,
			ChurnProbability:    churn.Probability,
			RecommendedPriority: rec.Priority,
			RecommendedCampaign: rec.Campaign,
			RecommendedOffer:    rec.Offer,
			RecommendedAction:   rec.Action,
			CalculatedAt:        calculatedAt,
		}
	}

	if err := s.rfmRepo.UpsertCustomers(rows); err != nil {
		return nil, fmt.Errorf("failed to upsert customer segments: %w", err)
	}

	summary := buildSummary(rows, excluded)
	if err := s.completeRun(run, summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// completeRun writes the terminal completed state with its summary.
func (s *Service) completeRun(run *models.AnalysisRun, summary Summary) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	completedAt := time.Now().UTC()
	run.Status = models.RunStatusCompleted
	run.Summary = datatypes.JSON(payload)
	run.CompletedAt = &completedAt
	if err := s.rfmRepo.UpdateRun(run); err != nil {
		return fmt.Errorf("failed to complete analysis run: %w", err)
	}
	return nil
}

// failRun performs the single terminal failed-state write-back and hands
// the original error to the caller.
func (s *Service) failRun(run *models.AnalysisRun, cause error) (*models.AnalysisRun, error) {
	completedAt := time.Now().UTC()
	run.Status = models.RunStatusFailed
	run.ErrorMessage = cause.Error()
	run.CompletedAt = &completedAt
	if err := s.rfmRepo.UpdateRun(run); err != nil {
		utils.LogError("failed to persist failed run state", err, map[string]interface{}{
			"run_id": run.ID,
		})
	}

	utils.LogError("RFM analysis failed", cause, map[string]interface{}{
		"run_id":    run.ID,
		"client_id": run.ClientID,
	})
	return run, cause
}
