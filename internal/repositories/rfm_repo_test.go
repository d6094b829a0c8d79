package repositories

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"erp-rfm-engine/internal/models"
)

var testSchema = []string{
	`CREATE TABLE sale_orders (
		id TEXT PRIMARY KEY,
		client_id TEXT NOT NULL,
		customer_id TEXT NOT NULL,
		order_number TEXT UNIQUE,
		status TEXT NOT NULL DEFAULT 'draft',
		total_amount REAL NOT NULL DEFAULT 0,
		order_date DATETIME NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE rfm_analysis_runs (
		id TEXT PRIMARY KEY,
		client_id TEXT NOT NULL,
		period_type TEXT NOT NULL DEFAULT 'yearly',
		start_date DATETIME NOT NULL,
		end_date DATETIME NOT NULL,
		min_transactions INTEGER NOT NULL DEFAULT 1,
		exclude_refunds BOOLEAN NOT NULL DEFAULT true,
		scoring_method TEXT NOT NULL DEFAULT 'quintile',
		status TEXT NOT NULL DEFAULT 'running',
		summary TEXT,
		error_message TEXT,
		invoked_by TEXT,
		started_at DATETIME NOT NULL,
		completed_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE customers_rfm (
		id TEXT PRIMARY KEY,
		client_id TEXT NOT NULL,
		customer_id TEXT NOT NULL,
		recency_days INTEGER NOT NULL,
		frequency_count INTEGER NOT NULL,
		monetary_total REAL NOT NULL,
		monetary_average REAL NOT NULL,
		recency_score INTEGER NOT NULL,
		frequency_score INTEGER NOT NULL,
		monetary_score INTEGER NOT NULL,
		rfm_score TEXT NOT NULL,
		score_total INTEGER NOT NULL,
		segment_key TEXT NOT NULL,
		segment_name TEXT NOT NULL,
		segment_code TEXT NOT NULL,
		period_start DATETIME NOT NULL,
		period_end DATETIME NOT NULL,
		first_purchase_at DATETIME NOT NULL,
		last_purchase_at DATETIME NOT NULL,
		churn_risk TEXT NOT NULL,
		churn_probability INTEGER NOT NULL,
		recommended_priority TEXT NOT NULL,
		recommended_campaign TEXT NOT NULL,
		recommended_offer TEXT NOT NULL,
		recommended_action TEXT,
		calculated_at DATETIME NOT NULL,
		created_at DATETIME,
		updated_at DATETIME,
		UNIQUE(client_id, customer_id)
	)`,
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	for _, stmt := range testSchema {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("failed to create schema: %v", err)
		}
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

var repoPeriodEnd = time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)

func testRFMRow(clientID, customerID uuid.UUID, score string) models.CustomerRFM {
	return models.CustomerRFM{
		ClientID:            clientID,
		CustomerID:          customerID,
		RecencyDays:         5,
		FrequencyCount:      6,
		MonetaryTotal:       60000,
		MonetaryAverage:     10000,
		RecencyScore:        5,
		FrequencyScore:      5,
		MonetaryScore:       5,
		RFMScore:            score,
		ScoreTotal:          15,
		SegmentKey:          "champions",
		SegmentName:         "Champions",
		SegmentCode:         "CH",
		PeriodStart:         repoPeriodEnd.AddDate(-1, 0, 0),
		PeriodEnd:           repoPeriodEnd,
		FirstPurchaseAt:     repoPeriodEnd.AddDate(0, -6, 0),
		LastPurchaseAt:      repoPeriodEnd.AddDate(0, 0, -5),
		ChurnRisk:           models.ChurnRiskLow,
		ChurnProbability:    0,
		RecommendedPriority: "high",
		RecommendedCampaign: "VIP Exclusive",
		RecommendedOffer:    "Early access",
		CalculatedAt:        repoPeriodEnd,
	}
}

func TestUpsertCustomers_InsertThenOverwrite(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRFMRepo(db)

	clientID := uuid.New()
	customerID := uuid.New()

	if err := repo.UpsertCustomers([]models.CustomerRFM{testRFMRow(clientID, customerID, "555")}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	// Same key, different values: the row must be overwritten, not doubled.
	updated := testRFMRow(clientID, customerID, "444")
	updated.SegmentKey = "loyal"
	updated.SegmentName = "Loyal Customers"
	updated.SegmentCode = "LO"
	updated.ScoreTotal = 12
	if err := repo.UpsertCustomers([]models.CustomerRFM{updated}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	var count int64
	if err := db.Model(&models.CustomerRFM{}).Where("client_id = ?", clientID).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("got %d rows, want 1", count)
	}

	rows, err := repo.GetCustomerSegments(clientID)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if rows[0].RFMScore != "444" || rows[0].SegmentKey != "loyal" {
		t.Errorf("row not overwritten: score %q segment %q", rows[0].RFMScore, rows[0].SegmentKey)
	}
}

func TestUpsertCustomers_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRFMRepo(db)

	clientID := uuid.New()
	row := testRFMRow(clientID, uuid.New(), "555")

	if err := repo.UpsertCustomers([]models.CustomerRFM{row}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	first, err := repo.GetCustomerSegments(clientID)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	row.ID = uuid.Nil // a rerun builds fresh rows
	if err := repo.UpsertCustomers([]models.CustomerRFM{row}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	second, err := repo.GetCustomerSegments(clientID)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	if len(second) != 1 {
		t.Fatalf("got %d rows, want 1", len(second))
	}
	if second[0].ID != first[0].ID {
		t.Error("rerun replaced the row identity instead of updating in place")
	}
	if second[0].RFMScore != first[0].RFMScore || second[0].SegmentKey != first[0].SegmentKey {
		t.Error("identical rerun changed row values")
	}
}

func TestUpsertCustomers_ScopedByClient(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRFMRepo(db)

	customerID := uuid.New()
	clientA := uuid.New()
	clientB := uuid.New()

	err := repo.UpsertCustomers([]models.CustomerRFM{
		testRFMRow(clientA, customerID, "555"),
		testRFMRow(clientB, customerID, "111"),
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	rowsA, err := repo.GetCustomerSegments(clientA)
	if err != nil {
		t.Fatalf("read client A: %v", err)
	}
	if len(rowsA) != 1 || rowsA[0].RFMScore != "555" {
		t.Errorf("client A rows: %+v", rowsA)
	}

	rowsB, err := repo.GetCustomerSegments(clientB)
	if err != nil {
		t.Fatalf("read client B: %v", err)
	}
	if len(rowsB) != 1 || rowsB[0].RFMScore != "111" {
		t.Errorf("client B rows: %+v", rowsB)
	}
}

func TestRunLifecycle(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRFMRepo(db)

	clientID := uuid.New()
	run := &models.AnalysisRun{
		ClientID:        clientID,
		PeriodType:      models.PeriodYearly,
		StartDate:       repoPeriodEnd.AddDate(-1, 0, 0),
		EndDate:         repoPeriodEnd,
		MinTransactions: 1,
		ExcludeRefunds:  true,
		ScoringMethod:   "quintile",
		Status:          models.RunStatusRunning,
		InvokedBy:       "test",
		StartedAt:       repoPeriodEnd,
	}
	if err := repo.CreateRun(run); err != nil {
		t.Fatalf("create run: %v", err)
	}
	if run.ID == uuid.Nil {
		t.Fatal("run ID not assigned")
	}

	completedAt := repoPeriodEnd.Add(time.Minute)
	run.Status = models.RunStatusCompleted
	run.Summary = []byte(`{"total_customers":5}`)
	run.CompletedAt = &completedAt
	if err := repo.UpdateRun(run); err != nil {
		t.Fatalf("update run: %v", err)
	}

	got, err := repo.GetRun(run.ID)
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if got.Status != models.RunStatusCompleted {
		t.Errorf("status: got %q, want completed", got.Status)
	}
	if len(got.Summary) == 0 {
		t.Error("summary not persisted")
	}
	if got.CompletedAt == nil {
		t.Error("completed_at not persisted")
	}
}

func TestGetLatestRun(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRFMRepo(db)

	clientID := uuid.New()
	for i := 0; i < 3; i++ {
		run := &models.AnalysisRun{
			ClientID:      clientID,
			PeriodType:    models.PeriodYearly,
			StartDate:     repoPeriodEnd.AddDate(-1, 0, 0),
			EndDate:       repoPeriodEnd,
			ScoringMethod: "quintile",
			Status:        models.RunStatusCompleted,
			StartedAt:     repoPeriodEnd.Add(time.Duration(i) * time.Hour),
			InvokedBy:     "test",
		}
		if err := repo.CreateRun(run); err != nil {
			t.Fatalf("create run %d: %v", i, err)
		}
	}

	got, err := repo.GetLatestRun(clientID)
	if err != nil {
		t.Fatalf("get latest: %v", err)
	}
	if want := repoPeriodEnd.Add(2 * time.Hour); !got.StartedAt.Equal(want) {
		t.Errorf("latest run started at %v, want %v", got.StartedAt, want)
	}
}
