package rfm

import (
	"fmt"
	"time"

	"erp-rfm-engine/internal/models"
)

// Config is the effective configuration of one analysis run. It is resolved
// once by ResolveConfig before the pipeline starts and never mutated after.
// Refund handling is expressed as IncludeRefunds so the zero value keeps the
// default behavior: refunds excluded.
type Config struct {
	PeriodType      string
	StartDate       time.Time
	EndDate         time.Time
	MinTransactions int
	IncludeRefunds  bool
}

// ExcludeRefunds reports whether refund transactions are filtered out of
// the analysis.
func (c Config) ExcludeRefunds() bool {
	return !c.IncludeRefunds
}

// defaultEpoch is the start date used for a custom period with no explicit
// start: effectively "all history".
var defaultEpoch = time.Unix(0, 0).UTC()

// ResolveConfig fills in the defaults of a partially specified config
// relative to now: period yearly, end date now, start date derived from the
// period type, minimum one transaction, refunds excluded unless
// IncludeRefunds is set.
func ResolveConfig(cfg Config, now time.Time) (Config, error) {
	if cfg.PeriodType == "" {
		cfg.PeriodType = models.PeriodYearly
	}
	switch cfg.PeriodType {
	case models.PeriodMonthly, models.PeriodQuarterly, models.PeriodYearly, models.PeriodCustom:
	default:
		return Config{}, fmt.Errorf("unknown period type %q", cfg.PeriodType)
	}

	if cfg.EndDate.IsZero() {
		cfg.EndDate = now
	}
	if cfg.StartDate.IsZero() {
		switch cfg.PeriodType {
		case models.PeriodMonthly:
			firstOfMonth := time.Date(cfg.EndDate.Year(), cfg.EndDate.Month(), 1, 0, 0, 0, 0, cfg.EndDate.Location())
			cfg.StartDate = firstOfMonth.AddDate(0, -1, 0)
		case models.PeriodQuarterly:
			cfg.StartDate = cfg.EndDate.AddDate(0, -3, 0)
		case models.PeriodYearly:
			cfg.StartDate = cfg.EndDate.AddDate(-1, 0, 0)
		default:
			cfg.StartDate = defaultEpoch
		}
	}
	if cfg.EndDate.Before(cfg.StartDate) {
		return Config{}, fmt.Errorf("end date %s before start date %s",
			cfg.EndDate.Format(time.RFC3339), cfg.StartDate.Format(time.RFC3339))
	}

	if cfg.MinTransactions < 1 {
		cfg.MinTransactions = 1
	}

	return cfg, nil
}
