package domain

import "time"

// RecurringDefinition is a standing instruction to re-attempt a fixed
// payment on a fixed day interval. Owned and mutated only by the scheduler.
type RecurringDefinition struct {
	ID           string    `json:"id"`
	Payer        Payer     `json:"payer"`
	Amount       Money     `json:"amount"`
	Method       string    `json:"method"`
	IntervalDays int       `json:"interval_days"`
	NextRun      time.Time `json:"next_run"`
}

// AdvanceNextRun moves the next run forward by one interval.
func (d *RecurringDefinition) AdvanceNextRun() {
	d.NextRun = d.NextRun.Add(time.Duration(d.IntervalDays) * 24 * time.Hour)
}

// Due reports whether the definition should run at the given instant.
func (d *RecurringDefinition) Due(now time.Time) bool {
	return !d.NextRun.After(now)
}

// RecurringDefinitionStore persists recurring definitions across restarts.
type RecurringDefinitionStore interface {
	SaveDefinitions(defs []*RecurringDefinition) error
	LoadDefinitions() ([]*RecurringDefinition, error)
}
