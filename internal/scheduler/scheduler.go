// Package scheduler owns the recurring payment definitions and their
// time-driven re-execution.
package scheduler

import (
	"log/slog"
	"sync"
	"time"

	"payment-gateway/internal/domain"
	"payment-gateway/internal/idgen"
)

// Executor is the slice of the payment orchestrator the scheduler needs.
type Executor interface {
	Execute(methodKey string, req domain.PayRequest) domain.PayResponse
}

// fallbackMethod handles legacy definitions persisted without a method.
const fallbackMethod = "card"

// RecurringScheduler holds the live definition set. A definition either
// advances by its interval after a successful re-run or is dropped outright
// on the first failure; there is no retry state.
type RecurringScheduler struct {
	mu          sync.Mutex
	definitions []*domain.RecurringDefinition

	executor Executor
	ids      *idgen.Generator
	defStore domain.RecurringDefinitionStore
	logger   *slog.Logger
	now      func() time.Time
}

func NewRecurringScheduler(
	executor Executor,
	ids *idgen.Generator,
	defStore domain.RecurringDefinitionStore,
	logger *slog.Logger,
) *RecurringScheduler {
	s := &RecurringScheduler{
		executor: executor,
		ids:      ids,
		defStore: defStore,
		logger:   logger,
		now:      time.Now,
	}
	defs, err := defStore.LoadDefinitions()
	if err != nil {
		logger.Warn("could not load recurring definitions, starting empty", "error", err)
		return s
	}
	s.definitions = defs
	return s
}

// Schedule adds a new definition with its first run one interval from now.
// It does not execute an immediate first payment.
func (s *RecurringScheduler) Schedule(methodKey string, req domain.PayRequest, intervalDays int) *domain.RecurringDefinition {
	if methodKey == "" {
		methodKey = fallbackMethod
	}
	def := &domain.RecurringDefinition{
		ID:           s.ids.Next("REC-"),
		Payer:        req.Payer,
		Amount:       req.Amount,
		Method:       methodKey,
		IntervalDays: intervalDays,
		NextRun:      s.now().Add(time.Duration(intervalDays) * 24 * time.Hour),
	}

	s.mu.Lock()
	s.definitions = append(s.definitions, def)
	s.persistLocked()
	s.mu.Unlock()

	s.logger.Info("recurring payment scheduled",
		"definition_id", def.ID,
		"payer_id", def.Payer.ID,
		"interval_days", intervalDays,
		"next_run", def.NextRun)
	return def
}

// ProcessRecurring re-executes every due definition once. The scan iterates
// a snapshot so removals cannot skip or duplicate entries; the live set is
// mutated only after each outcome is decided.
func (s *RecurringScheduler) ProcessRecurring() {
	now := s.now()

	s.mu.Lock()
	snapshot := make([]*domain.RecurringDefinition, len(s.definitions))
	copy(snapshot, s.definitions)
	s.mu.Unlock()

	for _, def := range snapshot {
		if !def.Due(now) {
			continue
		}

		methodKey := def.Method
		if methodKey == "" {
			methodKey = fallbackMethod
		}
		req := domain.PayRequest{Payer: def.Payer, Amount: def.Amount}
		resp := s.executor.Execute(methodKey, req)

		s.mu.Lock()
		if resp.OK {
			def.AdvanceNextRun()
			s.logger.Info("recurring payment re-run succeeded",
				"definition_id", def.ID,
				"transaction_id", resp.TransactionID,
				"next_run", def.NextRun)
		} else {
			s.removeLocked(def.ID)
			s.logger.Warn("recurring payment re-run failed, definition removed",
				"definition_id", def.ID,
				"reason", resp.Message)
		}
		s.persistLocked()
		s.mu.Unlock()
	}
}

// Definitions returns a copy of the live set.
func (s *RecurringScheduler) Definitions() []*domain.RecurringDefinition {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.RecurringDefinition, len(s.definitions))
	copy(out, s.definitions)
	return out
}

func (s *RecurringScheduler) removeLocked(id string) {
	for i, def := range s.definitions {
		if def.ID == id {
			s.definitions = append(s.definitions[:i], s.definitions[i+1:]...)
			return
		}
	}
}

func (s *RecurringScheduler) persistLocked() {
	if err := s.defStore.SaveDefinitions(s.definitions); err != nil {
		s.logger.Error("failed to persist recurring definitions", "error", err)
	}
}
