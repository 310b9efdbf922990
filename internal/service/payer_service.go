package service

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"payment-gateway/internal/domain"
	"payment-gateway/internal/errors"
)

// PayerService manages the payer roster, persisting it across restarts.
type PayerService struct {
	mu     sync.Mutex
	payers []domain.Payer
	store  domain.PayerStore
	logger *slog.Logger
}

func NewPayerService(store domain.PayerStore, logger *slog.Logger) *PayerService {
	s := &PayerService{store: store, logger: logger}
	payers, err := store.LoadPayers()
	if err != nil {
		logger.Warn("could not load payer roster, starting empty", "error", err)
		return s
	}
	s.payers = payers
	logger.Info("payer roster loaded", "count", len(payers))
	return s
}

// Add registers a payer. An empty id gets a generated one.
func (s *PayerService) Add(id, name string) (domain.Payer, error) {
	if name == "" {
		return domain.Payer{}, errors.NewAppError(errors.InvalidInput, "payer name is required")
	}
	if id == "" {
		id = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.payers {
		if p.ID == id {
			return domain.Payer{}, errors.NewAppErrorf(errors.InvalidInput, "payer %s already exists", id)
		}
	}

	payer := domain.Payer{ID: id, Name: name}
	s.payers = append(s.payers, payer)
	if err := s.store.SavePayers(s.payers); err != nil {
		s.logger.Error("failed to persist payer roster", "error", err)
		return domain.Payer{}, err
	}
	s.logger.Info("payer registered", "payer_id", payer.ID)
	return payer, nil
}

// Get looks a payer up by id.
func (s *PayerService) Get(id string) (domain.Payer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.payers {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Payer{}, false
}

// List returns a copy of the roster.
func (s *PayerService) List() []domain.Payer {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Payer, len(s.payers))
	copy(out, s.payers)
	return out
}
