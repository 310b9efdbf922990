package repository

import (
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"strconv"
	"sync"
	"time"

	"payment-gateway/internal/domain"
	"payment-gateway/internal/errors"
)

// FileTransactionStore keeps the full map in memory and appends every save
// to a delimited flat file. On replay the last record per id wins, so the
// append-only log reproduces last-write-wins semantics.
type FileTransactionStore struct {
	mu           sync.Mutex
	transactions map[string]domain.Transaction
	path         string
	logger       *slog.Logger
}

func NewFileTransactionStore(path string, logger *slog.Logger) (*FileTransactionStore, error) {
	s := &FileTransactionStore{
		transactions: make(map[string]domain.Transaction),
		path:         path,
		logger:       logger,
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileTransactionStore) load() error {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.NewAppError(errors.InternalError, "corrupt transaction file").WithDetails(err.Error())
		}
		t, err := decodeTransaction(record)
		if err != nil {
			s.logger.Warn("skipping unreadable transaction record", "error", err)
			continue
		}
		s.transactions[t.ID] = *t
	}
	s.logger.Info("transaction file loaded", "path", s.path, "count", len(s.transactions))
	return nil
}

func (s *FileTransactionStore) Save(t *domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transactions[t.ID] = *t

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.NewAppError(errors.InternalError, "failed to open transaction file").WithDetails(err.Error())
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(encodeTransaction(t)); err != nil {
		return errors.NewAppError(errors.InternalError, "failed to append transaction").WithDetails(err.Error())
	}
	w.Flush()
	return w.Error()
}

func (s *FileTransactionStore) Find(txID string) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.transactions[txID]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (s *FileTransactionStore) ListAll() ([]*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Transaction, 0, len(s.transactions))
	for id := range s.transactions {
		t := s.transactions[id]
		out = append(out, &t)
	}
	return out, nil
}

func encodeTransaction(t *domain.Transaction) []string {
	return []string{
		t.ID,
		t.Method,
		t.Payer.ID,
		t.Payer.Name,
		strconv.FormatInt(t.Amount.Amount, 10),
		t.Amount.Currency,
		string(t.Status),
		t.CreatedAt.UTC().Format(time.RFC3339Nano),
		t.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func decodeTransaction(record []string) (*domain.Transaction, error) {
	if len(record) != 9 {
		return nil, errors.NewAppErrorf(errors.InvalidInput, "expected 9 fields, got %d", len(record))
	}
	amount, err := strconv.ParseInt(record[4], 10, 64)
	if err != nil {
		return nil, errors.NewAppError(errors.InvalidInput, "bad amount").WithDetails(err.Error())
	}
	status, err := domain.ParseStatus(record[6])
	if err != nil {
		return nil, err
	}
	createdAt, err := time.Parse(time.RFC3339Nano, record[7])
	if err != nil {
		return nil, errors.NewAppError(errors.InvalidInput, "bad created timestamp").WithDetails(err.Error())
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, record[8])
	if err != nil {
		return nil, errors.NewAppError(errors.InvalidInput, "bad updated timestamp").WithDetails(err.Error())
	}
	return &domain.Transaction{
		ID:        record[0],
		Method:    record[1],
		Payer:     domain.Payer{ID: record[2], Name: record[3]},
		Amount:    domain.NewMoney(amount, record[5]),
		Status:    status,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

// FilePayerStore round-trips the payer roster through a delimited file.
type FilePayerStore struct {
	mu   sync.Mutex
	path string
}

func NewFilePayerStore(path string) *FilePayerStore {
	return &FilePayerStore{path: path}
}

func (s *FilePayerStore) SavePayers(payers []domain.Payer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Create(s.path)
	if err != nil {
		return errors.NewAppError(errors.InternalError, "failed to write payer file").WithDetails(err.Error())
	}
	defer f.Close()

	w := csv.NewWriter(f)
	for _, p := range payers {
		if err := w.Write([]string{p.ID, p.Name}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func (s *FilePayerStore) LoadPayers() ([]domain.Payer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var payers []domain.Payer
	r := csv.NewReader(f)
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewAppError(errors.InternalError, "corrupt payer file").WithDetails(err.Error())
		}
		if len(record) != 2 {
			continue
		}
		payers = append(payers, domain.Payer{ID: record[0], Name: record[1]})
	}
	return payers, nil
}

// FileRecurringStore round-trips recurring definitions through a delimited
// file. The whole set is rewritten on every save, matching the scheduler's
// save-after-mutation contract.
type FileRecurringStore struct {
	mu   sync.Mutex
	path string
}

func NewFileRecurringStore(path string) *FileRecurringStore {
	return &FileRecurringStore{path: path}
}

func (s *FileRecurringStore) SaveDefinitions(defs []*domain.RecurringDefinition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Create(s.path)
	if err != nil {
		return errors.NewAppError(errors.InternalError, "failed to write recurring file").WithDetails(err.Error())
	}
	defer f.Close()

	w := csv.NewWriter(f)
	for _, d := range defs {
		record := []string{
			d.ID,
			d.Payer.ID,
			d.Payer.Name,
			strconv.FormatInt(d.Amount.Amount, 10),
			d.Amount.Currency,
			d.Method,
			strconv.Itoa(d.IntervalDays),
			strconv.FormatInt(d.NextRun.UnixMilli(), 10),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func (s *FileRecurringStore) LoadDefinitions() ([]*domain.RecurringDefinition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var defs []*domain.RecurringDefinition
	r := csv.NewReader(f)
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewAppError(errors.InternalError, "corrupt recurring file").WithDetails(err.Error())
		}
		if len(record) != 8 {
			continue
		}
		amount, err := strconv.ParseInt(record[3], 10, 64)
		if err != nil {
			continue
		}
		interval, err := strconv.Atoi(record[6])
		if err != nil {
			continue
		}
		nextRunMilli, err := strconv.ParseInt(record[7], 10, 64)
		if err != nil {
			continue
		}
		defs = append(defs, &domain.RecurringDefinition{
			ID:           record[0],
			Payer:        domain.Payer{ID: record[1], Name: record[2]},
			Amount:       domain.NewMoney(amount, record[4]),
			Method:       record[5],
			IntervalDays: interval,
			NextRun:      time.UnixMilli(nextRunMilli),
		})
	}
	return defs, nil
}
