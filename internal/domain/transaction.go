package domain

import (
	"time"

	"payment-gateway/internal/errors"
)

// Status is the transaction lifecycle state.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusSuccess  Status = "SUCCESS"
	StatusFailed   Status = "FAILED"
	StatusRefunded Status = "REFUNDED"
)

// ParseStatus converts a stored status string back to a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusSuccess, StatusFailed, StatusRefunded:
		return Status(s), nil
	}
	return "", errors.NewAppErrorf(errors.InvalidInput, "unknown status %q", s)
}

// Transaction is the durable record of one payment or refund attempt.
type Transaction struct {
	ID        string    `json:"id"`
	Method    string    `json:"method"`
	Payer     Payer     `json:"payer"`
	Amount    Money     `json:"amount"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewTransaction builds a transaction in its initial state with both
// timestamps set to now.
func NewTransaction(id, method string, payer Payer, amount Money, status Status) *Transaction {
	now := time.Now()
	return &Transaction{
		ID:        id,
		Method:    method,
		Payer:     payer,
		Amount:    amount,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TransitionTo updates the status and bumps UpdatedAt in one step.
// REFUNDED is terminal: any further transition is rejected.
func (t *Transaction) TransitionTo(status Status) error {
	if t.Status == StatusRefunded {
		return errors.NewAppErrorf(errors.InvalidTransition, "transaction %s is refunded and terminal", t.ID)
	}
	t.Status = status
	t.UpdatedAt = time.Now()
	return nil
}

// RefundMethod derives the method name carried by refund records,
// e.g. "CARD-REFUND" for a "CARD" original.
func RefundMethod(original string) string {
	return original + "-REFUND"
}

// TransactionStore is the persistence contract for transactions. Save is
// last-write-wins per id: the PENDING record and its terminal update share
// an id by design.
type TransactionStore interface {
	Save(t *Transaction) error
	Find(txID string) (*Transaction, error)
	ListAll() ([]*Transaction, error)
}
