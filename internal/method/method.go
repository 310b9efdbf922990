// Package method contains the payment channel strategies and the registry
// that routes a method key to its strategy.
package method

import (
	"log/slog"

	"payment-gateway/internal/domain"
	"payment-gateway/internal/idgen"
)

// Payment is the capability every channel implements.
type Payment interface {
	Pay(req domain.PayRequest) domain.PayResponse
}

// Refunder is the optional refund capability. A strategy that implements it
// is refund-capable; nothing else is required.
type Refunder interface {
	Refund(txID string, amount domain.Money) domain.PayResponse
}

// OutcomePredicate stands in for a real gateway call: it decides whether a
// payment attempt succeeds. Channels accept one at construction so the rule
// can be swapped without touching orchestration.
type OutcomePredicate func(req domain.PayRequest) bool

// RefundPredicate is the channel's placeholder refund acceptance rule.
type RefundPredicate func(original *domain.Transaction, amount domain.Money) bool

func approveAll(*domain.Transaction, domain.Money) bool { return true }

// channel bundles the dependencies shared by every strategy.
type channel struct {
	store  domain.TransactionStore
	ids    *idgen.Generator
	logger *slog.Logger
}

// open records a PENDING transaction for the attempt before any outcome is
// known.
func (c channel) open(name, prefix string, req domain.PayRequest) (*domain.Transaction, error) {
	t := domain.NewTransaction(c.ids.Next(prefix), name, req.Payer, req.Amount, domain.StatusPending)
	if err := c.store.Save(t); err != nil {
		return nil, err
	}
	return t, nil
}

// settle moves the transaction to its terminal state, persists it and builds
// the caller-facing response.
func (c channel) settle(t *domain.Transaction, ok bool, okMsg, failMsg string) domain.PayResponse {
	status := domain.StatusFailed
	msg := failMsg
	if ok {
		status = domain.StatusSuccess
		msg = okMsg
	}
	if err := t.TransitionTo(status); err != nil {
		c.logger.Error("illegal status transition", "transaction_id", t.ID, "error", err)
		return domain.FailedResponse(err.Error())
	}
	if err := c.store.Save(t); err != nil {
		c.logger.Error("failed to persist transaction outcome", "transaction_id", t.ID, "error", err)
		return domain.FailedResponse("store failure: " + err.Error())
	}
	c.logger.Info("payment settled", "transaction_id", t.ID, "method", t.Method, "status", t.Status)
	return domain.PayResponse{TransactionID: t.ID, OK: ok, Message: msg}
}

// processRefund runs the shared refund flow: resolve the original, check the
// channel owns it, apply the channel's acceptance rule, then record a new
// REFUNDED transaction and flip the original to REFUNDED.
func (c channel) processRefund(name, txID string, amount domain.Money, approve RefundPredicate) domain.PayResponse {
	original, err := c.store.Find(txID)
	if err != nil {
		c.logger.Error("refund lookup failed", "transaction_id", txID, "error", err)
		return domain.FailedResponse("store failure: " + err.Error())
	}
	if original == nil {
		return domain.FailedResponse("tx not found")
	}
	if original.Method != name {
		return domain.PayResponse{TransactionID: txID, OK: false, Message: "method mismatch"}
	}
	if !approve(original, amount) {
		return domain.FailedResponse("refund failed")
	}

	refund := domain.NewTransaction(c.ids.Next("R-"), domain.RefundMethod(name), original.Payer, amount, domain.StatusRefunded)
	if err := c.store.Save(refund); err != nil {
		c.logger.Error("failed to persist refund", "transaction_id", refund.ID, "error", err)
		return domain.FailedResponse("store failure: " + err.Error())
	}
	if err := original.TransitionTo(domain.StatusRefunded); err == nil {
		if err := c.store.Save(original); err != nil {
			c.logger.Error("failed to persist original after refund", "transaction_id", original.ID, "error", err)
		}
	}
	c.logger.Info("refund settled", "refund_id", refund.ID, "original_id", original.ID, "method", name)
	return domain.PayResponse{TransactionID: refund.ID, OK: true, Message: "refund success"}
}
