package method

import (
	"log/slog"

	"payment-gateway/internal/domain"
	"payment-gateway/internal/idgen"
)

const (
	MethodCard = "CARD"
	cardPrefix = "CARD-"
)

// CardPayment simulates a card channel. The reference acceptance rule
// approves even minor-unit amounts.
type CardPayment struct {
	channel
	approve       OutcomePredicate
	approveRefund RefundPredicate
}

// NewCardPayment builds the card strategy. Nil predicates fall back to the
// reference rules.
func NewCardPayment(store domain.TransactionStore, ids *idgen.Generator, logger *slog.Logger, approve OutcomePredicate, approveRefund RefundPredicate) *CardPayment {
	if approve == nil {
		approve = func(req domain.PayRequest) bool { return req.Amount.Amount%2 == 0 }
	}
	if approveRefund == nil {
		approveRefund = approveAll
	}
	return &CardPayment{
		channel:       channel{store: store, ids: ids, logger: logger},
		approve:       approve,
		approveRefund: approveRefund,
	}
}

func (p *CardPayment) Pay(req domain.PayRequest) domain.PayResponse {
	t, err := p.open(MethodCard, cardPrefix, req)
	if err != nil {
		return domain.FailedResponse("store failure: " + err.Error())
	}
	return p.settle(t, p.approve(req), "card success", "card failed")
}

func (p *CardPayment) Refund(txID string, amount domain.Money) domain.PayResponse {
	return p.processRefund(MethodCard, txID, amount, p.approveRefund)
}
