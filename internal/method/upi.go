package method

import (
	"log/slog"

	"payment-gateway/internal/domain"
	"payment-gateway/internal/idgen"
)

const (
	MethodUPI = "UPI"
	upiPrefix = "UPI-"
)

// UPIPayment simulates a UPI channel. The reference rule rejects amounts
// divisible by 5.
type UPIPayment struct {
	channel
	approve       OutcomePredicate
	approveRefund RefundPredicate
}

func NewUPIPayment(store domain.TransactionStore, ids *idgen.Generator, logger *slog.Logger, approve OutcomePredicate, approveRefund RefundPredicate) *UPIPayment {
	if approve == nil {
		approve = func(req domain.PayRequest) bool { return req.Amount.Amount%5 != 0 }
	}
	if approveRefund == nil {
		approveRefund = approveAll
	}
	return &UPIPayment{
		channel:       channel{store: store, ids: ids, logger: logger},
		approve:       approve,
		approveRefund: approveRefund,
	}
}

func (p *UPIPayment) Pay(req domain.PayRequest) domain.PayResponse {
	t, err := p.open(MethodUPI, upiPrefix, req)
	if err != nil {
		return domain.FailedResponse("store failure: " + err.Error())
	}
	return p.settle(t, p.approve(req), "upi success", "upi failed")
}

func (p *UPIPayment) Refund(txID string, amount domain.Money) domain.PayResponse {
	return p.processRefund(MethodUPI, txID, amount, p.approveRefund)
}
