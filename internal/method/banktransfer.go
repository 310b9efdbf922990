package method

import (
	"log/slog"

	"payment-gateway/internal/domain"
	"payment-gateway/internal/idgen"
)

const (
	MethodBankTransfer = "BANK_TRANSFER"
	bankPrefix         = "BT-"
)

// BankTransferPayment simulates a bank transfer channel. The reference rule
// rejects amounts divisible by 3.
type BankTransferPayment struct {
	channel
	approve       OutcomePredicate
	approveRefund RefundPredicate
}

func NewBankTransferPayment(store domain.TransactionStore, ids *idgen.Generator, logger *slog.Logger, approve OutcomePredicate, approveRefund RefundPredicate) *BankTransferPayment {
	if approve == nil {
		approve = func(req domain.PayRequest) bool { return req.Amount.Amount%3 != 0 }
	}
	if approveRefund == nil {
		approveRefund = approveAll
	}
	return &BankTransferPayment{
		channel:       channel{store: store, ids: ids, logger: logger},
		approve:       approve,
		approveRefund: approveRefund,
	}
}

func (p *BankTransferPayment) Pay(req domain.PayRequest) domain.PayResponse {
	t, err := p.open(MethodBankTransfer, bankPrefix, req)
	if err != nil {
		return domain.FailedResponse("store failure: " + err.Error())
	}
	return p.settle(t, p.approve(req), "bank transfer success", "bank transfer failed")
}

func (p *BankTransferPayment) Refund(txID string, amount domain.Money) domain.PayResponse {
	return p.processRefund(MethodBankTransfer, txID, amount, p.approveRefund)
}
