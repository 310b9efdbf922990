package method

import (
	"log/slog"

	"payment-gateway/internal/domain"
	"payment-gateway/internal/idgen"
)

const (
	MethodNetBanking = "NETBANK"
	netbankPrefix    = "NB-"
)

// NetBankingPayment simulates a net banking channel; the reference rule
// always approves. Not refundable.
type NetBankingPayment struct {
	channel
	approve OutcomePredicate
}

func NewNetBankingPayment(store domain.TransactionStore, ids *idgen.Generator, logger *slog.Logger, approve OutcomePredicate) *NetBankingPayment {
	if approve == nil {
		approve = func(domain.PayRequest) bool { return true }
	}
	return &NetBankingPayment{
		channel: channel{store: store, ids: ids, logger: logger},
		approve: approve,
	}
}

func (p *NetBankingPayment) Pay(req domain.PayRequest) domain.PayResponse {
	t, err := p.open(MethodNetBanking, netbankPrefix, req)
	if err != nil {
		return domain.FailedResponse("store failure: " + err.Error())
	}
	return p.settle(t, p.approve(req), "netbank success", "netbank failed")
}
