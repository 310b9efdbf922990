package method

import (
	"log/slog"

	"payment-gateway/internal/domain"
	"payment-gateway/internal/idgen"
)

const (
	MethodCrypto = "CRYPTO"
	cryptoPrefix = "CR-"
)

// CryptoPayment simulates a crypto channel. The reference rule rejects
// amounts divisible by 7. Refunds are not supported: on-chain settlement has
// no reversal path, so the type deliberately omits the Refunder capability.
type CryptoPayment struct {
	channel
	approve OutcomePredicate
}

func NewCryptoPayment(store domain.TransactionStore, ids *idgen.Generator, logger *slog.Logger, approve OutcomePredicate) *CryptoPayment {
	if approve == nil {
		approve = func(req domain.PayRequest) bool { return req.Amount.Amount%7 != 0 }
	}
	return &CryptoPayment{
		channel: channel{store: store, ids: ids, logger: logger},
		approve: approve,
	}
}

func (p *CryptoPayment) Pay(req domain.PayRequest) domain.PayResponse {
	t, err := p.open(MethodCrypto, cryptoPrefix, req)
	if err != nil {
		return domain.FailedResponse("store failure: " + err.Error())
	}
	return p.settle(t, p.approve(req), "crypto success", "crypto failed")
}
