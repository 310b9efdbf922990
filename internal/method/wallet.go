package method

import (
	"log/slog"
	"sync"

	"payment-gateway/internal/domain"
	"payment-gateway/internal/errors"
	"payment-gateway/internal/idgen"
)

const (
	MethodWallet = "WALLET"
	walletPrefix = "WAL-"
)

// WalletLedger tracks per-payer prepaid balances. The insufficient-funds
// check and the debit happen under one lock so concurrent payments cannot
// overdraft.
type WalletLedger struct {
	mu       sync.Mutex
	balances map[string]domain.Money
}

func NewWalletLedger() *WalletLedger {
	return &WalletLedger{balances: make(map[string]domain.Money)}
}

// Credit adds funds to a payer's balance and returns the new balance.
func (l *WalletLedger) Credit(payerID string, amount domain.Money) (domain.Money, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	current, ok := l.balances[payerID]
	if !ok {
		l.balances[payerID] = amount
		return amount, nil
	}
	updated, err := current.Add(amount)
	if err != nil {
		return domain.Money{}, err
	}
	l.balances[payerID] = updated
	return updated, nil
}

// Balance returns the payer's current balance, if any.
func (l *WalletLedger) Balance(payerID string) (domain.Money, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.balances[payerID]
	return b, ok
}

// debit withdraws amount if the balance covers it.
func (l *WalletLedger) debit(payerID string, amount domain.Money) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	current, ok := l.balances[payerID]
	if !ok || current.Currency != amount.Currency || current.Amount < amount.Amount {
		return errors.NewAppError(errors.ValidationFailed, "insufficient wallet balance")
	}
	remaining, err := current.Sub(amount)
	if err != nil {
		return err
	}
	l.balances[payerID] = remaining
	return nil
}

// WalletPayment pays from a tracked prepaid balance. Success debits the
// balance; refunds are not supported.
type WalletPayment struct {
	channel
	ledger *WalletLedger
}

func NewWalletPayment(store domain.TransactionStore, ids *idgen.Generator, logger *slog.Logger, ledger *WalletLedger) *WalletPayment {
	return &WalletPayment{
		channel: channel{store: store, ids: ids, logger: logger},
		ledger:  ledger,
	}
}

func (p *WalletPayment) Pay(req domain.PayRequest) domain.PayResponse {
	t, err := p.open(MethodWallet, walletPrefix, req)
	if err != nil {
		return domain.FailedResponse("store failure: " + err.Error())
	}
	debitErr := p.ledger.debit(req.Payer.ID, req.Amount)
	if debitErr != nil {
		p.logger.Info("wallet debit rejected", "payer_id", req.Payer.ID, "error", debitErr)
	}
	return p.settle(t, debitErr == nil, "wallet success", "insufficient wallet balance")
}
