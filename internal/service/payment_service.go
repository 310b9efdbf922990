package service

import (
	"log/slog"

	"payment-gateway/internal/domain"
	"payment-gateway/internal/method"
)

// PaymentService orchestrates a payment attempt: validate, resolve the
// strategy, dispatch, and surface the strategy's response unmodified. No
// call is ever retried; every failure is terminal for that call.
type PaymentService struct {
	registry  *method.Registry
	validator *PayRequestValidator
	store     domain.TransactionStore
	logger    *slog.Logger
}

func NewPaymentService(
	registry *method.Registry,
	validator *PayRequestValidator,
	store domain.TransactionStore,
	logger *slog.Logger,
) *PaymentService {
	return &PaymentService{
		registry:  registry,
		validator: validator,
		store:     store,
		logger:    logger,
	}
}

// Execute runs a payment through the named channel. Validation failures and
// unknown methods produce failed responses with no transaction created.
func (s *PaymentService) Execute(methodKey string, req domain.PayRequest) domain.PayResponse {
	if verr := s.validator.Validate(req); verr != nil {
		s.logger.Info("payment rejected by validator", "method", methodKey, "reason", verr.Message)
		return domain.FailedResponse(verr.Message)
	}

	strategy, ok := s.registry.Resolve(methodKey)
	if !ok {
		s.logger.Info("payment rejected, unknown method", "method", methodKey)
		return domain.FailedResponse("method unsupported")
	}

	s.logger.Info("dispatching payment",
		"method", methodKey,
		"payer_id", req.Payer.ID,
		"amount", req.Amount.String())
	return strategy.Pay(req)
}

// Refund runs a compensating refund through the named channel. Channels
// without the refund capability are rejected here, before any dispatch.
func (s *PaymentService) Refund(methodKey, txID string, amount domain.Money) domain.PayResponse {
	refunder, ok := s.registry.ResolveRefundable(methodKey)
	if !ok {
		s.logger.Info("refund rejected, method not refundable", "method", methodKey)
		return domain.FailedResponse("refund not supported")
	}

	s.logger.Info("dispatching refund", "method", methodKey, "transaction_id", txID, "amount", amount.String())
	return refunder.Refund(txID, amount)
}

// Find looks up a transaction by id; nil means not found.
func (s *PaymentService) Find(txID string) (*domain.Transaction, error) {
	return s.store.Find(txID)
}
