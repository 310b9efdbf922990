package service

import (
	"payment-gateway/internal/domain"
	"payment-gateway/internal/errors"
)

// PayRequestValidator gates malformed requests before any side effect. It
// returns the first violation only.
type PayRequestValidator struct{}

func NewPayRequestValidator() *PayRequestValidator {
	return &PayRequestValidator{}
}

func (v *PayRequestValidator) Validate(req domain.PayRequest) *errors.AppError {
	if req.Amount.IsZero() {
		return errors.NewAppError(errors.ValidationFailed, "amount is required")
	}
	if req.Amount.Amount <= 0 {
		return errors.NewAppError(errors.ValidationFailed, "amount must be positive")
	}
	if req.Payer.ID == "" {
		return errors.NewAppError(errors.ValidationFailed, "payer is required")
	}
	return nil
}
