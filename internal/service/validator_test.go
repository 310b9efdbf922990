package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payment-gateway/internal/domain"
)

func TestValidateAcceptsWellFormedRequest(t *testing.T) {
	v := NewPayRequestValidator()
	err := v.Validate(domain.PayRequest{
		Payer:  domain.Payer{ID: "p1", Name: "Asha"},
		Amount: domain.NewMoney(2500, "INR"),
	})
	assert.Nil(t, err)
}

func TestValidateReturnsFirstViolationOnly(t *testing.T) {
	v := NewPayRequestValidator()

	// Missing amount wins over missing payer.
	err := v.Validate(domain.PayRequest{})
	require.NotNil(t, err)
	assert.Equal(t, "amount is required", err.Message)

	err = v.Validate(domain.PayRequest{Amount: domain.NewMoney(-5, "INR")})
	require.NotNil(t, err)
	assert.Equal(t, "amount must be positive", err.Message)

	err = v.Validate(domain.PayRequest{Amount: domain.NewMoney(0, "INR")})
	require.NotNil(t, err)
	assert.Equal(t, "amount must be positive", err.Message)

	err = v.Validate(domain.PayRequest{Amount: domain.NewMoney(100, "INR")})
	require.NotNil(t, err)
	assert.Equal(t, "payer is required", err.Message)
}
