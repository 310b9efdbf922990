package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"payment-gateway/internal/domain"
	"payment-gateway/internal/errors"
	"payment-gateway/internal/service"
)

// PaymentHandler exposes the payment and refund entry points.
type PaymentHandler struct {
	payments        *service.PaymentService
	payers          *service.PayerService
	defaultCurrency string
}

func NewPaymentHandler(payments *service.PaymentService, payers *service.PayerService, defaultCurrency string) *PaymentHandler {
	return &PaymentHandler{
		payments:        payments,
		payers:          payers,
		defaultCurrency: defaultCurrency,
	}
}

type PaymentRequest struct {
	Method    string            `json:"method"`
	PayerID   string            `json:"payer_id"`
	PayerName string            `json:"payer_name,omitempty"`
	Amount    int64             `json:"amount"`
	Currency  string            `json:"currency,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// resolvePayer fills the payer name from the roster when the caller sends
// only an id.
func (h *PaymentHandler) resolvePayer(id, name string) domain.Payer {
	if name == "" {
		if known, ok := h.payers.Get(id); ok {
			return known
		}
	}
	return domain.Payer{ID: id, Name: name}
}

func (h *PaymentHandler) currency(c string) string {
	if c == "" {
		return h.defaultCurrency
	}
	return c
}

func (h *PaymentHandler) Pay(w http.ResponseWriter, r *http.Request) {
	var req PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewAppError(errors.InvalidInput, "invalid request body").WithDetails(err.Error()))
		return
	}

	payReq := domain.PayRequest{
		Payer:    h.resolvePayer(req.PayerID, req.PayerName),
		Amount:   domain.NewMoney(req.Amount, h.currency(req.Currency)),
		Metadata: req.Metadata,
	}

	resp := h.payments.Execute(req.Method, payReq)
	writeJSON(w, http.StatusOK, resp)
}

type RefundRequest struct {
	Method        string `json:"method"`
	TransactionID string `json:"transaction_id"`
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency,omitempty"`
}

func (h *PaymentHandler) Refund(w http.ResponseWriter, r *http.Request) {
	var req RefundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewAppError(errors.InvalidInput, "invalid request body").WithDetails(err.Error()))
		return
	}

	amount := domain.NewMoney(req.Amount, h.currency(req.Currency))
	resp := h.payments.Refund(req.Method, req.TransactionID, amount)
	writeJSON(w, http.StatusOK, resp)
}

func (h *PaymentHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	txID := mux.Vars(r)["transaction_id"]

	t, err := h.payments.Find(txID)
	if err != nil {
		writeAnyError(w, err)
		return
	}
	if t == nil {
		writeError(w, errors.ErrTransactionNotFound)
		return
	}
	writeJSON(w, http.StatusOK, t)
}
