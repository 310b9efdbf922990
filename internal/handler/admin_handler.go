package handler

import (
	"encoding/json"
	"net/http"

	"payment-gateway/internal/domain"
	"payment-gateway/internal/errors"
	"payment-gateway/internal/method"
	"payment-gateway/internal/scheduler"
	"payment-gateway/internal/service"
)

// AdminHandler covers the administrative surface: payer roster, wallet
// top-ups, recurring definitions and reporting.
type AdminHandler struct {
	payers          *service.PayerService
	wallet          *method.WalletLedger
	recurring       *scheduler.RecurringScheduler
	reports         *service.ReportGenerator
	store           domain.TransactionStore
	defaultCurrency string
}

func NewAdminHandler(
	payers *service.PayerService,
	wallet *method.WalletLedger,
	recurring *scheduler.RecurringScheduler,
	reports *service.ReportGenerator,
	store domain.TransactionStore,
	defaultCurrency string,
) *AdminHandler {
	return &AdminHandler{
		payers:          payers,
		wallet:          wallet,
		recurring:       recurring,
		reports:         reports,
		store:           store,
		defaultCurrency: defaultCurrency,
	}
}

type AddPayerRequest struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

func (h *AdminHandler) AddPayer(w http.ResponseWriter, r *http.Request) {
	var req AddPayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewAppError(errors.InvalidInput, "invalid request body").WithDetails(err.Error()))
		return
	}

	payer, err := h.payers.Add(req.ID, req.Name)
	if err != nil {
		writeAnyError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, payer)
}

func (h *AdminHandler) ListPayers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.payers.List())
}

type WalletCreditRequest struct {
	PayerID  string `json:"payer_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency,omitempty"`
}

type WalletCreditResponse struct {
	PayerID string       `json:"payer_id"`
	Balance domain.Money `json:"balance"`
}

func (h *AdminHandler) CreditWallet(w http.ResponseWriter, r *http.Request) {
	var req WalletCreditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewAppError(errors.InvalidInput, "invalid request body").WithDetails(err.Error()))
		return
	}
	if req.PayerID == "" || req.Amount <= 0 {
		writeError(w, errors.NewAppError(errors.InvalidInput, "payer_id and a positive amount are required"))
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = h.defaultCurrency
	}
	balance, err := h.wallet.Credit(req.PayerID, domain.NewMoney(req.Amount, currency))
	if err != nil {
		writeAnyError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, WalletCreditResponse{PayerID: req.PayerID, Balance: balance})
}

type ScheduleRequest struct {
	Method       string `json:"method,omitempty"`
	PayerID      string `json:"payer_id"`
	PayerName    string `json:"payer_name,omitempty"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency,omitempty"`
	IntervalDays int    `json:"interval_days"`
}

func (h *AdminHandler) ScheduleRecurring(w http.ResponseWriter, r *http.Request) {
	var req ScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewAppError(errors.InvalidInput, "invalid request body").WithDetails(err.Error()))
		return
	}
	if req.PayerID == "" || req.Amount <= 0 || req.IntervalDays <= 0 {
		writeError(w, errors.NewAppError(errors.InvalidInput, "payer_id, positive amount and interval_days are required"))
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = h.defaultCurrency
	}
	payer := domain.Payer{ID: req.PayerID, Name: req.PayerName}
	if req.PayerName == "" {
		if known, ok := h.payers.Get(req.PayerID); ok {
			payer = known
		}
	}

	def := h.recurring.Schedule(req.Method, domain.PayRequest{
		Payer:  payer,
		Amount: domain.NewMoney(req.Amount, currency),
	}, req.IntervalDays)
	writeJSON(w, http.StatusCreated, def)
}

func (h *AdminHandler) ListRecurring(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.recurring.Definitions())
}

func (h *AdminHandler) ProcessRecurring(w http.ResponseWriter, r *http.Request) {
	h.recurring.ProcessRecurring()
	writeJSON(w, http.StatusOK, map[string]string{"status": "processed"})
}

func (h *AdminHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	all, err := h.store.ListAll()
	if err != nil {
		writeAnyError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, all)
}

func (h *AdminHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.reports.Summary()
	if err != nil {
		writeAnyError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *AdminHandler) Report(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := h.reports.WriteReport(w); err != nil {
		writeAnyError(w, err)
	}
}
