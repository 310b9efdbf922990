package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payment-gateway/internal/domain"
	"payment-gateway/internal/idgen"
	"payment-gateway/internal/method"
	"payment-gateway/internal/repository"
	"payment-gateway/internal/scheduler"
	"payment-gateway/internal/service"
)

type testGateway struct {
	router *mux.Router
	store  *repository.MemoryTransactionStore
	ledger *method.WalletLedger
}

func newTestGateway(t *testing.T) *testGateway {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := repository.NewMemoryTransactionStore()
	ids := idgen.New()
	ledger := method.NewWalletLedger()

	registry := method.NewRegistry()
	registry.Register("card", method.NewCardPayment(store, ids, logger, nil, nil))
	registry.Register("upi", method.NewUPIPayment(store, ids, logger, nil, nil))
	registry.Register("wallet", method.NewWalletPayment(store, ids, logger, ledger))

	payments := service.NewPaymentService(registry, service.NewPayRequestValidator(), store, logger)
	payers := service.NewPayerService(repository.NewFilePayerStore(filepath.Join(t.TempDir(), "payers.txt")), logger)
	reports := service.NewReportGenerator(store)
	recurring := scheduler.NewRecurringScheduler(payments, ids,
		repository.NewFileRecurringStore(filepath.Join(t.TempDir(), "recurring.txt")), logger)

	paymentHandler := NewPaymentHandler(payments, payers, "INR")
	adminHandler := NewAdminHandler(payers, ledger, recurring, reports, store, "INR")

	router := mux.NewRouter()
	router.HandleFunc("/payments", paymentHandler.Pay).Methods("POST")
	router.HandleFunc("/refunds", paymentHandler.Refund).Methods("POST")
	router.HandleFunc("/transactions/{transaction_id}", paymentHandler.GetTransaction).Methods("GET")
	router.HandleFunc("/payers", adminHandler.AddPayer).Methods("POST")
	router.HandleFunc("/payers", adminHandler.ListPayers).Methods("GET")
	router.HandleFunc("/wallet/credit", adminHandler.CreditWallet).Methods("POST")
	router.HandleFunc("/recurring", adminHandler.ScheduleRecurring).Methods("POST")
	router.HandleFunc("/recurring/process", adminHandler.ProcessRecurring).Methods("POST")
	router.HandleFunc("/report", adminHandler.Report).Methods("GET")
	router.HandleFunc("/report/summary", adminHandler.Summary).Methods("GET")

	return &testGateway{router: router, store: store, ledger: ledger}
}

func (g *testGateway) do(t *testing.T, httpMethod, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(httpMethod, path, &buf)
	rec := httptest.NewRecorder()
	g.router.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var resp struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NoError(t, json.Unmarshal(resp.Data, out))
}

func TestPayEndpointSuccess(t *testing.T) {
	g := newTestGateway(t)

	rec := g.do(t, http.MethodPost, "/payments", PaymentRequest{
		Method:    "card",
		PayerID:   "p1",
		PayerName: "Asha",
		Amount:    2500,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp domain.PayResponse
	decodeData(t, rec, &resp)
	assert.True(t, resp.OK)
	assert.Equal(t, "card success", resp.Message)
	assert.NotEmpty(t, resp.TransactionID)
}

func TestPayEndpointUnknownMethod(t *testing.T) {
	g := newTestGateway(t)

	rec := g.do(t, http.MethodPost, "/payments", PaymentRequest{
		Method:  "cheque",
		PayerID: "p1",
		Amount:  2500,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp domain.PayResponse
	decodeData(t, rec, &resp)
	assert.False(t, resp.OK)
	assert.Empty(t, resp.TransactionID)
	assert.Equal(t, "method unsupported", resp.Message)
}

func TestPayEndpointInvalidBody(t *testing.T) {
	g := newTestGateway(t)

	req := httptest.NewRequest(http.MethodPost, "/payments", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	g.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRefundEndpointFlow(t *testing.T) {
	g := newTestGateway(t)

	payRec := g.do(t, http.MethodPost, "/payments", PaymentRequest{
		Method: "card", PayerID: "p1", PayerName: "Asha", Amount: 2500,
	})
	var payResp domain.PayResponse
	decodeData(t, payRec, &payResp)
	require.True(t, payResp.OK)

	refundRec := g.do(t, http.MethodPost, "/refunds", RefundRequest{
		Method:        "card",
		TransactionID: payResp.TransactionID,
		Amount:        2500,
	})
	require.Equal(t, http.StatusOK, refundRec.Code)

	var refundResp domain.PayResponse
	decodeData(t, refundRec, &refundResp)
	assert.True(t, refundResp.OK)

	txRec := g.do(t, http.MethodGet, "/transactions/"+payResp.TransactionID, nil)
	require.Equal(t, http.StatusOK, txRec.Code)
	var tx domain.Transaction
	decodeData(t, txRec, &tx)
	assert.Equal(t, domain.StatusRefunded, tx.Status)
}

func TestGetTransactionNotFound(t *testing.T) {
	g := newTestGateway(t)

	rec := g.do(t, http.MethodGet, "/transactions/CARD-404", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPayerRosterEndpoints(t *testing.T) {
	g := newTestGateway(t)

	rec := g.do(t, http.MethodPost, "/payers", AddPayerRequest{Name: "Asha"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created domain.Payer
	decodeData(t, rec, &created)
	assert.NotEmpty(t, created.ID, "an id is minted when none is supplied")

	listRec := g.do(t, http.MethodGet, "/payers", nil)
	require.Equal(t, http.StatusOK, listRec.Code)
	var payers []domain.Payer
	decodeData(t, listRec, &payers)
	assert.Len(t, payers, 1)
}

func TestWalletCreditAndPay(t *testing.T) {
	g := newTestGateway(t)

	creditRec := g.do(t, http.MethodPost, "/wallet/credit", WalletCreditRequest{
		PayerID: "p1", Amount: 10000,
	})
	require.Equal(t, http.StatusOK, creditRec.Code)
	var credit WalletCreditResponse
	decodeData(t, creditRec, &credit)
	assert.Equal(t, int64(10000), credit.Balance.Amount)

	payRec := g.do(t, http.MethodPost, "/payments", PaymentRequest{
		Method: "wallet", PayerID: "p1", PayerName: "Asha", Amount: 12000,
	})
	var payResp domain.PayResponse
	decodeData(t, payRec, &payResp)
	assert.False(t, payResp.OK)
	assert.Contains(t, payResp.Message, "insufficient")
}

func TestRecurringEndpoints(t *testing.T) {
	g := newTestGateway(t)

	rec := g.do(t, http.MethodPost, "/recurring", ScheduleRequest{
		Method:       "card",
		PayerID:      "p1",
		PayerName:    "Asha",
		Amount:       2500,
		IntervalDays: 1,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var def domain.RecurringDefinition
	decodeData(t, rec, &def)
	assert.NotEmpty(t, def.ID)
	assert.Equal(t, 1, def.IntervalDays)

	// Nothing is due yet, so processing creates no transactions.
	procRec := g.do(t, http.MethodPost, "/recurring/process", nil)
	require.Equal(t, http.StatusOK, procRec.Code)
	all, err := g.store.ListAll()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestReportEndpoints(t *testing.T) {
	g := newTestGateway(t)

	g.do(t, http.MethodPost, "/payments", PaymentRequest{
		Method: "card", PayerID: "p1", PayerName: "Asha", Amount: 2500,
	})

	reportRec := g.do(t, http.MethodGet, "/report", nil)
	require.Equal(t, http.StatusOK, reportRec.Code)
	assert.Contains(t, reportRec.Body.String(), "Transaction Report")

	summaryRec := g.do(t, http.MethodGet, "/report/summary", nil)
	require.Equal(t, http.StatusOK, summaryRec.Code)
	var summary service.ReportSummary
	decodeData(t, summaryRec, &summary)
	assert.Equal(t, 1, summary.Total)
	assert.Equal(t, 1, summary.Successful)
}
