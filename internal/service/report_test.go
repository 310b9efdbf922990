package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payment-gateway/internal/domain"
	"payment-gateway/internal/repository"
)

func seedReportStore(t *testing.T) *repository.MemoryTransactionStore {
	t.Helper()
	store := repository.NewMemoryTransactionStore()
	payer := domain.Payer{ID: "p1", Name: "Asha"}

	records := []struct {
		id     string
		status domain.Status
	}{
		{"CARD-1000", domain.StatusSuccess},
		{"CARD-1001", domain.StatusFailed},
		{"UPI-1002", domain.StatusSuccess},
		{"R-1003", domain.StatusRefunded},
		{"BT-1004", domain.StatusPending},
	}
	for _, r := range records {
		tx := domain.NewTransaction(r.id, "CARD", payer, domain.NewMoney(2500, "INR"), r.status)
		require.NoError(t, store.Save(tx))
	}
	return store
}

func TestSummaryCountsByStatus(t *testing.T) {
	g := NewReportGenerator(seedReportStore(t))

	summary, err := g.Summary()
	require.NoError(t, err)
	assert.Equal(t, 5, summary.Total)
	assert.Equal(t, 2, summary.Successful)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1, summary.Pending)
	assert.Equal(t, 1, summary.Refunded)
}

func TestWriteReportRendersRowsAndTotals(t *testing.T) {
	g := NewReportGenerator(seedReportStore(t))

	var buf bytes.Buffer
	require.NoError(t, g.WriteReport(&buf))

	out := buf.String()
	assert.Contains(t, out, "Transaction Report")
	assert.Contains(t, out, "CARD-1000")
	assert.Contains(t, out, "INR 25.00")
	assert.Contains(t, out, "Total: 5")
	assert.Contains(t, out, "Refunded: 1")
}

func TestWriteReportEmptyStore(t *testing.T) {
	g := NewReportGenerator(repository.NewMemoryTransactionStore())

	var buf bytes.Buffer
	require.NoError(t, g.WriteReport(&buf))
	assert.Contains(t, buf.String(), "No transactions found.")
}
