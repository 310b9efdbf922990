package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payment-gateway/internal/domain"
)

func sampleTx(id string, status domain.Status) *domain.Transaction {
	return domain.NewTransaction(id, "CARD", domain.Payer{ID: "p1", Name: "Asha"}, domain.NewMoney(2500, "INR"), status)
}

func TestMemoryStoreSaveAndFind(t *testing.T) {
	store := NewMemoryTransactionStore()
	require.NoError(t, store.Save(sampleTx("CARD-1000", domain.StatusPending)))

	tx, err := store.Find("CARD-1000")
	require.NoError(t, err)
	require.NotNil(t, tx)
	assert.Equal(t, domain.StatusPending, tx.Status)

	missing, err := store.Find("CARD-9999")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemoryStoreLastWriteWins(t *testing.T) {
	store := NewMemoryTransactionStore()
	tx := sampleTx("CARD-1000", domain.StatusPending)
	require.NoError(t, store.Save(tx))

	require.NoError(t, tx.TransitionTo(domain.StatusSuccess))
	require.NoError(t, store.Save(tx))

	found, err := store.Find("CARD-1000")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSuccess, found.Status)

	all, err := store.ListAll()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	store := NewMemoryTransactionStore()
	require.NoError(t, store.Save(sampleTx("CARD-1000", domain.StatusPending)))

	first, err := store.Find("CARD-1000")
	require.NoError(t, err)
	first.Status = domain.StatusFailed

	second, err := store.Find("CARD-1000")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, second.Status, "mutating a returned value must not touch the store")
}
