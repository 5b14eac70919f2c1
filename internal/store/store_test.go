package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eric-minassian/ericfinance-sub001/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func dec(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestAccounts_CreateGetList(t *testing.T) {
	st := newTestStore(t)

	acct, err := st.CreateAccount("Checking", model.AccountTypeChecking)
	require.NoError(t, err)
	require.NotEmpty(t, acct.ID)

	_, err = st.CreateAccount("Savings", model.AccountTypeSavings)
	require.NoError(t, err)

	found, err := st.GetAccountByName("Checking")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, acct.ID, found.ID)

	missing, err := st.GetAccountByName("Brokerage")
	require.NoError(t, err)
	assert.Nil(t, missing)

	accts, err := st.ListAccounts()
	require.NoError(t, err)
	require.Len(t, accts, 2)
	assert.Equal(t, "Checking", accts[0].Name)
	assert.Equal(t, "Savings", accts[1].Name)
}

func TestAccounts_NameUnique(t *testing.T) {
	st := newTestStore(t)

	_, err := st.CreateAccount("Checking", model.AccountTypeChecking)
	require.NoError(t, err)
	_, err = st.CreateAccount("Checking", model.AccountTypeSavings)
	assert.Error(t, err)
}

func TestAccounts_DeleteRejectedWhileReferenced(t *testing.T) {
	st := newTestStore(t)

	acct, err := st.CreateAccount("Checking", model.AccountTypeChecking)
	require.NoError(t, err)

	_, err = st.CommitImport(&ImportBatch{
		Source: "test.csv",
		Transactions: []model.Transaction{{
			ID:          uuid.NewString(),
			AccountID:   acct.ID,
			Date:        day(2024, 1, 1),
			Amount:      dec("-4.50"),
			Payee:       "Coffee Shop",
			Fingerprint: "fp-1",
		}},
	})
	require.NoError(t, err)

	err = st.DeleteAccount(acct.ID)
	assert.ErrorIs(t, err, ErrAccountInUse)

	// Still there.
	found, err := st.GetAccountByName("Checking")
	require.NoError(t, err)
	assert.NotNil(t, found)
}

func TestAccounts_Balance(t *testing.T) {
	st := newTestStore(t)

	acct, err := st.CreateAccount("Checking", model.AccountTypeChecking)
	require.NoError(t, err)
	_, err = st.CommitImport(&ImportBatch{
		Source: "test.csv",
		Transactions: []model.Transaction{
			{ID: uuid.NewString(), AccountID: acct.ID, Date: day(2024, 1, 1), Amount: dec("100.00"), Payee: "Payroll", Fingerprint: "fp-1"},
			{ID: uuid.NewString(), AccountID: acct.ID, Date: day(2024, 1, 2), Amount: dec("-4.50"), Payee: "Coffee Shop", Fingerprint: "fp-2"},
		},
	})
	require.NoError(t, err)

	bal, err := st.AccountBalance(acct.ID)
	require.NoError(t, err)
	assert.Equal(t, "95.50", bal.StringFixed(2))
}

func TestCategories_CaseInsensitiveUnique(t *testing.T) {
	st := newTestStore(t)

	cat, err := st.CreateCategory("Groceries")
	require.NoError(t, err)

	_, err = st.CreateCategory("GROCERIES")
	assert.Error(t, err)

	found, err := st.FindCategoryByName("groceries")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, cat.ID, found.ID)
	assert.Equal(t, "Groceries", found.Name)
}

func TestCategories_ListOrdered(t *testing.T) {
	st := newTestStore(t)

	for _, name := range []string{"Travel", "dining", "Groceries"} {
		_, err := st.CreateCategory(name)
		require.NoError(t, err)
	}

	cats, err := st.ListCategories()
	require.NoError(t, err)
	require.Len(t, cats, 3)
	assert.Equal(t, "dining", cats[0].Name)
	assert.Equal(t, "Groceries", cats[1].Name)
	assert.Equal(t, "Travel", cats[2].Name)
}

func TestCategories_DeleteClearsTransactionReferences(t *testing.T) {
	st := newTestStore(t)

	acct, err := st.CreateAccount("Checking", model.AccountTypeChecking)
	require.NoError(t, err)
	cat, err := st.CreateCategory("Dining")
	require.NoError(t, err)

	_, err = st.CommitImport(&ImportBatch{
		Source: "test.csv",
		Transactions: []model.Transaction{{
			ID:          uuid.NewString(),
			AccountID:   acct.ID,
			CategoryID:  &cat.ID,
			Date:        day(2024, 1, 1),
			Amount:      dec("-4.50"),
			Payee:       "Coffee Shop",
			Fingerprint: "fp-1",
		}},
	})
	require.NoError(t, err)

	require.NoError(t, st.DeleteCategory(cat.ID))

	txns, err := st.ListTransactions(acct.ID)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Nil(t, txns[0].CategoryID)
}

func TestSecurities_BatchAtomic(t *testing.T) {
	st := newTestStore(t)

	_, err := st.CreateSecurities([]model.Security{
		{Symbol: "VTI"},
		{Symbol: "VTI"}, // duplicate symbol fails the batch
	})
	require.Error(t, err)

	secs, err := st.ListSecurities()
	require.NoError(t, err)
	assert.Empty(t, secs, "failed batch must insert nothing")
}

func TestSecurities_FindBySymbol(t *testing.T) {
	st := newTestStore(t)

	_, err := st.CreateSecurities([]model.Security{{Symbol: "VTI", Name: "Total Market"}})
	require.NoError(t, err)

	sec, err := st.FindSecurityBySymbol("VTI")
	require.NoError(t, err)
	require.NotNil(t, sec)
	assert.Equal(t, "Total Market", sec.Name)

	missing, err := st.FindSecurityBySymbol("vti")
	require.NoError(t, err)
	assert.Nil(t, missing, "symbol matching is exact")
}

func TestSettings_SingletonAndNoChangeRecord(t *testing.T) {
	st := newTestStore(t)

	require.NoError(t, st.SetMarketDataKey("secret-1"))
	require.NoError(t, st.SetMarketDataKey("secret-2"))

	set, err := st.Setting()
	require.NoError(t, err)
	assert.Equal(t, "secret-2", set.MarketDataKey)

	// The key must never enter the change log.
	pending, err := st.PendingChanges()
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestSyncCursor_RoundTrip(t *testing.T) {
	st := newTestStore(t)

	rev, err := st.SyncCursor()
	require.NoError(t, err)
	assert.Equal(t, int64(0), rev)

	require.NoError(t, st.SetSyncCursor(42))
	rev, err = st.SyncCursor()
	require.NoError(t, err)
	assert.Equal(t, int64(42), rev)
}

func TestRules_CRUD(t *testing.T) {
	st := newTestStore(t)

	cat, err := st.CreateCategory("Dining")
	require.NoError(t, err)
	rule, err := st.CreateRule("coffee", cat.ID)
	require.NoError(t, err)

	rs, err := st.ListRules()
	require.NoError(t, err)
	require.Len(t, rs, 1)

	require.NoError(t, st.DeleteRule(rule.ID))
	rs, err = st.ListRules()
	require.NoError(t, err)
	assert.Empty(t, rs)
}
