package resolver

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eric-minassian/ericfinance-sub001/internal/fingerprint"
	"github.com/eric-minassian/ericfinance-sub001/internal/model"
	"github.com/eric-minassian/ericfinance-sub001/internal/store"
)

func newTestResolver(t *testing.T) (*Resolver, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return New(st), st
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

func TestAccount_ExactMatchOnly(t *testing.T) {
	res, st := newTestResolver(t)

	acct, err := st.CreateAccount("Checking", model.AccountTypeChecking)
	require.NoError(t, err)

	found, err := res.Account("Checking")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, acct.ID, found.ID)

	// Account names are matched exactly: no normalization, no fuzz.
	miss, err := res.Account("checking")
	require.NoError(t, err)
	assert.Nil(t, miss)
}

func TestCategory_CaseInsensitive(t *testing.T) {
	res, st := newTestResolver(t)

	cat, err := st.CreateCategory("Groceries")
	require.NoError(t, err)

	found, err := res.Category("  GROCERIES ")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, cat.ID, found.ID)

	miss, err := res.Category("Grocery")
	require.NoError(t, err)
	assert.Nil(t, miss, "near-matches are new candidates, not merges")
}

func TestTransactionDuplicate_PerAccount(t *testing.T) {
	res, st := newTestResolver(t)

	a, err := st.CreateAccount("Checking", model.AccountTypeChecking)
	require.NoError(t, err)
	b, err := st.CreateAccount("Savings", model.AccountTypeSavings)
	require.NoError(t, err)

	fp := fingerprint.Compute(a.ID, day(2024, 1, 1), dec("-4.50"), "Coffee Shop")
	_, err = st.CommitImport(&store.ImportBatch{
		Source: "test.csv",
		Transactions: []model.Transaction{{
			ID: uuid.NewString(), AccountID: a.ID, Date: day(2024, 1, 1),
			Amount: dec("-4.50"), Payee: "Coffee Shop", Fingerprint: fp,
		}},
	})
	require.NoError(t, err)

	dup, err := res.TransactionDuplicate(a.ID, fp)
	require.NoError(t, err)
	assert.True(t, dup)

	// Same fingerprint under another account is not a duplicate.
	dup, err = res.TransactionDuplicate(b.ID, fp)
	require.NoError(t, err)
	assert.False(t, dup)
}

func TestApplyRemote_CreateNewEntities(t *testing.T) {
	res, st := newTestResolver(t)

	id := uuid.NewString()
	err := res.ApplyRemote(model.EntityAccount, model.OpCreate, id,
		[]byte(`{"ID":"`+id+`","Name":"Brokerage","Type":"investment"}`))
	require.NoError(t, err)

	acct, err := st.GetAccountByName("Brokerage")
	require.NoError(t, err)
	require.NotNil(t, acct)
	assert.Equal(t, id, acct.ID)

	// Remote applies must not echo into the local change log.
	pending, err := st.PendingChanges()
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestApplyRemote_CreateReusesNaturalKeyMatch(t *testing.T) {
	res, st := newTestResolver(t)

	local, err := st.CreateCategory("Dining")
	require.NoError(t, err)

	remoteID := uuid.NewString()
	err = res.ApplyRemote(model.EntityCategory, model.OpCreate, remoteID,
		[]byte(`{"ID":"`+remoteID+`","Name":"DINING"}`))
	require.NoError(t, err)

	cats, err := st.ListCategories()
	require.NoError(t, err)
	require.Len(t, cats, 1, "remote create of a known name must not duplicate")
	assert.Equal(t, local.ID, cats[0].ID)
	assert.Equal(t, "DINING", cats[0].Name, "remote fields land on the local row")
}

func TestApplyRemote_DuplicateTransactionSkipped(t *testing.T) {
	res, st := newTestResolver(t)

	a, err := st.CreateAccount("Checking", model.AccountTypeChecking)
	require.NoError(t, err)
	fp := fingerprint.Compute(a.ID, day(2024, 1, 1), dec("-4.50"), "Coffee Shop")
	_, err = st.CommitImport(&store.ImportBatch{
		Source: "test.csv",
		Transactions: []model.Transaction{{
			ID: uuid.NewString(), AccountID: a.ID, Date: day(2024, 1, 1),
			Amount: dec("-4.50"), Payee: "Coffee Shop", Fingerprint: fp,
		}},
	})
	require.NoError(t, err)

	err = res.ApplyRemote(model.EntityTransaction, model.OpCreate, uuid.NewString(),
		[]byte(`{"ID":"`+uuid.NewString()+`","AccountID":"`+a.ID+`","Amount":"-4.5","Payee":"Coffee Shop","Fingerprint":"`+fp+`"}`))
	require.NoError(t, err)

	txns, err := st.ListTransactions(a.ID)
	require.NoError(t, err)
	assert.Len(t, txns, 1)
}

func TestApplyRemote_Delete(t *testing.T) {
	res, st := newTestResolver(t)

	cat, err := st.CreateCategory("Dining")
	require.NoError(t, err)

	require.NoError(t, res.ApplyRemote(model.EntityCategory, model.OpDelete, cat.ID, nil))
	cats, err := st.ListCategories()
	require.NoError(t, err)
	assert.Empty(t, cats)

	// Deleting again is a no-op.
	require.NoError(t, res.ApplyRemote(model.EntityCategory, model.OpDelete, cat.ID, nil))
}

func TestApplyRemote_MalformedPayload(t *testing.T) {
	res, _ := newTestResolver(t)

	err := res.ApplyRemote(model.EntityAccount, model.OpCreate, uuid.NewString(), []byte(`{not json`))
	assert.ErrorIs(t, err, ErrMalformedPayload)

	err = res.ApplyRemote(model.EntityAccount, model.OpCreate, uuid.NewString(), []byte(`{"Name":""}`))
	assert.ErrorIs(t, err, ErrMalformedPayload)

	err = res.ApplyRemote("widget", model.OpCreate, uuid.NewString(), []byte(`{}`))
	assert.ErrorIs(t, err, ErrMalformedPayload)
}
