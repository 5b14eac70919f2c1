// Package resolver is the single authority for deciding whether an
// incoming entity — from a CSV import or from inbound sync — is the same
// real-world thing as one already in the store. Matching is exact-key
// only (account name, normalized category name, security symbol,
// transaction fingerprint). No fuzzy matching: for financial data a false
// merge is worse than a missed one.
package resolver

import (
	"github.com/eric-minassian/ericfinance-sub001/internal/model"
	"github.com/eric-minassian/ericfinance-sub001/internal/store"
)

// Resolver matches candidate entities against the store.
type Resolver struct {
	store *store.Store
}

// New creates a Resolver over the store.
func New(st *store.Store) *Resolver {
	return &Resolver{store: st}
}

// Account returns the existing account with the exact name, or nil when
// the candidate is new.
func (r *Resolver) Account(name string) (*model.Account, error) {
	return r.store.GetAccountByName(name)
}

// Category returns the existing category matching name case-insensitively,
// or nil when the candidate is new.
func (r *Resolver) Category(name string) (*model.Category, error) {
	return r.store.FindCategoryByName(name)
}

// Security returns the existing security with the exact symbol, or nil
// when the candidate is new.
func (r *Resolver) Security(symbol string) (*model.Security, error) {
	return r.store.FindSecurityBySymbol(symbol)
}

// TransactionDuplicate reports whether a fingerprint already exists under
// the account. The same fingerprint under a different account is not a
// duplicate.
func (r *Resolver) TransactionDuplicate(accountID, fp string) (bool, error) {
	return r.store.TransactionExists(accountID, fp)
}
