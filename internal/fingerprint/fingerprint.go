// Package fingerprint derives the natural-key hash used to detect
// duplicate transactions. Matching is exact-key only: false merges are
// worse than missed merges for financial data, so there is deliberately
// no fuzzy variant of this.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/eric-minassian/ericfinance-sub001/internal/model"
)

// Compute returns the hex sha-256 of account|date|amount|payee. The amount
// is rendered with fixed two-decimal scale so "4.5" and "4.50" hash alike.
func Compute(accountID string, date time.Time, amount decimal.Decimal, payee string) string {
	h := sha256.Sum256(fmt.Appendf(nil, "%s|%s|%s|%s",
		accountID, date.Format(model.DateLayout), amount.StringFixed(2), payee))
	return hex.EncodeToString(h[:])
}
