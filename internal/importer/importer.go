// Package importer is the CSV import pipeline: it streams raw delimited
// text, maps columns onto transaction fields, resolves rows against
// existing entities through the reconciliation resolver, and commits the
// staged batch to the store atomically.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/eric-minassian/ericfinance-sub001/internal/fingerprint"
	"github.com/eric-minassian/ericfinance-sub001/internal/model"
	"github.com/eric-minassian/ericfinance-sub001/internal/resolver"
	"github.com/eric-minassian/ericfinance-sub001/internal/rules"
	"github.com/eric-minassian/ericfinance-sub001/internal/store"
)

// dateLayouts are the accepted date formats, tried in order.
var dateLayouts = []string{model.DateLayout, "01/02/2006"}

// RowError records one row that failed validation. Row errors never abort
// the batch; they are reported alongside the rows that did import.
type RowError struct {
	Row    int // 1-based data row number (header excluded)
	Reason string
}

// Result is the structured outcome of one import.
type Result struct {
	Imported          int
	SkippedDuplicates int
	RowErrors         []RowError
	CreatedAccount    bool
	CreatedCategories []string
	CreatedSecurities []string
}

// Importer stages CSV rows against the store.
type Importer struct {
	store    *store.Store
	resolver *resolver.Resolver
}

// New creates an Importer.
func New(st *store.Store, res *resolver.Resolver) *Importer {
	return &Importer{store: st, resolver: res}
}

// Import reads delimited text (header row first) and commits the staged
// batch in one store transaction. Rows are validated one at a time, in
// file order; a storage failure rolls the whole batch back and is
// returned as a single error, while row-level problems land in
// Result.RowErrors without aborting.
func (imp *Importer) Import(r io.Reader, mapping ColumnMapping, accountName, source string) (*Result, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header row: %w", err)
	}
	if err := mapping.Validate(len(header)); err != nil {
		return nil, fmt.Errorf("invalid column mapping: %w", err)
	}

	acct, err := imp.resolver.Account(accountName)
	if err != nil {
		return nil, err
	}
	result := &Result{}
	batch := &store.ImportBatch{Source: source}
	if acct == nil {
		acct = &model.Account{ID: uuid.NewString(), Name: accountName, Type: model.AccountTypeChecking}
		batch.Account = acct
		result.CreatedAccount = true
	}

	engine, err := rules.Load(imp.store)
	if err != nil {
		return nil, err
	}

	// Staged lookups so repeated names within one file resolve to the
	// same new entity, and an in-batch fingerprint set so identical rows
	// in one file collapse to a single transaction.
	stagedCategories := map[string]*model.Category{}
	stagedSecurities := map[string]*model.Security{}
	seen := map[string]bool{}

	for row := 1; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			result.RowErrors = append(result.RowErrors, RowError{Row: row, Reason: err.Error()})
			continue
		}
		if isEmptyRow(rec) {
			continue
		}

		date, amount, payee, reason := parseRow(rec, mapping)
		if reason != "" {
			result.RowErrors = append(result.RowErrors, RowError{Row: row, Reason: reason})
			continue
		}

		fp := fingerprint.Compute(acct.ID, date, amount, payee)
		if seen[fp] {
			result.SkippedDuplicates++
			continue
		}
		dup, err := imp.resolver.TransactionDuplicate(acct.ID, fp)
		if err != nil {
			return nil, err
		}
		if dup {
			result.SkippedDuplicates++
			continue
		}
		seen[fp] = true

		txn := model.Transaction{
			ID:          uuid.NewString(),
			AccountID:   acct.ID,
			Date:        date,
			Amount:      amount,
			Payee:       payee,
			Fingerprint: fp,
		}

		catID, err := imp.stageCategory(rec, mapping, engine, payee, batch, stagedCategories, result)
		if err != nil {
			return nil, err
		}
		if catID != "" {
			txn.CategoryID = &catID
		}
		secID, err := imp.stageSecurity(rec, mapping, batch, stagedSecurities, result)
		if err != nil {
			return nil, err
		}
		if secID != "" {
			txn.SecurityID = &secID
		}

		batch.Transactions = append(batch.Transactions, txn)
	}

	if len(batch.Transactions) == 0 && batch.Account == nil {
		return result, nil
	}
	if _, err := imp.store.CommitImport(batch); err != nil {
		return nil, fmt.Errorf("committing import: %w", err)
	}
	result.Imported = len(batch.Transactions)
	return result, nil
}

// parseRow extracts the typed required fields, returning a reason string
// when the row fails validation.
func parseRow(rec []string, m ColumnMapping) (time.Time, decimal.Decimal, string, string) {
	if len(rec) <= m.Date || len(rec) <= m.Amount || len(rec) <= m.Payee {
		return time.Time{}, decimal.Decimal{}, "",
			fmt.Sprintf("expected at least %d columns, got %d", maxRequiredCol(m)+1, len(rec))
	}

	rawDate := strings.TrimSpace(rec[m.Date])
	var date time.Time
	var err error
	for _, layout := range dateLayouts {
		date, err = time.Parse(layout, rawDate)
		if err == nil {
			break
		}
	}
	if err != nil {
		return time.Time{}, decimal.Decimal{}, "", fmt.Sprintf("unparsable date %q", rawDate)
	}

	rawAmount := strings.TrimSpace(rec[m.Amount])
	amount, err := decimal.NewFromString(rawAmount)
	if err != nil {
		return time.Time{}, decimal.Decimal{}, "", fmt.Sprintf("unparsable amount %q", rawAmount)
	}

	payee := strings.TrimSpace(rec[m.Payee])
	if payee == "" {
		return time.Time{}, decimal.Decimal{}, "", "missing payee"
	}
	return date, amount, payee, ""
}

func (imp *Importer) stageCategory(rec []string, m ColumnMapping, engine *rules.Engine, payee string, batch *store.ImportBatch, staged map[string]*model.Category, result *Result) (string, error) {
	if m.Category != Unmapped && m.Category < len(rec) {
		name := strings.TrimSpace(rec[m.Category])
		if name != "" {
			key := model.CategoryKey(name)
			if cat := staged[key]; cat != nil {
				return cat.ID, nil
			}
			existing, err := imp.resolver.Category(name)
			if err != nil {
				return "", err
			}
			if existing != nil {
				return existing.ID, nil
			}
			cat := &model.Category{ID: uuid.NewString(), Name: name, NameKey: key}
			staged[key] = cat
			batch.Categories = append(batch.Categories, *cat)
			result.CreatedCategories = append(result.CreatedCategories, name)
			return cat.ID, nil
		}
	}
	if id, ok := engine.Categorize(payee); ok {
		return id, nil
	}
	return "", nil
}

func (imp *Importer) stageSecurity(rec []string, m ColumnMapping, batch *store.ImportBatch, staged map[string]*model.Security, result *Result) (string, error) {
	if m.Security == Unmapped || m.Security >= len(rec) {
		return "", nil
	}
	symbol := strings.TrimSpace(rec[m.Security])
	if symbol == "" {
		return "", nil
	}
	if sec := staged[symbol]; sec != nil {
		return sec.ID, nil
	}
	existing, err := imp.resolver.Security(symbol)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return existing.ID, nil
	}
	sec := &model.Security{ID: uuid.NewString(), Symbol: symbol}
	staged[symbol] = sec
	batch.Securities = append(batch.Securities, *sec)
	result.CreatedSecurities = append(result.CreatedSecurities, symbol)
	return sec.ID, nil
}

func isEmptyRow(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func maxRequiredCol(m ColumnMapping) int {
	max := m.Date
	if m.Amount > max {
		max = m.Amount
	}
	if m.Payee > max {
		max = m.Payee
	}
	return max
}
