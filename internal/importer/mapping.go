package importer

import "fmt"

// Unmapped marks an optional field with no CSV column.
const Unmapped = -1

// ColumnMapping names which CSV column feeds each transaction field. The
// caller supplies it; the pipeline never infers columns from headers.
// Date, Amount, and Payee are required; Category and Security may be
// Unmapped.
type ColumnMapping struct {
	Date     int
	Amount   int
	Payee    int
	Category int
	Security int
}

// NewColumnMapping returns a mapping with required fields unset and
// optional fields unmapped.
func NewColumnMapping() ColumnMapping {
	return ColumnMapping{Date: Unmapped, Amount: Unmapped, Payee: Unmapped, Category: Unmapped, Security: Unmapped}
}

// Validate rejects a mapping with unmapped required fields or
// out-of-range column indices before any row is read.
func (m ColumnMapping) Validate(numCols int) error {
	required := map[string]int{"date": m.Date, "amount": m.Amount, "payee": m.Payee}
	for name, col := range required {
		if col == Unmapped {
			return fmt.Errorf("required field %s is not mapped", name)
		}
		if col < 0 || col >= numCols {
			return fmt.Errorf("field %s mapped to column %d, file has %d columns", name, col, numCols)
		}
	}
	for name, col := range map[string]int{"category": m.Category, "security": m.Security} {
		if col != Unmapped && (col < 0 || col >= numCols) {
			return fmt.Errorf("field %s mapped to column %d, file has %d columns", name, col, numCols)
		}
	}
	return nil
}
