package types

// LedgerRecord is a single transaction record as returned by the ledger. Its shape differs
// between ledger versions so it is kept as a decoded JSON object; numbers are json.Number.
type LedgerRecord map[string]any

// Header returns the record's fee header sub-object, or nil when it is missing or malformed.
func (r LedgerRecord) Header() map[string]any {
	header, ok := r["header"].(map[string]any)
	if !ok {
		return nil
	}
	return header
}

// TransactionsPage is one page of an account's transaction history.
type TransactionsPage struct {
	Records []LedgerRecord
	// Cursor is where the next page starts. nil means the ledger reported no further history.
	Cursor *string
}
