package domain

import "github.com/shopspring/decimal"

// CurrencyBalance is a balance in one currency, with currency metadata
// injected for downstream formatting.
type CurrencyBalance struct {
	CurrencyID string          `json:"currencyId"`
	Balance    decimal.Decimal `json:"balance"`
	Currency   *Currency       `json:"currency,omitempty"`
}

// LedgerEntry is one posting of the journal projected onto the ledger's
// account, carrying the running balance for that account and currency after
// the posting is applied.
type LedgerEntry struct {
	Serial       int             `json:"serial"`
	JournalEntry *JournalEntry   `json:"journalEntry"`
	Posting      Posting         `json:"posting"`
	IsDebit      bool            `json:"isDebit"`
	CurrencyID   string          `json:"currencyId"`
	Balance      decimal.Decimal `json:"balance"`
}

// Ledger is the projection of the full journal onto a single account.
type Ledger struct {
	Account        *Account          `json:"account"`
	IsBalanceDebit bool              `json:"isBalanceDebit"`
	EntryList      []LedgerEntry     `json:"entryList"`
	BalanceList    []CurrencyBalance `json:"balanceList"`
}

// TrialBalanceLine is one account's net balance within a type group,
// expressed on the group's natural side.
type TrialBalanceLine struct {
	Account        *Account        `json:"account"`
	Balance        decimal.Decimal `json:"balance"`
	IsBalanceDebit bool            `json:"isBalanceDebit"`
}

// TrialBalanceGroup aggregates one account type within one currency.
type TrialBalanceGroup struct {
	IsBalanceDebit bool               `json:"isBalanceDebit"`
	BalanceList    []TrialBalanceLine `json:"balanceList"`
	TotalBalance   decimal.Decimal    `json:"totalBalance"`
}

// CurrencyTrialBalance is the trial balance of one currency: a group per
// account type plus the outcome of the retained-earnings close.
type CurrencyTrialBalance struct {
	CurrencyID string    `json:"currencyId"`
	Currency   *Currency `json:"currency,omitempty"`

	Groups map[AccountType]*TrialBalanceGroup `json:"groups"`

	// RetainedEarnings and EquationGap record the close computation.
	// IsReconciled is false when they disagree; equity is then left un-closed
	// and the caller should surface a warning.
	RetainedEarnings decimal.Decimal `json:"retainedEarnings"`
	EquationGap      decimal.Decimal `json:"equationGap"`
	IsReconciled     bool            `json:"isReconciled"`
}

// TrialBalance is the full report, one per currency present in the journal.
type TrialBalance struct {
	CurrencyList []*CurrencyTrialBalance `json:"currencyList"`
}
