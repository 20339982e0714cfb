package domain

import "github.com/shopspring/decimal"

// EntryModality distinguishes synthetic opening entries from entries converted
// out of user records.
type EntryModality string

const (
	ModalityOpening  EntryModality = "opening"
	ModalityStandard EntryModality = "standard"
)

// Posting is a single debit or credit line within a journal entry. The account
// is a shared reference into the chart; Currency is injected after conversion
// by joining against the currency collection.
type Posting struct {
	Account    *Account        `json:"account"`
	CurrencyID string          `json:"currencyId"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   *Currency       `json:"currency,omitempty"`
}

// JournalEntry is a per-currency-balanced group of postings representing one
// economic event. Entries are derived on every build and never persisted.
type JournalEntry struct {
	Serial          int           `json:"serial"`
	EntryEpoch      int64         `json:"entryEpoch"`
	Modality        EntryModality `json:"modality"`
	DebitList       []Posting     `json:"debitList"`
	CreditList      []Posting     `json:"creditList"`
	Description     string        `json:"description"`
	Notes           string        `json:"notes"`
	IsMultiCurrency bool          `json:"isMultiCurrency"`
	IsBalanced      bool          `json:"isBalanced"`
	CurrencyIDList  []string      `json:"currencyIdList"`
}

// AccountingResult is the output of one journal build: the chart plus the full
// derived journal, ordered with opening entries first.
type AccountingResult struct {
	AccountMap       map[AccountCode]*Account
	AccountList      []*Account
	JournalEntryList []*JournalEntry
}

// JournalFilters bounds a reporting window. Entries with
// StartEpoch <= entryEpoch < EndEpoch are kept; prior history collapses into
// synthetic opening entries.
type JournalFilters struct {
	StartEpoch int64 `json:"startEpoch"`
	EndEpoch   int64 `json:"endEpoch"`
}
