package services

import (
	"context"

	"github.com/cashbook-dev/cashbook/internal/core/domain"
)

// ProgressFunc reports journal build progress. It is called with the number
// of records processed so far and the total, in roughly ten increments.
type ProgressFunc func(done, total int)

// AccountingSvcFacade derives the double-entry journal from source records.
type AccountingSvcFacade interface {
	// InitiateAccounting builds (or returns the cached) full journal along
	// with the chart of accounts. progress may be nil.
	InitiateAccounting(ctx context.Context, progress ProgressFunc) (*domain.AccountingResult, error)

	// ApplyJournalFilters windows the journal to [StartEpoch, EndEpoch),
	// collapsing prior history into synthetic opening entries.
	ApplyJournalFilters(ctx context.Context, journalEntryList []*domain.JournalEntry, filters domain.JournalFilters) ([]*domain.JournalEntry, error)
}

// LedgerSvcFacade projects the journal onto a single account.
type LedgerSvcFacade interface {
	GenerateLedgerFromJournal(ctx context.Context, journalEntryList []*domain.JournalEntry, accountMap map[domain.AccountCode]*domain.Account, accountCode domain.AccountCode) (*domain.Ledger, error)
}

// TrialBalanceSvcFacade aggregates the journal into per-currency, per-type
// net balances and closes income and expense into retained earnings.
type TrialBalanceSvcFacade interface {
	GenerateTrialBalanceFromJournal(ctx context.Context, journalEntryList []*domain.JournalEntry, accountMap map[domain.AccountCode]*domain.Account) (*domain.TrialBalance, error)
}

// ServiceContainer bundles the service interfaces for injection into the
// HTTP layer.
type ServiceContainer struct {
	Accounting   AccountingSvcFacade
	Ledger       LedgerSvcFacade
	TrialBalance TrialBalanceSvcFacade
}
