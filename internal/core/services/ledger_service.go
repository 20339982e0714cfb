package services

import (
	"context"
	"fmt"

	"github.com/cashbook-dev/cashbook/internal/apperrors"
	"github.com/cashbook-dev/cashbook/internal/core/domain"
	portsrepo "github.com/cashbook-dev/cashbook/internal/core/ports/repositories"
	portssvc "github.com/cashbook-dev/cashbook/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// ledgerService projects the journal onto a single account with a running
// per-currency balance.
type ledgerService struct {
	repo portsrepo.DocumentRepository
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(repo portsrepo.DocumentRepository) portssvc.LedgerSvcFacade {
	return &ledgerService{repo: repo}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// GenerateLedgerFromJournal implements portssvc.LedgerSvcFacade. The journal
// is walked in order; entries that never touch the account produce no ledger
// rows. Opening entries flow through the same projection as everything else,
// so the final running balance is exactly the sum of the matching signed
// postings.
func (s *ledgerService) GenerateLedgerFromJournal(ctx context.Context, journalEntryList []*domain.JournalEntry, accountMap map[domain.AccountCode]*domain.Account, accountCode domain.AccountCode) (*domain.Ledger, error) {
	account, ok := accountMap[accountCode]
	if !ok {
		return nil, fmt.Errorf("%w: account code %s", apperrors.ErrNotFound, accountCode)
	}
	isBalanceDebit := account.IncreasesOnDebit()

	running := make(map[string]decimal.Decimal)
	var currencyOrder []string
	apply := func(p domain.Posting, towardsBalance bool) decimal.Decimal {
		if _, seen := running[p.CurrencyID]; !seen {
			currencyOrder = append(currencyOrder, p.CurrencyID)
		}
		if towardsBalance {
			running[p.CurrencyID] = running[p.CurrencyID].Add(p.Amount)
		} else {
			running[p.CurrencyID] = running[p.CurrencyID].Sub(p.Amount)
		}
		return running[p.CurrencyID]
	}

	ledger := &domain.Ledger{
		Account:        account,
		IsBalanceDebit: isBalanceDebit,
	}
	serial := 0
	for _, entry := range journalEntryList {
		for _, p := range entry.DebitList {
			if p.Account.Code != accountCode {
				continue
			}
			ledger.EntryList = append(ledger.EntryList, domain.LedgerEntry{
				Serial:       serial,
				JournalEntry: entry,
				Posting:      p,
				IsDebit:      true,
				CurrencyID:   p.CurrencyID,
				Balance:      apply(p, isBalanceDebit),
			})
			serial++
		}
		for _, p := range entry.CreditList {
			if p.Account.Code != accountCode {
				continue
			}
			ledger.EntryList = append(ledger.EntryList, domain.LedgerEntry{
				Serial:       serial,
				JournalEntry: entry,
				Posting:      p,
				IsDebit:      false,
				CurrencyID:   p.CurrencyID,
				Balance:      apply(p, !isBalanceDebit),
			})
			serial++
		}
	}

	for _, currencyID := range currencyOrder {
		ledger.BalanceList = append(ledger.BalanceList, domain.CurrencyBalance{
			CurrencyID: currencyID,
			Balance:    running[currencyID],
		})
	}

	if err := injectLedgerCurrencies(ctx, s.repo, ledger); err != nil {
		return nil, err
	}
	return ledger, nil
}

func injectLedgerCurrencies(ctx context.Context, repo portsrepo.DocumentRepository, ledger *domain.Ledger) error {
	if len(ledger.BalanceList) == 0 {
		return nil
	}
	currencies, err := loadCurrencyMap(ctx, repo)
	if err != nil {
		return err
	}
	for i := range ledger.BalanceList {
		currency, ok := currencies[ledger.BalanceList[i].CurrencyID]
		if !ok {
			return fmt.Errorf("%w: ledger balance references currency %s", apperrors.ErrMissingCurrency, ledger.BalanceList[i].CurrencyID)
		}
		ledger.BalanceList[i].Currency = currency
	}
	return nil
}

func loadCurrencyMap(ctx context.Context, repo portsrepo.DocumentRepository) (map[string]*domain.Currency, error) {
	docs, err := listDocs[domain.Currency](ctx, repo, domain.CollectionCurrency)
	if err != nil {
		return nil, err
	}
	currencies := make(map[string]*domain.Currency, len(docs))
	for i := range docs {
		currencies[docs[i].CurrencyID] = &docs[i]
	}
	return currencies, nil
}
