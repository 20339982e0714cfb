package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cashbook-dev/cashbook/internal/apperrors"
	"github.com/cashbook-dev/cashbook/internal/core/domain"
	portsrepo "github.com/cashbook-dev/cashbook/internal/core/ports/repositories"
	portssvc "github.com/cashbook-dev/cashbook/internal/core/ports/services"
	"github.com/cashbook-dev/cashbook/internal/middleware"
	"github.com/cashbook-dev/cashbook/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// trialBalanceService nets the journal per account per currency and closes
// income and expense into retained earnings.
type trialBalanceService struct {
	repo portsrepo.DocumentRepository
}

// NewTrialBalanceService creates a new TrialBalanceService.
func NewTrialBalanceService(repo portsrepo.DocumentRepository) portssvc.TrialBalanceSvcFacade {
	return &trialBalanceService{repo: repo}
}

var _ portssvc.TrialBalanceSvcFacade = (*trialBalanceService)(nil)

var trialBalanceTypeOrder = []domain.AccountType{
	domain.AccountTypeAsset, domain.Liability, domain.Equity, domain.Income, domain.Expense,
}

// GenerateTrialBalanceFromJournal implements portssvc.TrialBalanceSvcFacade.
//
// Pass 1 expresses every account as a net-debit figure (debits add, credits
// subtract). Pass 2 buckets the figures by account type; credit-natured types
// are negated onto their natural side. The close appends retained earnings to
// equity only when it reconciles exactly (after 2-decimal rounding) with the
// accounting-equation gap; otherwise the result is flagged and equity stays
// un-closed.
func (s *trialBalanceService) GenerateTrialBalanceFromJournal(ctx context.Context, journalEntryList []*domain.JournalEntry, accountMap map[domain.AccountCode]*domain.Account) (*domain.TrialBalance, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	type accountNet struct {
		account *domain.Account
		net     decimal.Decimal
	}
	perCurrency := make(map[string]map[domain.AccountCode]*accountNet)
	accountOrder := make(map[string][]domain.AccountCode)
	var currencyOrder []string

	accumulate := func(p domain.Posting, sign int64) {
		nets, ok := perCurrency[p.CurrencyID]
		if !ok {
			nets = make(map[domain.AccountCode]*accountNet)
			perCurrency[p.CurrencyID] = nets
			currencyOrder = append(currencyOrder, p.CurrencyID)
		}
		entry, ok := nets[p.Account.Code]
		if !ok {
			entry = &accountNet{account: p.Account}
			nets[p.Account.Code] = entry
			accountOrder[p.CurrencyID] = append(accountOrder[p.CurrencyID], p.Account.Code)
		}
		entry.net = entry.net.Add(p.Amount.Mul(decimal.NewFromInt(sign)))
	}
	for _, entry := range journalEntryList {
		for _, p := range entry.DebitList {
			accumulate(p, 1)
		}
		for _, p := range entry.CreditList {
			accumulate(p, -1)
		}
	}

	report := &domain.TrialBalance{}
	for _, currencyID := range currencyOrder {
		ctb := &domain.CurrencyTrialBalance{
			CurrencyID: currencyID,
			Groups:     make(map[domain.AccountType]*domain.TrialBalanceGroup, len(trialBalanceTypeOrder)),
		}
		for _, accountType := range trialBalanceTypeOrder {
			ctb.Groups[accountType] = &domain.TrialBalanceGroup{
				IsBalanceDebit: accountType == domain.AccountTypeAsset || accountType == domain.Expense,
			}
		}

		for _, code := range accountOrder[currencyID] {
			net := perCurrency[currencyID][code]
			group := ctb.Groups[net.account.Type]
			balance := net.net
			if !group.IsBalanceDebit {
				// Accumulated debit-positive, but the type grows on credit.
				balance = balance.Neg()
			}
			group.BalanceList = append(group.BalanceList, domain.TrialBalanceLine{
				Account:        net.account,
				Balance:        balance,
				IsBalanceDebit: group.IsBalanceDebit,
			})
			group.TotalBalance = group.TotalBalance.Add(balance)
		}

		assets := ctb.Groups[domain.AccountTypeAsset]
		liabilities := ctb.Groups[domain.Liability]
		equity := ctb.Groups[domain.Equity]
		income := ctb.Groups[domain.Income]
		expense := ctb.Groups[domain.Expense]

		ctb.RetainedEarnings = accounting.RoundFinancial(income.TotalBalance.Sub(expense.TotalBalance))
		ctb.EquationGap = accounting.RoundFinancial(
			assets.TotalBalance.Sub(liabilities.TotalBalance.Add(equity.TotalBalance)))

		// Exact equality after rounding, deliberately stricter than the
		// ±0.001 entry tolerance.
		if ctb.RetainedEarnings.Equal(ctb.EquationGap) {
			ctb.IsReconciled = true
			equity.BalanceList = append(equity.BalanceList, domain.TrialBalanceLine{
				Account:        accountMap[domain.AcctRetainedEarnings],
				Balance:        ctb.RetainedEarnings,
				IsBalanceDebit: false,
			})
			equity.TotalBalance = equity.TotalBalance.Add(ctb.RetainedEarnings)
		} else {
			logger.Warn("Trial balance does not reconcile; leaving equity un-closed",
				slog.String("currency_id", currencyID),
				slog.String("retained_earnings", ctb.RetainedEarnings.String()),
				slog.String("equation_gap", ctb.EquationGap.String()))
		}

		for _, group := range ctb.Groups {
			group.TotalBalance = accounting.RoundFinancial(group.TotalBalance)
		}
		report.CurrencyList = append(report.CurrencyList, ctb)
	}

	if err := s.injectCurrencies(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *trialBalanceService) injectCurrencies(ctx context.Context, report *domain.TrialBalance) error {
	if len(report.CurrencyList) == 0 {
		return nil
	}
	currencies, err := loadCurrencyMap(ctx, s.repo)
	if err != nil {
		return err
	}
	for _, ctb := range report.CurrencyList {
		currency, ok := currencies[ctb.CurrencyID]
		if !ok {
			return fmt.Errorf("%w: trial balance references currency %s", apperrors.ErrMissingCurrency, ctb.CurrencyID)
		}
		ctb.Currency = currency
	}
	return nil
}
