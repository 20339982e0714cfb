package services_test

import (
	"context"
	"testing"

	"github.com/cashbook-dev/cashbook/internal/adapters/database/memory"
	"github.com/cashbook-dev/cashbook/internal/core/domain"
	"github.com/cashbook-dev/cashbook/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTrialBalanceFromJournal_ClosesIntoRetainedEarnings(t *testing.T) {
	repo := memory.NewDocumentRepository()
	result := buildTestJournal(t, repo)
	service := services.NewTrialBalanceService(repo)

	report, err := service.GenerateTrialBalanceFromJournal(context.Background(), result.JournalEntryList, result.AccountMap)
	require.NoError(t, err)
	require.Len(t, report.CurrencyList, 1)

	ctb := report.CurrencyList[0]
	assert.Equal(t, "usd", ctb.CurrencyID)
	require.NotNil(t, ctb.Currency)
	assert.Equal(t, "USD", ctb.Currency.Code)
	assert.True(t, ctb.IsReconciled)

	// Bank: 500 opening + 50 income - 100 expense.
	assets := ctb.Groups[domain.AccountTypeAsset]
	assert.True(t, assets.IsBalanceDebit)
	assert.True(t, assets.TotalBalance.Equal(dec("450")))

	income := ctb.Groups[domain.Income]
	assert.False(t, income.IsBalanceDebit)
	assert.True(t, income.TotalBalance.Equal(dec("50")))

	expense := ctb.Groups[domain.Expense]
	assert.True(t, expense.TotalBalance.Equal(dec("100")))

	assert.True(t, ctb.RetainedEarnings.Equal(dec("-50")))
	assert.True(t, ctb.EquationGap.Equal(dec("-50")))

	// The close appends retained earnings to equity, restoring the equation.
	equity := ctb.Groups[domain.Equity]
	require.Len(t, equity.BalanceList, 2)
	closing := equity.BalanceList[1]
	assert.Equal(t, domain.AcctRetainedEarnings, closing.Account.Code)
	assert.True(t, closing.Balance.Equal(dec("-50")))
	assert.True(t, equity.TotalBalance.Equal(dec("450")))
	assert.True(t, assets.TotalBalance.Equal(
		ctb.Groups[domain.Liability].TotalBalance.Add(equity.TotalBalance)))
}

func TestGenerateTrialBalanceFromJournal_OpeningOnly(t *testing.T) {
	repo := memory.NewDocumentRepository()
	ctx := context.Background()
	require.NoError(t, repo.Upsert(ctx, domain.CollectionCurrency, "usd", domain.Currency{CurrencyID: "usd", Code: "USD"}))
	require.NoError(t, repo.Upsert(ctx, domain.CollectionAsset, "a1", domain.Asset{
		AssetID: "a1", Name: "ETF", Liquidity: domain.LiquidityHigh, CurrencyID: "usd", InitialBalance: dec("1000"),
	}))

	result, err := services.NewAccountingService(repo).InitiateAccounting(ctx, nil)
	require.NoError(t, err)

	report, err := services.NewTrialBalanceService(repo).GenerateTrialBalanceFromJournal(ctx, result.JournalEntryList, result.AccountMap)
	require.NoError(t, err)
	require.Len(t, report.CurrencyList, 1)

	ctb := report.CurrencyList[0]
	assert.True(t, ctb.IsReconciled)
	assert.True(t, ctb.RetainedEarnings.IsZero())
	assert.True(t, ctb.EquationGap.IsZero())
	assert.True(t, ctb.Groups[domain.AccountTypeAsset].TotalBalance.Equal(dec("1000")))
	assert.True(t, ctb.Groups[domain.Equity].TotalBalance.Equal(dec("1000")))
}

func TestGenerateTrialBalanceFromJournal_LeavesEquityUnclosedOnMismatch(t *testing.T) {
	repo := memory.NewDocumentRepository()
	ctx := context.Background()
	require.NoError(t, repo.Upsert(ctx, domain.CollectionCurrency, "usd", domain.Currency{CurrencyID: "usd", Code: "USD"}))

	accountMap, _ := services.PopulateAccounts()
	// A one-sided entry: assets gain 100 with no counterweight anywhere.
	journal := []*domain.JournalEntry{{
		Serial: 0, Modality: domain.ModalityStandard,
		DebitList: []domain.Posting{{
			Account: accountMap[domain.AcctBankAndEquivalent], CurrencyID: "usd", Amount: dec("100"),
		}},
	}}

	report, err := services.NewTrialBalanceService(repo).GenerateTrialBalanceFromJournal(ctx, journal, accountMap)
	require.NoError(t, err)
	require.Len(t, report.CurrencyList, 1)

	ctb := report.CurrencyList[0]
	assert.False(t, ctb.IsReconciled)
	assert.True(t, ctb.RetainedEarnings.IsZero())
	assert.True(t, ctb.EquationGap.Equal(dec("100")))
	assert.Empty(t, ctb.Groups[domain.Equity].BalanceList, "no retained earnings line when the close does not reconcile")
}

func TestGenerateTrialBalanceFromJournal_MultiCurrency(t *testing.T) {
	repo := memory.NewDocumentRepository()
	ctx := context.Background()
	require.NoError(t, repo.Upsert(ctx, domain.CollectionCurrency, "usd", domain.Currency{CurrencyID: "usd", Code: "USD"}))
	require.NoError(t, repo.Upsert(ctx, domain.CollectionCurrency, "eur", domain.Currency{CurrencyID: "eur", Code: "EUR"}))
	require.NoError(t, repo.Upsert(ctx, domain.CollectionWallet, "w-usd", domain.Wallet{
		WalletID: "w-usd", Name: "USD Account", Type: domain.WalletBank, CurrencyID: "usd", InitialBalance: dec("100"),
	}))
	require.NoError(t, repo.Upsert(ctx, domain.CollectionWallet, "w-eur", domain.Wallet{
		WalletID: "w-eur", Name: "EUR Account", Type: domain.WalletBank, CurrencyID: "eur", InitialBalance: dec("200"),
	}))

	result, err := services.NewAccountingService(repo).InitiateAccounting(ctx, nil)
	require.NoError(t, err)

	report, err := services.NewTrialBalanceService(repo).GenerateTrialBalanceFromJournal(ctx, result.JournalEntryList, result.AccountMap)
	require.NoError(t, err)
	require.Len(t, report.CurrencyList, 2)

	for _, ctb := range report.CurrencyList {
		assert.True(t, ctb.IsReconciled, "each currency reconciles independently")
	}
	assert.True(t, report.CurrencyList[0].Groups[domain.AccountTypeAsset].TotalBalance.Equal(dec("100")))
	assert.True(t, report.CurrencyList[1].Groups[domain.AccountTypeAsset].TotalBalance.Equal(dec("200")))
}
