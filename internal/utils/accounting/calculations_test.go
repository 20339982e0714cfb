package accounting_test

import (
	"testing"

	"github.com/cashbook-dev/cashbook/internal/core/domain"
	"github.com/cashbook-dev/cashbook/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testExpenseAcct = &domain.Account{Code: domain.AcctCombinedExpense, Name: "Combined Expense", Type: domain.Expense}
	testCashAcct    = &domain.Account{Code: domain.AcctCash, Name: "Cash", Type: domain.AccountTypeAsset}
	testBankAcct    = &domain.Account{Code: domain.AcctBankAndEquivalent, Name: "Bank & Equivalent", Type: domain.AccountTypeAsset}
)

func posting(account *domain.Account, currencyID string, amount string) domain.Posting {
	return domain.Posting{
		Account:    account,
		CurrencyID: currencyID,
		Amount:     decimal.RequireFromString(amount),
	}
}

func TestCheckBalance_SingleCurrencyBalanced(t *testing.T) {
	check := accounting.CheckBalance(
		[]domain.Posting{posting(testExpenseAcct, "usd", "100")},
		[]domain.Posting{posting(testCashAcct, "usd", "100")},
	)

	assert.True(t, check.IsBalanced)
	assert.False(t, check.IsMultiCurrency)
	assert.Equal(t, []string{"usd"}, check.CurrencyIDList)
}

func TestCheckBalance_WithinTolerance(t *testing.T) {
	check := accounting.CheckBalance(
		[]domain.Posting{posting(testExpenseAcct, "usd", "100.0005")},
		[]domain.Posting{posting(testCashAcct, "usd", "100")},
	)

	assert.True(t, check.IsBalanced, "a 0.0005 drift is within the ±0.001 tolerance")
}

func TestCheckBalance_BeyondTolerance(t *testing.T) {
	check := accounting.CheckBalance(
		[]domain.Posting{posting(testExpenseAcct, "usd", "100.01")},
		[]domain.Posting{posting(testCashAcct, "usd", "100")},
	)

	assert.False(t, check.IsBalanced)
}

func TestCheckBalance_MultiCurrencyNetsPerCurrency(t *testing.T) {
	check := accounting.CheckBalance(
		[]domain.Posting{
			posting(testBankAcct, "eur", "90"),
			posting(testExpenseAcct, "usd", "100"),
		},
		[]domain.Posting{
			posting(testCashAcct, "usd", "100"),
			posting(testBankAcct, "eur", "90"),
		},
	)

	assert.True(t, check.IsBalanced)
	assert.True(t, check.IsMultiCurrency)
	assert.Equal(t, []string{"eur", "usd"}, check.CurrencyIDList, "currency order is first-seen, debits before credits")
}

func TestCheckBalance_EmptyEntryIsBalanced(t *testing.T) {
	check := accounting.CheckBalance(nil, nil)

	assert.True(t, check.IsBalanced)
	assert.False(t, check.IsMultiCurrency)
	assert.Empty(t, check.CurrencyIDList)
}

func TestRoundFinancial(t *testing.T) {
	assert.True(t, decimal.RequireFromString("10.57").Equal(
		accounting.RoundFinancial(decimal.RequireFromString("10.565"))))
	assert.True(t, decimal.RequireFromString("-3.33").Equal(
		accounting.RoundFinancial(decimal.RequireFromString("-3.333"))))
}

func TestFlattenPostings_MergesAndSorts(t *testing.T) {
	flat := accounting.FlattenPostings([]domain.Posting{
		posting(testBankAcct, "usd", "500"),
		posting(testCashAcct, "usd", "30"),
		posting(testBankAcct, "usd", "250"),
	})

	require.Len(t, flat, 2)
	assert.Equal(t, domain.AcctCash, flat[0].Account.Code)
	assert.True(t, flat[0].Amount.Equal(decimal.RequireFromString("30")))
	assert.Equal(t, domain.AcctBankAndEquivalent, flat[1].Account.Code)
	assert.True(t, flat[1].Amount.Equal(decimal.RequireFromString("750")))
}

func TestFlattenPostings_KeepsCurrenciesApart(t *testing.T) {
	flat := accounting.FlattenPostings([]domain.Posting{
		posting(testBankAcct, "usd", "100"),
		posting(testBankAcct, "eur", "100"),
	})

	require.Len(t, flat, 2)
}

func TestFlattenPostings_DropsNonPositiveSums(t *testing.T) {
	flat := accounting.FlattenPostings([]domain.Posting{
		posting(testBankAcct, "usd", "100"),
		posting(testBankAcct, "usd", "-100"),
		posting(testCashAcct, "usd", "-5"),
	})

	assert.Empty(t, flat)
}

func TestFlattenPostings_Idempotent(t *testing.T) {
	once := accounting.FlattenPostings([]domain.Posting{
		posting(testBankAcct, "usd", "500"),
		posting(testCashAcct, "usd", "30"),
		posting(testBankAcct, "usd", "250"),
	})
	twice := accounting.FlattenPostings(once)

	require.Len(t, twice, len(once))
	for i := range once {
		assert.Equal(t, once[i].Account.Code, twice[i].Account.Code)
		assert.True(t, once[i].Amount.Equal(twice[i].Amount))
	}
}
