package services

import (
	"testing"

	"github.com/cashbook-dev/cashbook/internal/apperrors"
	"github.com/cashbook-dev/cashbook/internal/core/domain"
	"github.com/cashbook-dev/cashbook/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	bankWallet = &domain.Wallet{WalletID: "w-bank", Name: "Checking", Type: domain.WalletBank, CurrencyID: "usd"}
	cashWallet = &domain.Wallet{WalletID: "w-cash", Name: "Pocket", Type: domain.WalletCash, CurrencyID: "usd"}
	cardWallet = &domain.Wallet{WalletID: "w-card", Name: "Visa", Type: domain.WalletCreditCard, CurrencyID: "usd"}
	eurWallet  = &domain.Wallet{WalletID: "w-eur", Name: "EUR Account", Type: domain.WalletBank, CurrencyID: "eur"}
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func singlePosting(t *testing.T, list []domain.Posting, code domain.AccountCode, amount string) {
	t.Helper()
	require.Len(t, list, 1)
	assert.Equal(t, code, list[0].Account.Code)
	assert.True(t, list[0].Amount.Equal(dec(amount)), "want %s, got %s", amount, list[0].Amount)
}

func TestConvertExpense_FullyPaid(t *testing.T) {
	accountMap, _ := PopulateAccounts()
	record := &domain.Record{
		RecordID: "r1",
		Type:     domain.RecordExpense,
		Expense: &domain.ExpenseDetail{
			Amount: dec("100"), AmountPaid: dec("100"), CurrencyID: "usd", Wallet: bankWallet,
		},
	}

	conv, err := convertRecord(record, accountMap)
	require.NoError(t, err)

	singlePosting(t, conv.DebitList, domain.AcctCombinedExpense, "100")
	singlePosting(t, conv.CreditList, domain.AcctBankAndEquivalent, "100")
	assert.True(t, accounting.CheckBalance(conv.DebitList, conv.CreditList).IsBalanced)
}

func TestConvertExpense_PartiallyPaidSplitsToPayable(t *testing.T) {
	accountMap, _ := PopulateAccounts()
	record := &domain.Record{
		RecordID: "r1",
		Type:     domain.RecordExpense,
		Expense: &domain.ExpenseDetail{
			Amount: dec("100"), AmountPaid: dec("40"), CurrencyID: "usd", Wallet: bankWallet,
		},
	}

	conv, err := convertRecord(record, accountMap)
	require.NoError(t, err)

	singlePosting(t, conv.DebitList, domain.AcctCombinedExpense, "100")
	require.Len(t, conv.CreditList, 2)
	assert.Equal(t, domain.AcctBankAndEquivalent, conv.CreditList[0].Account.Code)
	assert.True(t, conv.CreditList[0].Amount.Equal(dec("40")))
	assert.Equal(t, domain.AcctAccountsPayable, conv.CreditList[1].Account.Code)
	assert.True(t, conv.CreditList[1].Amount.Equal(dec("60")))
	assert.True(t, accounting.CheckBalance(conv.DebitList, conv.CreditList).IsBalanced)
}

func TestConvertExpense_UnpaidGoesFullyToPayable(t *testing.T) {
	accountMap, _ := PopulateAccounts()
	record := &domain.Record{
		RecordID: "r1",
		Type:     domain.RecordExpense,
		Expense: &domain.ExpenseDetail{
			Amount: dec("100"), AmountPaid: decimal.Zero, CurrencyID: "usd", Wallet: cardWallet,
		},
	}

	conv, err := convertRecord(record, accountMap)
	require.NoError(t, err)

	singlePosting(t, conv.CreditList, domain.AcctAccountsPayable, "100")
}

func TestConvertIncome_PartiallyReceivedSplitsToReceivable(t *testing.T) {
	accountMap, _ := PopulateAccounts()
	record := &domain.Record{
		RecordID: "r1",
		Type:     domain.RecordIncome,
		Income: &domain.IncomeDetail{
			Amount: dec("200"), AmountPaid: dec("150"), CurrencyID: "usd", Wallet: cashWallet,
		},
	}

	conv, err := convertRecord(record, accountMap)
	require.NoError(t, err)

	require.Len(t, conv.DebitList, 2)
	assert.Equal(t, domain.AcctCash, conv.DebitList[0].Account.Code)
	assert.True(t, conv.DebitList[0].Amount.Equal(dec("150")))
	assert.Equal(t, domain.AcctAccountsReceivable, conv.DebitList[1].Account.Code)
	assert.True(t, conv.DebitList[1].Amount.Equal(dec("50")))
	singlePosting(t, conv.CreditList, domain.AcctCombinedIncome, "200")
}

func TestConvertTransfer_SameCurrencyFeeDebitsExpenseAdjustment(t *testing.T) {
	accountMap, _ := PopulateAccounts()
	record := &domain.Record{
		RecordID: "r1",
		Type:     domain.RecordTransfer,
		Transfer: &domain.TransferDetail{
			FromAmount: dec("100"), ToAmount: dec("95"),
			FromCurrencyID: "usd", ToCurrencyID: "usd",
			FromWallet: bankWallet, ToWallet: cashWallet,
		},
	}

	conv, err := convertRecord(record, accountMap)
	require.NoError(t, err)

	require.Len(t, conv.DebitList, 2)
	assert.Equal(t, domain.AcctCash, conv.DebitList[0].Account.Code)
	assert.Equal(t, domain.AcctExpenseAdjustment, conv.DebitList[1].Account.Code)
	assert.True(t, conv.DebitList[1].Amount.Equal(dec("5")))
	singlePosting(t, conv.CreditList, domain.AcctBankAndEquivalent, "100")
	assert.True(t, accounting.CheckBalance(conv.DebitList, conv.CreditList).IsBalanced)
}

func TestConvertTransfer_SameCurrencyGainCreditsIncomeAdjustment(t *testing.T) {
	accountMap, _ := PopulateAccounts()
	record := &domain.Record{
		RecordID: "r1",
		Type:     domain.RecordTransfer,
		Transfer: &domain.TransferDetail{
			FromAmount: dec("100"), ToAmount: dec("102"),
			FromCurrencyID: "usd", ToCurrencyID: "usd",
			FromWallet: bankWallet, ToWallet: cashWallet,
		},
	}

	conv, err := convertRecord(record, accountMap)
	require.NoError(t, err)

	require.Len(t, conv.CreditList, 2)
	assert.Equal(t, domain.AcctIncomeAdjustment, conv.CreditList[1].Account.Code)
	assert.True(t, conv.CreditList[1].Amount.Equal(dec("2")))
	assert.True(t, accounting.CheckBalance(conv.DebitList, conv.CreditList).IsBalanced)
}

func TestConvertTransfer_CrossCurrencyBalancesThroughIntercurrency(t *testing.T) {
	accountMap, _ := PopulateAccounts()
	record := &domain.Record{
		RecordID: "r1",
		Type:     domain.RecordTransfer,
		Transfer: &domain.TransferDetail{
			FromAmount: dec("100"), ToAmount: dec("90"),
			FromCurrencyID: "usd", ToCurrencyID: "eur",
			FromWallet: bankWallet, ToWallet: eurWallet,
		},
	}

	conv, err := convertRecord(record, accountMap)
	require.NoError(t, err)

	require.Len(t, conv.DebitList, 2)
	assert.Equal(t, domain.AcctBankAndEquivalent, conv.DebitList[0].Account.Code)
	assert.Equal(t, "eur", conv.DebitList[0].CurrencyID)
	assert.Equal(t, domain.AcctIntercurrency, conv.DebitList[1].Account.Code)
	assert.Equal(t, "usd", conv.DebitList[1].CurrencyID)
	require.Len(t, conv.CreditList, 2)
	assert.Equal(t, domain.AcctIntercurrency, conv.CreditList[1].Account.Code)
	assert.Equal(t, "eur", conv.CreditList[1].CurrencyID)

	check := accounting.CheckBalance(conv.DebitList, conv.CreditList)
	assert.True(t, check.IsBalanced, "each currency must net to zero through the suspense account")
	assert.True(t, check.IsMultiCurrency)
}

func TestConvertAssetPurchase_DebitsLiquidityBucket(t *testing.T) {
	accountMap, _ := PopulateAccounts()
	record := &domain.Record{
		RecordID: "r1",
		Type:     domain.RecordAssetPurchase,
		AssetPurchase: &domain.AssetTradeDetail{
			Amount: dec("500"), AmountPaid: dec("500"), CurrencyID: "usd",
			Wallet: bankWallet,
			Asset:  &domain.Asset{AssetID: "a1", Name: "ETF", Liquidity: domain.LiquidityHigh},
		},
	}

	conv, err := convertRecord(record, accountMap)
	require.NoError(t, err)

	singlePosting(t, conv.DebitList, domain.AcctAssetHighLiquidity, "500")
	singlePosting(t, conv.CreditList, domain.AcctBankAndEquivalent, "500")
}

func TestConvertAssetSale_UnknownLiquidityFallsBack(t *testing.T) {
	accountMap, _ := PopulateAccounts()
	record := &domain.Record{
		RecordID: "r1",
		Type:     domain.RecordAssetSale,
		AssetSale: &domain.AssetTradeDetail{
			Amount: dec("300"), AmountPaid: dec("300"), CurrencyID: "usd",
			Wallet: bankWallet,
			Asset:  &domain.Asset{AssetID: "a1", Name: "Painting", Liquidity: domain.LiquidityUnsure},
		},
	}

	conv, err := convertRecord(record, accountMap)
	require.NoError(t, err)

	singlePosting(t, conv.DebitList, domain.AcctBankAndEquivalent, "300")
	singlePosting(t, conv.CreditList, domain.AcctAssetUnknownLiq, "300")
}

func TestConvertAssetFluctuation_Appreciation(t *testing.T) {
	accountMap, _ := PopulateAccounts()
	record := &domain.Record{
		RecordID: "r1",
		Type:     domain.RecordAssetFluctuation,
		AssetFluctuation: &domain.AssetFluctuationDetail{
			Amount: dec("50"), CurrencyID: "usd",
			Asset: &domain.Asset{AssetID: "a1", Name: "ETF", Liquidity: domain.LiquidityModerate},
		},
	}

	conv, err := convertRecord(record, accountMap)
	require.NoError(t, err)

	singlePosting(t, conv.DebitList, domain.AcctAssetModLiquidity, "50")
	singlePosting(t, conv.CreditList, domain.AcctCombinedIncome, "50")
}

func TestConvertAssetFluctuation_Depreciation(t *testing.T) {
	accountMap, _ := PopulateAccounts()
	record := &domain.Record{
		RecordID: "r1",
		Type:     domain.RecordAssetFluctuation,
		AssetFluctuation: &domain.AssetFluctuationDetail{
			Amount: dec("-50"), CurrencyID: "usd",
			Asset: &domain.Asset{AssetID: "a1", Name: "Car", Liquidity: domain.LiquidityLow},
		},
	}

	conv, err := convertRecord(record, accountMap)
	require.NoError(t, err)

	singlePosting(t, conv.DebitList, domain.AcctCombinedExpense, "50")
	singlePosting(t, conv.CreditList, domain.AcctAssetLowLiquidity, "50")
}

func TestConvertLoanRecords(t *testing.T) {
	accountMap, _ := PopulateAccounts()
	loan := &domain.LoanDetail{Amount: dec("75"), CurrencyID: "usd", Wallet: bankWallet}

	tests := []struct {
		name       string
		record     *domain.Record
		debitCode  domain.AccountCode
		creditCode domain.AccountCode
	}{
		{"lending", &domain.Record{RecordID: "r1", Type: domain.RecordLending, Lending: loan},
			domain.AcctAccountsReceivable, domain.AcctBankAndEquivalent},
		{"borrowing", &domain.Record{RecordID: "r2", Type: domain.RecordBorrowing, Borrowing: loan},
			domain.AcctBankAndEquivalent, domain.AcctAccountsPayable},
		{"repayment given", &domain.Record{RecordID: "r3", Type: domain.RecordRepaymentGiven, RepaymentGiven: loan},
			domain.AcctAccountsPayable, domain.AcctBankAndEquivalent},
		{"repayment received", &domain.Record{RecordID: "r4", Type: domain.RecordRepaymentReceived, RepaymentReceived: loan},
			domain.AcctBankAndEquivalent, domain.AcctAccountsReceivable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conv, err := convertRecord(tt.record, accountMap)
			require.NoError(t, err)
			singlePosting(t, conv.DebitList, tt.debitCode, "75")
			singlePosting(t, conv.CreditList, tt.creditCode, "75")
		})
	}
}

func TestConvertRecord_PayloadMismatchYieldsEmptyConversion(t *testing.T) {
	accountMap, _ := PopulateAccounts()
	record := &domain.Record{
		RecordID: "r1",
		Type:     domain.RecordExpense,
		// Income payload on an expense record: tolerated as empty.
		Income: &domain.IncomeDetail{Amount: dec("10"), Wallet: bankWallet},
	}

	conv, err := convertRecord(record, accountMap)
	require.NoError(t, err)
	assert.Empty(t, conv.DebitList)
	assert.Empty(t, conv.CreditList)
	assert.Empty(t, conv.Description)
}

func TestConvertRecord_UnknownTypeYieldsEmptyConversion(t *testing.T) {
	accountMap, _ := PopulateAccounts()
	record := &domain.Record{RecordID: "r1", Type: "subscription"}

	conv, err := convertRecord(record, accountMap)
	require.NoError(t, err)
	assert.Empty(t, conv.DebitList)
	assert.Empty(t, conv.CreditList)
}

func TestConvertExpense_MissingWalletIsMalformatted(t *testing.T) {
	accountMap, _ := PopulateAccounts()
	record := &domain.Record{
		RecordID: "r1",
		Type:     domain.RecordExpense,
		Expense:  &domain.ExpenseDetail{Amount: dec("10"), CurrencyID: "usd"},
	}

	_, err := convertRecord(record, accountMap)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrMalformattedData)
}
