package services

import (
	"testing"

	"github.com/cashbook-dev/cashbook/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalogs() *catalogs {
	usd := &domain.Currency{CurrencyID: "usd", Code: "USD"}
	return &catalogs{
		Currencies:   map[string]*domain.Currency{"usd": usd},
		CurrencyList: []*domain.Currency{usd},
	}
}

func netAmount(list []domain.Posting, code domain.AccountCode) decimal.Decimal {
	total := decimal.Zero
	for _, p := range list {
		if p.Account.Code == code {
			total = total.Add(p.Amount)
		}
	}
	return total
}

func TestSynthesizeInitialOpeningEntries_WalletsAndAssets(t *testing.T) {
	accountMap, _ := PopulateAccounts()
	cat := testCatalogs()
	cat.WalletList = []*domain.Wallet{
		{WalletID: "w1", Name: "Checking", Type: domain.WalletBank, CurrencyID: "usd", InitialBalance: dec("500")},
		{WalletID: "w2", Name: "Visa", Type: domain.WalletCreditCard, CurrencyID: "usd", InitialBalance: dec("-200")},
	}
	cat.AssetList = []*domain.Asset{
		{AssetID: "a1", Name: "ETF", Liquidity: domain.LiquidityHigh, CurrencyID: "usd", InitialBalance: dec("1000")},
	}

	entries := synthesizeInitialOpeningEntries(cat, accountMap)
	require.Len(t, entries, 1)
	entry := entries[0]

	assert.Equal(t, domain.ModalityOpening, entry.Modality)
	assert.Equal(t, int64(0), entry.EntryEpoch)
	assert.Equal(t, "Opening Balance", entry.Description)
	assert.True(t, entry.IsBalanced)

	// Carried-in credit card debt sits on the liability side, its equity
	// counterweight on the debit side.
	assert.True(t, netAmount(entry.DebitList, domain.AcctBankAndEquivalent).Equal(dec("500")))
	assert.True(t, netAmount(entry.DebitList, domain.AcctAssetHighLiquidity).Equal(dec("1000")))
	assert.True(t, netAmount(entry.DebitList, domain.AcctOpeningBalance).Equal(dec("200")))
	assert.True(t, netAmount(entry.CreditList, domain.AcctCreditCardDebt).Equal(dec("200")))
	assert.True(t, netAmount(entry.CreditList, domain.AcctOpeningBalance).Equal(dec("1500")))

	// Flattening orders lines ascending by amount.
	for i := 1; i < len(entry.DebitList); i++ {
		assert.False(t, entry.DebitList[i].Amount.LessThan(entry.DebitList[i-1].Amount))
	}
}

func TestSynthesizeInitialOpeningEntries_NegativeBankBalance(t *testing.T) {
	accountMap, _ := PopulateAccounts()
	cat := testCatalogs()
	cat.WalletList = []*domain.Wallet{
		{WalletID: "w1", Name: "Overdrawn", Type: domain.WalletBank, CurrencyID: "usd", InitialBalance: dec("-75")},
	}

	entries := synthesizeInitialOpeningEntries(cat, accountMap)
	require.Len(t, entries, 1)

	assert.True(t, netAmount(entries[0].CreditList, domain.AcctBankAndEquivalent).Equal(dec("75")))
	assert.True(t, netAmount(entries[0].DebitList, domain.AcctOpeningBalance).Equal(dec("75")))
}

func TestSynthesizeInitialOpeningEntries_SkipsZeroBalances(t *testing.T) {
	accountMap, _ := PopulateAccounts()
	cat := testCatalogs()
	cat.WalletList = []*domain.Wallet{
		{WalletID: "w1", Name: "Empty", Type: domain.WalletCash, CurrencyID: "usd", InitialBalance: decimal.Zero},
	}

	entries := synthesizeInitialOpeningEntries(cat, accountMap)
	assert.Empty(t, entries)
}

func TestSynthesizeInitialOpeningEntries_PositiveCreditCardIsAdvance(t *testing.T) {
	accountMap, _ := PopulateAccounts()
	cat := testCatalogs()
	cat.WalletList = []*domain.Wallet{
		{WalletID: "w1", Name: "Visa", Type: domain.WalletCreditCard, CurrencyID: "usd", InitialBalance: dec("50")},
	}

	entries := synthesizeInitialOpeningEntries(cat, accountMap)
	require.Len(t, entries, 1)

	assert.True(t, netAmount(entries[0].DebitList, domain.AcctCreditCardDebt).Equal(dec("50")))
	assert.True(t, netAmount(entries[0].CreditList, domain.AcctOpeningBalance).Equal(dec("50")))
}

func TestSynthesizeOpeningForCutoff_CollapsesBalancedHistory(t *testing.T) {
	accountMap, _ := PopulateAccounts()
	bank := accountMap[domain.AcctBankAndEquivalent]
	expense := accountMap[domain.AcctCombinedExpense]
	income := accountMap[domain.AcctCombinedIncome]

	prior := []*domain.JournalEntry{
		{
			IsBalanced: true,
			DebitList:  []domain.Posting{{Account: expense, CurrencyID: "usd", Amount: dec("100")}},
			CreditList: []domain.Posting{{Account: bank, CurrencyID: "usd", Amount: dec("100")}},
		},
		{
			IsBalanced: true,
			DebitList:  []domain.Posting{{Account: bank, CurrencyID: "usd", Amount: dec("50")}},
			CreditList: []domain.Posting{{Account: income, CurrencyID: "usd", Amount: dec("50")}},
		},
	}

	opening := synthesizeOpeningForCutoff(prior)
	require.Len(t, opening, 1)
	entry := opening[0]

	assert.Equal(t, domain.ModalityOpening, entry.Modality)
	assert.Equal(t, "Opening Balance", entry.Description)
	assert.True(t, entry.IsBalanced)
	assert.True(t, netAmount(entry.DebitList, domain.AcctCombinedExpense).Equal(dec("100")))
	assert.True(t, netAmount(entry.CreditList, domain.AcctBankAndEquivalent).Equal(dec("50")), "bank nets -100+50 into one credit line")
	assert.True(t, netAmount(entry.CreditList, domain.AcctCombinedIncome).Equal(dec("50")))
}

func TestSynthesizeOpeningForCutoff_SplitsByCurrency(t *testing.T) {
	accountMap, _ := PopulateAccounts()
	bank := accountMap[domain.AcctBankAndEquivalent]
	expense := accountMap[domain.AcctCombinedExpense]

	prior := []*domain.JournalEntry{
		{
			IsBalanced: true,
			DebitList:  []domain.Posting{{Account: expense, CurrencyID: "usd", Amount: dec("100")}},
			CreditList: []domain.Posting{{Account: bank, CurrencyID: "usd", Amount: dec("100")}},
		},
		{
			IsBalanced: true,
			DebitList:  []domain.Posting{{Account: expense, CurrencyID: "eur", Amount: dec("20")}},
			CreditList: []domain.Posting{{Account: bank, CurrencyID: "eur", Amount: dec("20")}},
		},
	}

	opening := synthesizeOpeningForCutoff(prior)
	require.Len(t, opening, 2)
	assert.Equal(t, []string{"usd"}, opening[0].CurrencyIDList)
	assert.Equal(t, []string{"eur"}, opening[1].CurrencyIDList)
}

func TestSynthesizeOpeningForCutoff_MergesUnbalancedIntoOne(t *testing.T) {
	accountMap, _ := PopulateAccounts()
	bank := accountMap[domain.AcctBankAndEquivalent]

	prior := []*domain.JournalEntry{
		{
			IsBalanced: false,
			DebitList:  []domain.Posting{{Account: bank, CurrencyID: "usd", Amount: dec("100")}},
		},
		{
			IsBalanced: false,
			CreditList: []domain.Posting{{Account: bank, CurrencyID: "eur", Amount: dec("40")}},
		},
	}

	opening := synthesizeOpeningForCutoff(prior)
	require.Len(t, opening, 1)
	entry := opening[0]

	assert.True(t, entry.IsMultiCurrency)
	assert.False(t, entry.IsBalanced)
	assert.Equal(t, "Opening Balance (Cross-currency)", entry.Description)
	assert.ElementsMatch(t, []string{"usd", "eur"}, entry.CurrencyIDList)
	assert.True(t, netAmount(entry.DebitList, domain.AcctBankAndEquivalent).Equal(dec("100")))
	assert.True(t, netAmount(entry.CreditList, domain.AcctBankAndEquivalent).Equal(dec("40")))
}

func TestSynthesizeOpeningForCutoff_ZeroNetHistoryProducesNothing(t *testing.T) {
	accountMap, _ := PopulateAccounts()
	bank := accountMap[domain.AcctBankAndEquivalent]
	cash := accountMap[domain.AcctCash]

	prior := []*domain.JournalEntry{
		{
			IsBalanced: true,
			DebitList:  []domain.Posting{{Account: cash, CurrencyID: "usd", Amount: dec("30")}},
			CreditList: []domain.Posting{{Account: bank, CurrencyID: "usd", Amount: dec("30")}},
		},
		{
			IsBalanced: true,
			DebitList:  []domain.Posting{{Account: bank, CurrencyID: "usd", Amount: dec("30")}},
			CreditList: []domain.Posting{{Account: cash, CurrencyID: "usd", Amount: dec("30")}},
		},
	}

	opening := synthesizeOpeningForCutoff(prior)
	assert.Empty(t, opening)
}
