package services

import "github.com/cashbook-dev/cashbook/internal/core/domain"

// accountDefinitions is the fixed chart of accounts. The chart never changes
// at runtime; every posting references one of these accounts by code.
var accountDefinitions = []domain.Account{
	{Code: domain.AcctCash, Name: "Cash", Type: domain.AccountTypeAsset},
	{Code: domain.AcctBankAndEquivalent, Name: "Bank & Equivalent", Type: domain.AccountTypeAsset},
	{Code: domain.AcctAccountsReceivable, Name: "Accounts Receivable", Type: domain.AccountTypeAsset},
	{Code: domain.AcctAssetHighLiquidity, Name: "High Liquidity Assets", Type: domain.AccountTypeAsset},
	{Code: domain.AcctAssetModLiquidity, Name: "Moderate Liquidity Assets", Type: domain.AccountTypeAsset},
	{Code: domain.AcctAssetLowLiquidity, Name: "Low Liquidity Assets", Type: domain.AccountTypeAsset},
	{Code: domain.AcctAssetUnknownLiq, Name: "Unknown Liquidity Assets", Type: domain.AccountTypeAsset},
	{Code: domain.AcctAccountsPayable, Name: "Accounts Payable", Type: domain.Liability},
	{Code: domain.AcctCreditCardDebt, Name: "Credit Card Debt", Type: domain.Liability},
	{Code: domain.AcctOpeningBalance, Name: "Opening Balance", Type: domain.Equity},
	{Code: domain.AcctRetainedEarnings, Name: "Retained Earnings", Type: domain.Equity},
	{Code: domain.AcctIntercurrency, Name: "Intercurrency Conversion", Type: domain.Equity},
	{Code: domain.AcctCombinedIncome, Name: "Combined Income", Type: domain.Income},
	{Code: domain.AcctIncomeAdjustment, Name: "Minor Adjustment (Income)", Type: domain.Income},
	{Code: domain.AcctCombinedExpense, Name: "Combined Expense", Type: domain.Expense},
	{Code: domain.AcctExpenseAdjustment, Name: "Minor Adjustment (Expense)", Type: domain.Expense},
}

// PopulateAccounts materialises the chart. Deterministic, no I/O. The map and
// the list share the same account pointers so identity comparisons hold
// across the journal.
func PopulateAccounts() (map[domain.AccountCode]*domain.Account, []*domain.Account) {
	accountMap := make(map[domain.AccountCode]*domain.Account, len(accountDefinitions))
	accountList := make([]*domain.Account, 0, len(accountDefinitions))
	for i := range accountDefinitions {
		account := accountDefinitions[i]
		accountMap[account.Code] = &account
		accountList = append(accountList, &account)
	}
	return accountMap, accountList
}

// walletAccount resolves the balance-sheet account a wallet posts against.
// Credit cards are liabilities, cash is cash, everything else is treated as a
// bank equivalent.
func walletAccount(accountMap map[domain.AccountCode]*domain.Account, wallet *domain.Wallet) *domain.Account {
	switch wallet.Type {
	case domain.WalletCreditCard:
		return accountMap[domain.AcctCreditCardDebt]
	case domain.WalletCash:
		return accountMap[domain.AcctCash]
	default:
		return accountMap[domain.AcctBankAndEquivalent]
	}
}

// liquidityAccount routes an asset through its liquidity-tiered bucket.
func liquidityAccount(accountMap map[domain.AccountCode]*domain.Account, liquidity domain.Liquidity) *domain.Account {
	switch liquidity {
	case domain.LiquidityHigh:
		return accountMap[domain.AcctAssetHighLiquidity]
	case domain.LiquidityModerate:
		return accountMap[domain.AcctAssetModLiquidity]
	case domain.LiquidityLow:
		return accountMap[domain.AcctAssetLowLiquidity]
	default:
		return accountMap[domain.AcctAssetUnknownLiq]
	}
}
