package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	AccountTypeAsset AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// AccountCode is the stable identifier of an account in the fixed chart.
// Codes are compile-time constants and are never derived from user data.
type AccountCode string

const (
	AcctCash               AccountCode = "ASSET__CURRENT_ASSET__CASH"
	AcctBankAndEquivalent  AccountCode = "ASSET__CURRENT_ASSET__BANK_AND_EQUIVALENT"
	AcctAccountsReceivable AccountCode = "ASSET__ACCOUNTS_RECEIVABLE"
	AcctAssetHighLiquidity AccountCode = "ASSET__HIGH_LIQUIDITY"
	AcctAssetModLiquidity  AccountCode = "ASSET__MODERATE_LIQUIDITY"
	AcctAssetLowLiquidity  AccountCode = "ASSET__LOW_LIQUIDITY"
	AcctAssetUnknownLiq    AccountCode = "ASSET__UNKNOWN_LIQUIDITY"

	AcctAccountsPayable AccountCode = "LIABILITY__ACCOUNTS_PAYABLE"
	AcctCreditCardDebt  AccountCode = "LIABILITY__CREDIT_CARD_DEBT"

	AcctOpeningBalance   AccountCode = "EQUITY__OPENING_BALANCE"
	AcctRetainedEarnings AccountCode = "EQUITY__RETAINED_EARNINGS"
	AcctIntercurrency    AccountCode = "EQUITY__INTERCURRENCY"

	AcctCombinedIncome   AccountCode = "INCOME__COMBINED_INCOME"
	AcctIncomeAdjustment AccountCode = "INCOME__MINOR_ADJUSTMENT"

	AcctCombinedExpense   AccountCode = "EXPENSE__COMBINED_EXPENSE"
	AcctExpenseAdjustment AccountCode = "EXPENSE__MINOR_ADJUSTMENT"
)

// Account is one entry in the fixed chart of accounts. Accounts are created
// once at startup and shared by reference; they are never mutated or deleted.
type Account struct {
	Code AccountCode `json:"code"`
	Name string      `json:"name"`
	Type AccountType `json:"type"`
}

// IncreasesOnDebit reports whether the account's natural balance grows on the
// debit side (Asset and Expense accounts) rather than the credit side.
func (a *Account) IncreasesOnDebit() bool {
	return a.Type == AccountTypeAsset || a.Type == Expense
}
