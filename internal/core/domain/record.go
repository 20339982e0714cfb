package domain

import "github.com/shopspring/decimal"

// RecordType discriminates the ten kinds of user-entered records. Exactly one
// matching detail sub-object is expected to be populated on a record; a record
// whose declared type has no matching sub-object converts to an empty journal
// entry (legacy tolerance, see the classifier).
type RecordType string

const (
	RecordExpense           RecordType = "expense"
	RecordIncome            RecordType = "income"
	RecordTransfer          RecordType = "money-transfer"
	RecordAssetPurchase     RecordType = "asset-purchase"
	RecordAssetSale         RecordType = "asset-sale"
	RecordAssetFluctuation  RecordType = "asset-appreciation-depreciation"
	RecordLending           RecordType = "lending"
	RecordBorrowing         RecordType = "borrowing"
	RecordRepaymentGiven    RecordType = "repayment-given"
	RecordRepaymentReceived RecordType = "repayment-received"
)

// ExpenseDetail carries an expense. AmountPaid below Amount leaves the
// remainder on accounts payable.
type ExpenseDetail struct {
	Amount     decimal.Decimal `json:"amount"`
	AmountPaid decimal.Decimal `json:"amountPaid"`
	CurrencyID string          `json:"currencyId"`
	WalletID   string          `json:"walletId"`
	PartyID    string          `json:"partyId"`
	AvenueID   string          `json:"avenueId"`

	// Embedded by inference, absent on the raw document.
	Wallet *Wallet        `json:"wallet,omitempty"`
	Party  *Party         `json:"party,omitempty"`
	Avenue *ExpenseAvenue `json:"avenue,omitempty"`
}

// IncomeDetail carries an income. AmountPaid below Amount leaves the
// remainder on accounts receivable.
type IncomeDetail struct {
	Amount     decimal.Decimal `json:"amount"`
	AmountPaid decimal.Decimal `json:"amountPaid"`
	CurrencyID string          `json:"currencyId"`
	WalletID   string          `json:"walletId"`
	PartyID    string          `json:"partyId"`
	SourceID   string          `json:"sourceId"`

	Wallet *Wallet       `json:"wallet,omitempty"`
	Party  *Party        `json:"party,omitempty"`
	Source *IncomeSource `json:"source,omitempty"`
}

// TransferDetail moves money between two wallets, possibly across currencies.
type TransferDetail struct {
	FromAmount     decimal.Decimal `json:"fromAmount"`
	ToAmount       decimal.Decimal `json:"toAmount"`
	FromCurrencyID string          `json:"fromCurrencyId"`
	ToCurrencyID   string          `json:"toCurrencyId"`
	FromWalletID   string          `json:"fromWalletId"`
	ToWalletID     string          `json:"toWalletId"`

	FromWallet *Wallet `json:"fromWallet,omitempty"`
	ToWallet   *Wallet `json:"toWallet,omitempty"`
}

// AssetTradeDetail covers asset purchases and sales, both partially payable.
type AssetTradeDetail struct {
	Amount     decimal.Decimal `json:"amount"`
	AmountPaid decimal.Decimal `json:"amountPaid"`
	CurrencyID string          `json:"currencyId"`
	WalletID   string          `json:"walletId"`
	AssetID    string          `json:"assetId"`
	PartyID    string          `json:"partyId"`

	Wallet *Wallet `json:"wallet,omitempty"`
	Asset  *Asset  `json:"asset,omitempty"`
	Party  *Party  `json:"party,omitempty"`
}

// AssetFluctuationDetail revalues an asset. A positive amount is an
// appreciation, a negative amount a depreciation.
type AssetFluctuationDetail struct {
	Amount     decimal.Decimal `json:"amount"`
	CurrencyID string          `json:"currencyId"`
	AssetID    string          `json:"assetId"`

	Asset *Asset `json:"asset,omitempty"`
}

// LoanDetail covers lending, borrowing and both repayment directions.
type LoanDetail struct {
	Amount     decimal.Decimal `json:"amount"`
	CurrencyID string          `json:"currencyId"`
	WalletID   string          `json:"walletId"`
	PartyID    string          `json:"partyId"`

	Wallet *Wallet `json:"wallet,omitempty"`
	Party  *Party  `json:"party,omitempty"`
}

// Record is one user-entered cash-flow event. It is a tagged union: Type
// names the variant and the matching detail pointer carries its fields.
type Record struct {
	RecordID         string     `json:"recordId"`
	Type             RecordType `json:"type"`
	TransactionEpoch int64      `json:"transactionEpoch"`
	Notes            string     `json:"notes"`
	TagIDs           []string   `json:"tagIds,omitempty"`

	Expense           *ExpenseDetail          `json:"expense,omitempty"`
	Income            *IncomeDetail           `json:"income,omitempty"`
	Transfer          *TransferDetail         `json:"transfer,omitempty"`
	AssetPurchase     *AssetTradeDetail       `json:"assetPurchase,omitempty"`
	AssetSale         *AssetTradeDetail       `json:"assetSale,omitempty"`
	AssetFluctuation  *AssetFluctuationDetail `json:"assetFluctuation,omitempty"`
	Lending           *LoanDetail             `json:"lending,omitempty"`
	Borrowing         *LoanDetail             `json:"borrowing,omitempty"`
	RepaymentGiven    *LoanDetail             `json:"repaymentGiven,omitempty"`
	RepaymentReceived *LoanDetail             `json:"repaymentReceived,omitempty"`

	// Embedded by inference.
	Tags []Tag `json:"tags,omitempty"`
}

// Clone returns a deep copy of the record so inference can embed resolved
// entities without mutating the caller's document.
func (r *Record) Clone() *Record {
	out := *r
	out.TagIDs = append([]string(nil), r.TagIDs...)
	out.Tags = append([]Tag(nil), r.Tags...)
	if r.Expense != nil {
		d := *r.Expense
		out.Expense = &d
	}
	if r.Income != nil {
		d := *r.Income
		out.Income = &d
	}
	if r.Transfer != nil {
		d := *r.Transfer
		out.Transfer = &d
	}
	if r.AssetPurchase != nil {
		d := *r.AssetPurchase
		out.AssetPurchase = &d
	}
	if r.AssetSale != nil {
		d := *r.AssetSale
		out.AssetSale = &d
	}
	if r.AssetFluctuation != nil {
		d := *r.AssetFluctuation
		out.AssetFluctuation = &d
	}
	if r.Lending != nil {
		d := *r.Lending
		out.Lending = &d
	}
	if r.Borrowing != nil {
		d := *r.Borrowing
		out.Borrowing = &d
	}
	if r.RepaymentGiven != nil {
		d := *r.RepaymentGiven
		out.RepaymentGiven = &d
	}
	if r.RepaymentReceived != nil {
		d := *r.RepaymentReceived
		out.RepaymentReceived = &d
	}
	return &out
}
