package domain

import "github.com/shopspring/decimal"

// Collection names used by the document store. Every entity lives as a JSON
// document in its own collection.
const (
	CollectionCurrency = "currency"
	CollectionWallet   = "wallet"
	CollectionAsset    = "asset"
	CollectionParty    = "party"
	CollectionAvenue   = "expense_avenue"
	CollectionSource   = "income_source"
	CollectionTag      = "tag"
	CollectionRecord   = "record"
)

// Currency is a user-defined currency. DisplayFormat metadata is carried for
// downstream formatting; the core only joins it onto postings.
type Currency struct {
	CurrencyID string `json:"currencyId"`
	Code       string `json:"code"`
	Symbol     string `json:"symbol"`
	Name       string `json:"name"`
}

// WalletType drives which balance-sheet account a wallet posts against.
type WalletType string

const (
	WalletCash       WalletType = "cash"
	WalletBank       WalletType = "bank"
	WalletCreditCard WalletType = "credit-card"
)

// Wallet is a container of money (cash, bank account, credit card).
type Wallet struct {
	WalletID       string          `json:"walletId"`
	Name           string          `json:"name"`
	Type           WalletType      `json:"type"`
	CurrencyID     string          `json:"currencyId"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
}

// Liquidity tiers an asset into one of four balance-sheet buckets.
type Liquidity string

const (
	LiquidityHigh     Liquidity = "high"
	LiquidityModerate Liquidity = "moderate"
	LiquidityLow      Liquidity = "low"
	LiquidityUnsure   Liquidity = "unsure"
)

// Asset is a non-wallet holding (stocks, property, collectibles).
type Asset struct {
	AssetID        string          `json:"assetId"`
	Name           string          `json:"name"`
	Liquidity      Liquidity       `json:"liquidity"`
	CurrencyID     string          `json:"currencyId"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
}

// Party is a counter-party to a transaction (person, shop, employer).
type Party struct {
	PartyID string `json:"partyId"`
	Name    string `json:"name"`
}

// ExpenseAvenue categorises expenses (groceries, rent, ...).
type ExpenseAvenue struct {
	AvenueID string `json:"avenueId"`
	Name     string `json:"name"`
}

// IncomeSource categorises income (salary, dividends, ...).
type IncomeSource struct {
	SourceID string `json:"sourceId"`
	Name     string `json:"name"`
}

// Tag is a free-form label attached to records.
type Tag struct {
	TagID string `json:"tagId"`
	Name  string `json:"name"`
}
