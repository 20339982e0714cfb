package services

import (
	"fmt"

	"github.com/cashbook-dev/cashbook/internal/apperrors"
	"github.com/cashbook-dev/cashbook/internal/core/domain"
	"github.com/shopspring/decimal"
)

// conversion is the classifier output for one record: the debit and credit
// postings plus a human-readable narration of the transaction.
type conversion struct {
	DebitList   []domain.Posting
	CreditList  []domain.Posting
	Description string
}

// convertRecord dispatches a record to the converter matching its declared
// type. A record whose type has no matching populated sub-object converts to
// an empty entry on purpose: older documents may carry shapes the current
// schema no longer produces, and those must flow through without failing the
// build.
func convertRecord(record *domain.Record, accountMap map[domain.AccountCode]*domain.Account) (conversion, error) {
	switch record.Type {
	case domain.RecordExpense:
		if record.Expense == nil {
			return conversion{}, nil
		}
		return convertExpense(record, accountMap)
	case domain.RecordIncome:
		if record.Income == nil {
			return conversion{}, nil
		}
		return convertIncome(record, accountMap)
	case domain.RecordTransfer:
		if record.Transfer == nil {
			return conversion{}, nil
		}
		return convertTransfer(record, accountMap)
	case domain.RecordAssetPurchase:
		if record.AssetPurchase == nil {
			return conversion{}, nil
		}
		return convertAssetPurchase(record, accountMap)
	case domain.RecordAssetSale:
		if record.AssetSale == nil {
			return conversion{}, nil
		}
		return convertAssetSale(record, accountMap)
	case domain.RecordAssetFluctuation:
		if record.AssetFluctuation == nil {
			return conversion{}, nil
		}
		return convertAssetFluctuation(record, accountMap)
	case domain.RecordLending:
		if record.Lending == nil {
			return conversion{}, nil
		}
		return convertLending(record, accountMap)
	case domain.RecordBorrowing:
		if record.Borrowing == nil {
			return conversion{}, nil
		}
		return convertBorrowing(record, accountMap)
	case domain.RecordRepaymentGiven:
		if record.RepaymentGiven == nil {
			return conversion{}, nil
		}
		return convertRepaymentGiven(record, accountMap)
	case domain.RecordRepaymentReceived:
		if record.RepaymentReceived == nil {
			return conversion{}, nil
		}
		return convertRepaymentReceived(record, accountMap)
	default:
		// Unrecognized type: same legacy tolerance as a payload mismatch.
		return conversion{}, nil
	}
}

// settle splits an owed amount between the wallet account and a suspense
// account (payable or receivable) according to how much was settled now.
func settle(walletAcct, suspenseAcct *domain.Account, currencyID string, amount, amountPaid decimal.Decimal) []domain.Posting {
	switch {
	case amountPaid.Equal(amount):
		return []domain.Posting{{Account: walletAcct, CurrencyID: currencyID, Amount: amount}}
	case amountPaid.IsZero():
		return []domain.Posting{{Account: suspenseAcct, CurrencyID: currencyID, Amount: amount}}
	default:
		return []domain.Posting{
			{Account: walletAcct, CurrencyID: currencyID, Amount: amountPaid},
			{Account: suspenseAcct, CurrencyID: currencyID, Amount: amount.Sub(amountPaid)},
		}
	}
}

func payStatus(amount, amountPaid decimal.Decimal) string {
	switch {
	case amountPaid.Equal(amount):
		return "fully paid"
	case amountPaid.IsZero():
		return "unpaid"
	default:
		return fmt.Sprintf("partially paid, %s settled", amountPaid.String())
	}
}

func partyName(party *domain.Party) string {
	if party == nil {
		return "an unnamed party"
	}
	return party.Name
}

func walletLabel(wallet *domain.Wallet) string {
	return fmt.Sprintf("%s (%s)", wallet.Name, wallet.Type)
}

func convertExpense(record *domain.Record, accountMap map[domain.AccountCode]*domain.Account) (conversion, error) {
	d := record.Expense
	if d == nil || d.Wallet == nil {
		return conversion{}, fmt.Errorf("%w: expense record %s has no expense payload", apperrors.ErrMalformattedData, record.RecordID)
	}
	walletAcct := walletAccount(accountMap, d.Wallet)

	return conversion{
		DebitList: []domain.Posting{
			{Account: accountMap[domain.AcctCombinedExpense], CurrencyID: d.CurrencyID, Amount: d.Amount},
		},
		CreditList: settle(walletAcct, accountMap[domain.AcctAccountsPayable], d.CurrencyID, d.Amount, d.AmountPaid),
		Description: fmt.Sprintf("Spent %s to %s from %s, %s",
			d.Amount.String(), partyName(d.Party), walletLabel(d.Wallet), payStatus(d.Amount, d.AmountPaid)),
	}, nil
}

func convertIncome(record *domain.Record, accountMap map[domain.AccountCode]*domain.Account) (conversion, error) {
	d := record.Income
	if d == nil || d.Wallet == nil {
		return conversion{}, fmt.Errorf("%w: income record %s has no income payload", apperrors.ErrMalformattedData, record.RecordID)
	}
	walletAcct := walletAccount(accountMap, d.Wallet)

	return conversion{
		DebitList: settle(walletAcct, accountMap[domain.AcctAccountsReceivable], d.CurrencyID, d.Amount, d.AmountPaid),
		CreditList: []domain.Posting{
			{Account: accountMap[domain.AcctCombinedIncome], CurrencyID: d.CurrencyID, Amount: d.Amount},
		},
		Description: fmt.Sprintf("Received %s from %s into %s, %s",
			d.Amount.String(), partyName(d.Party), walletLabel(d.Wallet), payStatus(d.Amount, d.AmountPaid)),
	}, nil
}

// convertTransfer posts money out of the source wallet and into the
// destination wallet. A same-currency amount difference is a transfer fee or
// gain; a cross-currency transfer is reconciled through the intercurrency
// equity suspense account so that each currency still nets to zero.
func convertTransfer(record *domain.Record, accountMap map[domain.AccountCode]*domain.Account) (conversion, error) {
	d := record.Transfer
	if d == nil || d.FromWallet == nil || d.ToWallet == nil {
		return conversion{}, fmt.Errorf("%w: transfer record %s has no transfer payload", apperrors.ErrMalformattedData, record.RecordID)
	}

	fromAcct := walletAccount(accountMap, d.FromWallet)
	toAcct := walletAccount(accountMap, d.ToWallet)

	debits := []domain.Posting{{Account: toAcct, CurrencyID: d.ToCurrencyID, Amount: d.ToAmount}}
	credits := []domain.Posting{{Account: fromAcct, CurrencyID: d.FromCurrencyID, Amount: d.FromAmount}}

	if d.FromCurrencyID == d.ToCurrencyID {
		diff := d.FromAmount.Sub(d.ToAmount)
		if diff.IsPositive() {
			debits = append(debits, domain.Posting{
				Account: accountMap[domain.AcctExpenseAdjustment], CurrencyID: d.FromCurrencyID, Amount: diff,
			})
		} else if diff.IsNegative() {
			credits = append(credits, domain.Posting{
				Account: accountMap[domain.AcctIncomeAdjustment], CurrencyID: d.FromCurrencyID, Amount: diff.Neg(),
			})
		}
	} else {
		intercurrency := accountMap[domain.AcctIntercurrency]
		debits = append(debits, domain.Posting{Account: intercurrency, CurrencyID: d.FromCurrencyID, Amount: d.FromAmount})
		credits = append(credits, domain.Posting{Account: intercurrency, CurrencyID: d.ToCurrencyID, Amount: d.ToAmount})
	}

	return conversion{
		DebitList:  debits,
		CreditList: credits,
		Description: fmt.Sprintf("Transferred %s from %s to %s (%s received)",
			d.FromAmount.String(), walletLabel(d.FromWallet), walletLabel(d.ToWallet), d.ToAmount.String()),
	}, nil
}

func convertAssetPurchase(record *domain.Record, accountMap map[domain.AccountCode]*domain.Account) (conversion, error) {
	d := record.AssetPurchase
	if d == nil || d.Wallet == nil || d.Asset == nil {
		return conversion{}, fmt.Errorf("%w: asset purchase record %s has no purchase payload", apperrors.ErrMalformattedData, record.RecordID)
	}
	walletAcct := walletAccount(accountMap, d.Wallet)
	assetAcct := liquidityAccount(accountMap, d.Asset.Liquidity)

	return conversion{
		DebitList: []domain.Posting{
			{Account: assetAcct, CurrencyID: d.CurrencyID, Amount: d.Amount},
		},
		CreditList: settle(walletAcct, accountMap[domain.AcctAccountsPayable], d.CurrencyID, d.Amount, d.AmountPaid),
		Description: fmt.Sprintf("Bought asset %s for %s from %s via %s, %s",
			d.Asset.Name, d.Amount.String(), partyName(d.Party), walletLabel(d.Wallet), payStatus(d.Amount, d.AmountPaid)),
	}, nil
}

func convertAssetSale(record *domain.Record, accountMap map[domain.AccountCode]*domain.Account) (conversion, error) {
	d := record.AssetSale
	if d == nil || d.Wallet == nil || d.Asset == nil {
		return conversion{}, fmt.Errorf("%w: asset sale record %s has no sale payload", apperrors.ErrMalformattedData, record.RecordID)
	}
	walletAcct := walletAccount(accountMap, d.Wallet)
	assetAcct := liquidityAccount(accountMap, d.Asset.Liquidity)

	return conversion{
		DebitList: settle(walletAcct, accountMap[domain.AcctAccountsReceivable], d.CurrencyID, d.Amount, d.AmountPaid),
		CreditList: []domain.Posting{
			{Account: assetAcct, CurrencyID: d.CurrencyID, Amount: d.Amount},
		},
		Description: fmt.Sprintf("Sold asset %s for %s to %s via %s, %s",
			d.Asset.Name, d.Amount.String(), partyName(d.Party), walletLabel(d.Wallet), payStatus(d.Amount, d.AmountPaid)),
	}, nil
}

// convertAssetFluctuation revalues an asset against combined income or
// expense. The sign of the amount picks the direction.
func convertAssetFluctuation(record *domain.Record, accountMap map[domain.AccountCode]*domain.Account) (conversion, error) {
	d := record.AssetFluctuation
	if d == nil || d.Asset == nil {
		return conversion{}, fmt.Errorf("%w: asset fluctuation record %s has no fluctuation payload", apperrors.ErrMalformattedData, record.RecordID)
	}
	assetAcct := liquidityAccount(accountMap, d.Asset.Liquidity)

	if d.Amount.Sign() >= 0 {
		return conversion{
			DebitList: []domain.Posting{
				{Account: assetAcct, CurrencyID: d.CurrencyID, Amount: d.Amount},
			},
			CreditList: []domain.Posting{
				{Account: accountMap[domain.AcctCombinedIncome], CurrencyID: d.CurrencyID, Amount: d.Amount},
			},
			Description: fmt.Sprintf("Asset %s appreciated by %s", d.Asset.Name, d.Amount.String()),
		}, nil
	}

	loss := d.Amount.Neg()
	return conversion{
		DebitList: []domain.Posting{
			{Account: accountMap[domain.AcctCombinedExpense], CurrencyID: d.CurrencyID, Amount: loss},
		},
		CreditList: []domain.Posting{
			{Account: assetAcct, CurrencyID: d.CurrencyID, Amount: loss},
		},
		Description: fmt.Sprintf("Asset %s depreciated by %s", d.Asset.Name, loss.String()),
	}, nil
}

func convertLending(record *domain.Record, accountMap map[domain.AccountCode]*domain.Account) (conversion, error) {
	d := record.Lending
	if d == nil || d.Wallet == nil {
		return conversion{}, fmt.Errorf("%w: lending record %s has no lending payload", apperrors.ErrMalformattedData, record.RecordID)
	}
	return conversion{
		DebitList: []domain.Posting{
			{Account: accountMap[domain.AcctAccountsReceivable], CurrencyID: d.CurrencyID, Amount: d.Amount},
		},
		CreditList: []domain.Posting{
			{Account: walletAccount(accountMap, d.Wallet), CurrencyID: d.CurrencyID, Amount: d.Amount},
		},
		Description: fmt.Sprintf("Lent %s to %s from %s",
			d.Amount.String(), partyName(d.Party), walletLabel(d.Wallet)),
	}, nil
}

func convertBorrowing(record *domain.Record, accountMap map[domain.AccountCode]*domain.Account) (conversion, error) {
	d := record.Borrowing
	if d == nil || d.Wallet == nil {
		return conversion{}, fmt.Errorf("%w: borrowing record %s has no borrowing payload", apperrors.ErrMalformattedData, record.RecordID)
	}
	return conversion{
		DebitList: []domain.Posting{
			{Account: walletAccount(accountMap, d.Wallet), CurrencyID: d.CurrencyID, Amount: d.Amount},
		},
		CreditList: []domain.Posting{
			{Account: accountMap[domain.AcctAccountsPayable], CurrencyID: d.CurrencyID, Amount: d.Amount},
		},
		Description: fmt.Sprintf("Borrowed %s from %s into %s",
			d.Amount.String(), partyName(d.Party), walletLabel(d.Wallet)),
	}, nil
}

func convertRepaymentGiven(record *domain.Record, accountMap map[domain.AccountCode]*domain.Account) (conversion, error) {
	d := record.RepaymentGiven
	if d == nil || d.Wallet == nil {
		return conversion{}, fmt.Errorf("%w: repayment-given record %s has no repayment payload", apperrors.ErrMalformattedData, record.RecordID)
	}
	return conversion{
		DebitList: []domain.Posting{
			{Account: accountMap[domain.AcctAccountsPayable], CurrencyID: d.CurrencyID, Amount: d.Amount},
		},
		CreditList: []domain.Posting{
			{Account: walletAccount(accountMap, d.Wallet), CurrencyID: d.CurrencyID, Amount: d.Amount},
		},
		Description: fmt.Sprintf("Repaid %s to %s from %s",
			d.Amount.String(), partyName(d.Party), walletLabel(d.Wallet)),
	}, nil
}

func convertRepaymentReceived(record *domain.Record, accountMap map[domain.AccountCode]*domain.Account) (conversion, error) {
	d := record.RepaymentReceived
	if d == nil || d.Wallet == nil {
		return conversion{}, fmt.Errorf("%w: repayment-received record %s has no repayment payload", apperrors.ErrMalformattedData, record.RecordID)
	}
	return conversion{
		DebitList: []domain.Posting{
			{Account: walletAccount(accountMap, d.Wallet), CurrencyID: d.CurrencyID, Amount: d.Amount},
		},
		CreditList: []domain.Posting{
			{Account: accountMap[domain.AcctAccountsReceivable], CurrencyID: d.CurrencyID, Amount: d.Amount},
		},
		Description: fmt.Sprintf("Received repayment of %s from %s into %s",
			d.Amount.String(), partyName(d.Party), walletLabel(d.Wallet)),
	}, nil
}
