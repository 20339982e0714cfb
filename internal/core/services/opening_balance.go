package services

import (
	"github.com/cashbook-dev/cashbook/internal/core/domain"
	"github.com/cashbook-dev/cashbook/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// synthesizeInitialOpeningEntries builds the "beginning of time" opening
// entry for each currency from asset and wallet initial balances. Opening
// entries carry an epoch of zero; the journal builder re-stamps them onto the
// first real entry afterwards.
func synthesizeInitialOpeningEntries(cat *catalogs, accountMap map[domain.AccountCode]*domain.Account) []*domain.JournalEntry {
	openingEquity := accountMap[domain.AcctOpeningBalance]
	var entries []*domain.JournalEntry

	for _, currency := range cat.CurrencyList {
		var debits, credits []domain.Posting

		for _, asset := range cat.AssetList {
			if asset.CurrencyID != currency.CurrencyID || asset.InitialBalance.IsZero() {
				continue
			}
			debits = append(debits, domain.Posting{
				Account:    liquidityAccount(accountMap, asset.Liquidity),
				CurrencyID: currency.CurrencyID,
				Amount:     asset.InitialBalance,
			})
			credits = append(credits, domain.Posting{
				Account:    openingEquity,
				CurrencyID: currency.CurrencyID,
				Amount:     asset.InitialBalance,
			})
		}

		for _, wallet := range cat.WalletList {
			if wallet.CurrencyID != currency.CurrencyID || wallet.InitialBalance.IsZero() {
				continue
			}
			walletAcct := walletAccount(accountMap, wallet)
			amount := wallet.InitialBalance.Abs()

			if wallet.Type == domain.WalletCreditCard {
				// A negative balance on a credit card is debt carried into the
				// books; a positive one is an advance payment, the inverse.
				if wallet.InitialBalance.IsNegative() {
					credits = append(credits, domain.Posting{Account: walletAcct, CurrencyID: currency.CurrencyID, Amount: amount})
					debits = append(debits, domain.Posting{Account: openingEquity, CurrencyID: currency.CurrencyID, Amount: amount})
				} else {
					debits = append(debits, domain.Posting{Account: walletAcct, CurrencyID: currency.CurrencyID, Amount: amount})
					credits = append(credits, domain.Posting{Account: openingEquity, CurrencyID: currency.CurrencyID, Amount: amount})
				}
				continue
			}

			if wallet.InitialBalance.IsNegative() {
				credits = append(credits, domain.Posting{Account: walletAcct, CurrencyID: currency.CurrencyID, Amount: amount})
				debits = append(debits, domain.Posting{Account: openingEquity, CurrencyID: currency.CurrencyID, Amount: amount})
			} else {
				debits = append(debits, domain.Posting{Account: walletAcct, CurrencyID: currency.CurrencyID, Amount: amount})
				credits = append(credits, domain.Posting{Account: openingEquity, CurrencyID: currency.CurrencyID, Amount: amount})
			}
		}

		debits = accounting.FlattenPostings(debits)
		credits = accounting.FlattenPostings(credits)
		if len(debits) == 0 && len(credits) == 0 {
			continue
		}

		check := accounting.CheckBalance(debits, credits)
		entries = append(entries, &domain.JournalEntry{
			EntryEpoch:      0,
			Modality:        domain.ModalityOpening,
			DebitList:       debits,
			CreditList:      credits,
			Description:     "Opening Balance",
			IsMultiCurrency: check.IsMultiCurrency,
			IsBalanced:      check.IsBalanced,
			CurrencyIDList:  check.CurrencyIDList,
		})
	}

	return entries
}

// synthesizeOpeningForCutoff collapses every journal entry before a reporting
// window into synthetic opening entries. Entries that balance per currency
// collapse into one opening entry per currency; cross-currency history
// collapses into a single merged entry, never several.
func synthesizeOpeningForCutoff(priorEntries []*domain.JournalEntry) []*domain.JournalEntry {
	var balancedGroup, unbalancedGroup []*domain.JournalEntry
	for _, entry := range priorEntries {
		if entry.IsBalanced {
			balancedGroup = append(balancedGroup, entry)
		} else {
			unbalancedGroup = append(unbalancedGroup, entry)
		}
	}

	balancedOpening := collapseGroup(balancedGroup, "Opening Balance")
	unbalancedOpening := collapseGroup(unbalancedGroup, "Opening Balance (Cross-currency)")

	if len(unbalancedOpening) > 1 {
		unbalancedOpening = []*domain.JournalEntry{mergeOpeningEntries(unbalancedOpening)}
	}

	return append(balancedOpening, unbalancedOpening...)
}

// collapseGroup folds a group of entries into one synthetic opening entry per
// currency: per-account signed accumulation (debit positive, credit negative)
// split back into a debit line or a sign-flipped credit line.
func collapseGroup(group []*domain.JournalEntry, description string) []*domain.JournalEntry {
	type accountKey struct {
		code       domain.AccountCode
		currencyID string
	}
	balances := make(map[accountKey]decimal.Decimal)
	accounts := make(map[accountKey]*domain.Account)
	var currencyOrder []string
	var keyOrder []accountKey

	accumulate := func(p domain.Posting, sign int64) {
		k := accountKey{p.Account.Code, p.CurrencyID}
		if _, seen := balances[k]; !seen {
			keyOrder = append(keyOrder, k)
			accounts[k] = p.Account
		}
		if !containsString(currencyOrder, p.CurrencyID) {
			currencyOrder = append(currencyOrder, p.CurrencyID)
		}
		balances[k] = balances[k].Add(p.Amount.Mul(decimal.NewFromInt(sign)))
	}
	for _, entry := range group {
		for _, p := range entry.DebitList {
			accumulate(p, 1)
		}
		for _, p := range entry.CreditList {
			accumulate(p, -1)
		}
	}

	var entries []*domain.JournalEntry
	for _, currencyID := range currencyOrder {
		var debits, credits []domain.Posting
		for _, k := range keyOrder {
			if k.currencyID != currencyID || balances[k].IsZero() {
				continue
			}
			if balances[k].IsPositive() {
				debits = append(debits, domain.Posting{Account: accounts[k], CurrencyID: currencyID, Amount: balances[k]})
			} else {
				credits = append(credits, domain.Posting{Account: accounts[k], CurrencyID: currencyID, Amount: balances[k].Neg()})
			}
		}
		if len(debits) == 0 && len(credits) == 0 {
			continue
		}

		check := accounting.CheckBalance(debits, credits)
		entries = append(entries, &domain.JournalEntry{
			EntryEpoch:      0,
			Modality:        domain.ModalityOpening,
			DebitList:       debits,
			CreditList:      credits,
			Description:     description,
			IsMultiCurrency: check.IsMultiCurrency,
			IsBalanced:      check.IsBalanced,
			CurrencyIDList:  check.CurrencyIDList,
		})
	}
	return entries
}

// mergeOpeningEntries folds several per-currency opening entries into one
// multi-currency entry. The merged entry is by construction cross-currency
// and intentionally unbalanced per currency.
func mergeOpeningEntries(entries []*domain.JournalEntry) *domain.JournalEntry {
	merged := &domain.JournalEntry{
		EntryEpoch:      0,
		Modality:        domain.ModalityOpening,
		Description:     entries[0].Description,
		IsMultiCurrency: true,
		IsBalanced:      false,
	}
	for _, entry := range entries {
		merged.DebitList = append(merged.DebitList, entry.DebitList...)
		merged.CreditList = append(merged.CreditList, entry.CreditList...)
		for _, currencyID := range entry.CurrencyIDList {
			if !containsString(merged.CurrencyIDList, currencyID) {
				merged.CurrencyIDList = append(merged.CurrencyIDList, currencyID)
			}
		}
	}
	return merged
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
