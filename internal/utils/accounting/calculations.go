package accounting

import (
	"sort"

	"github.com/cashbook-dev/cashbook/internal/core/domain"
	"github.com/shopspring/decimal"
)

// balanceTolerance absorbs floating-point drift from repeated rounding to two
// decimals. A currency whose net is within ±0.001 counts as balanced.
var balanceTolerance = decimal.New(1, -3)

// BalanceCheck is the per-entry balance verdict.
type BalanceCheck struct {
	CurrencyIDList  []string
	IsMultiCurrency bool
	IsBalanced      bool
}

// CheckBalance nets every debit against every credit per currency. It has no
// side effects and is used by every entry-producing step.
func CheckBalance(debitList, creditList []domain.Posting) BalanceCheck {
	net := make(map[string]decimal.Decimal)
	var order []string

	accumulate := func(p domain.Posting, sign decimal.Decimal) {
		if _, seen := net[p.CurrencyID]; !seen {
			order = append(order, p.CurrencyID)
		}
		net[p.CurrencyID] = net[p.CurrencyID].Add(p.Amount.Mul(sign))
	}
	for _, p := range debitList {
		accumulate(p, decimal.NewFromInt(1))
	}
	for _, p := range creditList {
		accumulate(p, decimal.NewFromInt(-1))
	}

	balanced := true
	for _, currencyID := range order {
		if net[currencyID].Abs().GreaterThan(balanceTolerance) {
			balanced = false
			break
		}
	}

	return BalanceCheck{
		CurrencyIDList:  order,
		IsMultiCurrency: len(order) > 1,
		IsBalanced:      balanced,
	}
}

// RoundFinancial rounds an amount to two-decimal financial precision.
func RoundFinancial(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FlattenPostings sums postings that hit the same account in the same
// currency into one line, drops zero and negative lines, and orders the
// remainder ascending by amount. Flattening an already-flat list is a no-op
// apart from the ordering.
func FlattenPostings(postings []domain.Posting) []domain.Posting {
	type key struct {
		code       domain.AccountCode
		currencyID string
	}
	sums := make(map[key]decimal.Decimal)
	accounts := make(map[key]*domain.Account)
	var order []key

	for _, p := range postings {
		k := key{p.Account.Code, p.CurrencyID}
		if _, seen := sums[k]; !seen {
			order = append(order, k)
			accounts[k] = p.Account
		}
		sums[k] = sums[k].Add(p.Amount)
	}

	out := make([]domain.Posting, 0, len(order))
	for _, k := range order {
		if sums[k].LessThanOrEqual(decimal.Zero) {
			continue
		}
		out = append(out, domain.Posting{
			Account:    accounts[k],
			CurrencyID: k.currencyID,
			Amount:     sums[k],
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.LessThan(out[j].Amount)
	})
	return out
}
