package dto

import (
	"github.com/cashbook-dev/cashbook/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostingResponse is one debit or credit line of a journal entry.
type PostingResponse struct {
	AccountCode  string          `json:"accountCode"`
	AccountName  string          `json:"accountName"`
	CurrencyID   string          `json:"currencyId"`
	CurrencyCode string          `json:"currencyCode,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
}

// JournalEntryResponse is one derived journal entry.
type JournalEntryResponse struct {
	Serial          int               `json:"serial"`
	EntryEpoch      int64             `json:"entryEpoch"`
	Modality        string            `json:"modality"`
	Description     string            `json:"description"`
	Notes           string            `json:"notes,omitempty"`
	IsMultiCurrency bool              `json:"isMultiCurrency"`
	IsBalanced      bool              `json:"isBalanced"`
	CurrencyIDList  []string          `json:"currencyIdList"`
	DebitList       []PostingResponse `json:"debitList"`
	CreditList      []PostingResponse `json:"creditList"`
}

// JournalResponse is the journal listing payload.
type JournalResponse struct {
	Entries []JournalEntryResponse `json:"entries"`
}

// CurrencyBalanceResponse is a balance in one currency.
type CurrencyBalanceResponse struct {
	CurrencyID   string          `json:"currencyId"`
	CurrencyCode string          `json:"currencyCode,omitempty"`
	Balance      decimal.Decimal `json:"balance"`
}

// LedgerEntryResponse is one ledger row with its running balance.
type LedgerEntryResponse struct {
	Serial        int             `json:"serial"`
	JournalSerial int             `json:"journalSerial"`
	EntryEpoch    int64           `json:"entryEpoch"`
	Description   string          `json:"description"`
	IsDebit       bool            `json:"isDebit"`
	CurrencyID    string          `json:"currencyId"`
	Amount        decimal.Decimal `json:"amount"`
	Balance       decimal.Decimal `json:"balance"`
}

// LedgerResponse is the per-account ledger payload.
type LedgerResponse struct {
	AccountCode    string                    `json:"accountCode"`
	AccountName    string                    `json:"accountName"`
	AccountType    string                    `json:"accountType"`
	IsBalanceDebit bool                      `json:"isBalanceDebit"`
	Entries        []LedgerEntryResponse     `json:"entries"`
	Balances       []CurrencyBalanceResponse `json:"balances"`
}

// TrialBalanceLineResponse is one account's net balance within a type group.
type TrialBalanceLineResponse struct {
	AccountCode    string          `json:"accountCode"`
	AccountName    string          `json:"accountName"`
	Balance        decimal.Decimal `json:"balance"`
	IsBalanceDebit bool            `json:"isBalanceDebit"`
}

// TrialBalanceGroupResponse aggregates one account type.
type TrialBalanceGroupResponse struct {
	IsBalanceDebit bool                       `json:"isBalanceDebit"`
	Balances       []TrialBalanceLineResponse `json:"balances"`
	TotalBalance   decimal.Decimal            `json:"totalBalance"`
}

// CurrencyTrialBalanceResponse is one currency's trial balance.
type CurrencyTrialBalanceResponse struct {
	CurrencyID       string                               `json:"currencyId"`
	CurrencyCode     string                               `json:"currencyCode,omitempty"`
	Groups           map[string]TrialBalanceGroupResponse `json:"groups"`
	RetainedEarnings decimal.Decimal                      `json:"retainedEarnings"`
	EquationGap      decimal.Decimal                      `json:"equationGap"`
	IsReconciled     bool                                 `json:"isReconciled"`
}

// TrialBalanceResponse is the full trial balance payload.
type TrialBalanceResponse struct {
	Currencies []CurrencyTrialBalanceResponse `json:"currencies"`
}

func toPostingResponses(postings []domain.Posting) []PostingResponse {
	out := make([]PostingResponse, len(postings))
	for i, p := range postings {
		out[i] = PostingResponse{
			AccountCode: string(p.Account.Code),
			AccountName: p.Account.Name,
			CurrencyID:  p.CurrencyID,
			Amount:      p.Amount,
		}
		if p.Currency != nil {
			out[i].CurrencyCode = p.Currency.Code
		}
	}
	return out
}

// ToJournalResponse converts journal entries to the listing payload.
func ToJournalResponse(entries []*domain.JournalEntry) JournalResponse {
	response := JournalResponse{Entries: make([]JournalEntryResponse, len(entries))}
	for i, entry := range entries {
		response.Entries[i] = JournalEntryResponse{
			Serial:          entry.Serial,
			EntryEpoch:      entry.EntryEpoch,
			Modality:        string(entry.Modality),
			Description:     entry.Description,
			Notes:           entry.Notes,
			IsMultiCurrency: entry.IsMultiCurrency,
			IsBalanced:      entry.IsBalanced,
			CurrencyIDList:  entry.CurrencyIDList,
			DebitList:       toPostingResponses(entry.DebitList),
			CreditList:      toPostingResponses(entry.CreditList),
		}
	}
	return response
}

// ToLedgerResponse converts a domain ledger to its payload.
func ToLedgerResponse(ledger *domain.Ledger) LedgerResponse {
	response := LedgerResponse{
		AccountCode:    string(ledger.Account.Code),
		AccountName:    ledger.Account.Name,
		AccountType:    string(ledger.Account.Type),
		IsBalanceDebit: ledger.IsBalanceDebit,
		Entries:        make([]LedgerEntryResponse, len(ledger.EntryList)),
		Balances:       make([]CurrencyBalanceResponse, len(ledger.BalanceList)),
	}
	for i, entry := range ledger.EntryList {
		response.Entries[i] = LedgerEntryResponse{
			Serial:        entry.Serial,
			JournalSerial: entry.JournalEntry.Serial,
			EntryEpoch:    entry.JournalEntry.EntryEpoch,
			Description:   entry.JournalEntry.Description,
			IsDebit:       entry.IsDebit,
			CurrencyID:    entry.CurrencyID,
			Amount:        entry.Posting.Amount,
			Balance:       entry.Balance,
		}
	}
	for i, balance := range ledger.BalanceList {
		response.Balances[i] = CurrencyBalanceResponse{
			CurrencyID: balance.CurrencyID,
			Balance:    balance.Balance,
		}
		if balance.Currency != nil {
			response.Balances[i].CurrencyCode = balance.Currency.Code
		}
	}
	return response
}

// ToTrialBalanceResponse converts a domain trial balance to its payload.
func ToTrialBalanceResponse(report *domain.TrialBalance) TrialBalanceResponse {
	response := TrialBalanceResponse{
		Currencies: make([]CurrencyTrialBalanceResponse, len(report.CurrencyList)),
	}
	for i, ctb := range report.CurrencyList {
		groups := make(map[string]TrialBalanceGroupResponse, len(ctb.Groups))
		for accountType, group := range ctb.Groups {
			lines := make([]TrialBalanceLineResponse, len(group.BalanceList))
			for j, line := range group.BalanceList {
				lines[j] = TrialBalanceLineResponse{
					AccountCode:    string(line.Account.Code),
					AccountName:    line.Account.Name,
					Balance:        line.Balance,
					IsBalanceDebit: line.IsBalanceDebit,
				}
			}
			groups[string(accountType)] = TrialBalanceGroupResponse{
				IsBalanceDebit: group.IsBalanceDebit,
				Balances:       lines,
				TotalBalance:   group.TotalBalance,
			}
		}
		response.Currencies[i] = CurrencyTrialBalanceResponse{
			CurrencyID:       ctb.CurrencyID,
			Groups:           groups,
			RetainedEarnings: ctb.RetainedEarnings,
			EquationGap:      ctb.EquationGap,
			IsReconciled:     ctb.IsReconciled,
		}
		if ctb.Currency != nil {
			response.Currencies[i].CurrencyCode = ctb.Currency.Code
		}
	}
	return response
}
