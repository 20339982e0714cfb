package dto

import "github.com/cashbook-dev/cashbook/internal/core/domain"

// UpsertRecordRequest is the payload for creating or replacing a record
// document. The detail sub-object matching Type is expected to be populated;
// the core tolerates a mismatch by deriving an empty journal entry.
type UpsertRecordRequest struct {
	RecordID         string            `json:"recordId"`
	Type             domain.RecordType `json:"type" binding:"required"`
	TransactionEpoch int64             `json:"transactionEpoch" binding:"required"`
	Notes            string            `json:"notes"`
	TagIDs           []string          `json:"tagIds"`

	Expense           *domain.ExpenseDetail          `json:"expense"`
	Income            *domain.IncomeDetail           `json:"income"`
	Transfer          *domain.TransferDetail         `json:"transfer"`
	AssetPurchase     *domain.AssetTradeDetail       `json:"assetPurchase"`
	AssetSale         *domain.AssetTradeDetail       `json:"assetSale"`
	AssetFluctuation  *domain.AssetFluctuationDetail `json:"assetFluctuation"`
	Lending           *domain.LoanDetail             `json:"lending"`
	Borrowing         *domain.LoanDetail             `json:"borrowing"`
	RepaymentGiven    *domain.LoanDetail             `json:"repaymentGiven"`
	RepaymentReceived *domain.LoanDetail             `json:"repaymentReceived"`
}

// ToDomainRecord maps the request onto a record document.
func (r UpsertRecordRequest) ToDomainRecord() domain.Record {
	return domain.Record{
		RecordID:          r.RecordID,
		Type:              r.Type,
		TransactionEpoch:  r.TransactionEpoch,
		Notes:             r.Notes,
		TagIDs:            r.TagIDs,
		Expense:           r.Expense,
		Income:            r.Income,
		Transfer:          r.Transfer,
		AssetPurchase:     r.AssetPurchase,
		AssetSale:         r.AssetSale,
		AssetFluctuation:  r.AssetFluctuation,
		Lending:           r.Lending,
		Borrowing:         r.Borrowing,
		RepaymentGiven:    r.RepaymentGiven,
		RepaymentReceived: r.RepaymentReceived,
	}
}
