package services

import (
	"fmt"

	"github.com/cashbook-dev/cashbook/internal/apperrors"
	"github.com/cashbook-dev/cashbook/internal/core/domain"
)

// inferenceService resolves a record's foreign keys into embedded objects on
// a cloned copy. The input record is never mutated.
type inferenceService struct {
	cat *catalogs
}

func newInferenceService(cat *catalogs) *inferenceService {
	return &inferenceService{cat: cat}
}

func (s *inferenceService) wallet(recordID, walletID string) (*domain.Wallet, error) {
	wallet, ok := s.cat.Wallets[walletID]
	if !ok {
		return nil, fmt.Errorf("%w: record %s references unknown wallet %s", apperrors.ErrMalformattedData, recordID, walletID)
	}
	return wallet, nil
}

func (s *inferenceService) party(recordID, partyID string) (*domain.Party, error) {
	if partyID == "" {
		return nil, nil
	}
	party, ok := s.cat.Parties[partyID]
	if !ok {
		return nil, fmt.Errorf("%w: record %s references unknown party %s", apperrors.ErrMalformattedData, recordID, partyID)
	}
	return party, nil
}

func (s *inferenceService) asset(recordID, assetID string) (*domain.Asset, error) {
	asset, ok := s.cat.Assets[assetID]
	if !ok {
		return nil, fmt.Errorf("%w: record %s references unknown asset %s", apperrors.ErrMalformattedData, recordID, assetID)
	}
	return asset, nil
}

// InferRecord returns an enriched clone of the record with wallet, party,
// avenue/source, asset and tag references resolved into embedded objects.
// A detail sub-object that does not match the record's declared type is left
// untouched; the classifier decides how to treat that.
func (s *inferenceService) InferRecord(record *domain.Record) (*domain.Record, error) {
	out := record.Clone()

	for _, tagID := range out.TagIDs {
		if tag, ok := s.cat.Tags[tagID]; ok {
			out.Tags = append(out.Tags, *tag)
		}
	}

	var err error
	switch {
	case out.Type == domain.RecordExpense && out.Expense != nil:
		d := out.Expense
		if d.Wallet, err = s.wallet(out.RecordID, d.WalletID); err != nil {
			return nil, err
		}
		if d.Party, err = s.party(out.RecordID, d.PartyID); err != nil {
			return nil, err
		}
		if d.AvenueID != "" {
			avenue, ok := s.cat.Avenues[d.AvenueID]
			if !ok {
				return nil, fmt.Errorf("%w: record %s references unknown expense avenue %s", apperrors.ErrMalformattedData, out.RecordID, d.AvenueID)
			}
			d.Avenue = avenue
		}

	case out.Type == domain.RecordIncome && out.Income != nil:
		d := out.Income
		if d.Wallet, err = s.wallet(out.RecordID, d.WalletID); err != nil {
			return nil, err
		}
		if d.Party, err = s.party(out.RecordID, d.PartyID); err != nil {
			return nil, err
		}
		if d.SourceID != "" {
			source, ok := s.cat.Sources[d.SourceID]
			if !ok {
				return nil, fmt.Errorf("%w: record %s references unknown income source %s", apperrors.ErrMalformattedData, out.RecordID, d.SourceID)
			}
			d.Source = source
		}

	case out.Type == domain.RecordTransfer && out.Transfer != nil:
		d := out.Transfer
		if d.FromWallet, err = s.wallet(out.RecordID, d.FromWalletID); err != nil {
			return nil, err
		}
		if d.ToWallet, err = s.wallet(out.RecordID, d.ToWalletID); err != nil {
			return nil, err
		}

	case out.Type == domain.RecordAssetPurchase && out.AssetPurchase != nil:
		if err = s.inferAssetTrade(out.RecordID, out.AssetPurchase); err != nil {
			return nil, err
		}

	case out.Type == domain.RecordAssetSale && out.AssetSale != nil:
		if err = s.inferAssetTrade(out.RecordID, out.AssetSale); err != nil {
			return nil, err
		}

	case out.Type == domain.RecordAssetFluctuation && out.AssetFluctuation != nil:
		d := out.AssetFluctuation
		if d.Asset, err = s.asset(out.RecordID, d.AssetID); err != nil {
			return nil, err
		}

	case out.Type == domain.RecordLending && out.Lending != nil:
		if err = s.inferLoan(out.RecordID, out.Lending); err != nil {
			return nil, err
		}
	case out.Type == domain.RecordBorrowing && out.Borrowing != nil:
		if err = s.inferLoan(out.RecordID, out.Borrowing); err != nil {
			return nil, err
		}
	case out.Type == domain.RecordRepaymentGiven && out.RepaymentGiven != nil:
		if err = s.inferLoan(out.RecordID, out.RepaymentGiven); err != nil {
			return nil, err
		}
	case out.Type == domain.RecordRepaymentReceived && out.RepaymentReceived != nil:
		if err = s.inferLoan(out.RecordID, out.RepaymentReceived); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func (s *inferenceService) inferAssetTrade(recordID string, d *domain.AssetTradeDetail) error {
	var err error
	if d.Wallet, err = s.wallet(recordID, d.WalletID); err != nil {
		return err
	}
	if d.Asset, err = s.asset(recordID, d.AssetID); err != nil {
		return err
	}
	if d.Party, err = s.party(recordID, d.PartyID); err != nil {
		return err
	}
	return nil
}

func (s *inferenceService) inferLoan(recordID string, d *domain.LoanDetail) error {
	var err error
	if d.Wallet, err = s.wallet(recordID, d.WalletID); err != nil {
		return err
	}
	if d.Party, err = s.party(recordID, d.PartyID); err != nil {
		return err
	}
	return nil
}
