package services

import (
	"context"
	"fmt"

	"github.com/cashbook-dev/cashbook/internal/core/domain"
	portsrepo "github.com/cashbook-dev/cashbook/internal/core/ports/repositories"
)

// catalogs holds every reference collection a journal build needs, keyed for
// foreign-key resolution.
type catalogs struct {
	Currencies map[string]*domain.Currency
	Wallets    map[string]*domain.Wallet
	Assets     map[string]*domain.Asset
	Parties    map[string]*domain.Party
	Avenues    map[string]*domain.ExpenseAvenue
	Sources    map[string]*domain.IncomeSource
	Tags       map[string]*domain.Tag

	// Insertion-ordered views, used where deterministic iteration matters.
	CurrencyList []*domain.Currency
	WalletList   []*domain.Wallet
	AssetList    []*domain.Asset
}

func listDocs[T any](ctx context.Context, repo portsrepo.DocumentRepository, collection string) ([]T, error) {
	raw, err := repo.ListByCollection(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to list collection %s: %w", collection, err)
	}
	docs, err := portsrepo.DecodeDocs[T](raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode collection %s: %w", collection, err)
	}
	return docs, nil
}

// loadCatalogs reads every reference collection in one pass. The document
// store is assumed to serve a consistent snapshot for the duration of a build.
func loadCatalogs(ctx context.Context, repo portsrepo.DocumentRepository) (*catalogs, error) {
	c := &catalogs{
		Currencies: make(map[string]*domain.Currency),
		Wallets:    make(map[string]*domain.Wallet),
		Assets:     make(map[string]*domain.Asset),
		Parties:    make(map[string]*domain.Party),
		Avenues:    make(map[string]*domain.ExpenseAvenue),
		Sources:    make(map[string]*domain.IncomeSource),
		Tags:       make(map[string]*domain.Tag),
	}

	currencies, err := listDocs[domain.Currency](ctx, repo, domain.CollectionCurrency)
	if err != nil {
		return nil, err
	}
	for i := range currencies {
		c.Currencies[currencies[i].CurrencyID] = &currencies[i]
		c.CurrencyList = append(c.CurrencyList, &currencies[i])
	}

	wallets, err := listDocs[domain.Wallet](ctx, repo, domain.CollectionWallet)
	if err != nil {
		return nil, err
	}
	for i := range wallets {
		c.Wallets[wallets[i].WalletID] = &wallets[i]
		c.WalletList = append(c.WalletList, &wallets[i])
	}

	assets, err := listDocs[domain.Asset](ctx, repo, domain.CollectionAsset)
	if err != nil {
		return nil, err
	}
	for i := range assets {
		c.Assets[assets[i].AssetID] = &assets[i]
		c.AssetList = append(c.AssetList, &assets[i])
	}

	parties, err := listDocs[domain.Party](ctx, repo, domain.CollectionParty)
	if err != nil {
		return nil, err
	}
	for i := range parties {
		c.Parties[parties[i].PartyID] = &parties[i]
	}

	avenues, err := listDocs[domain.ExpenseAvenue](ctx, repo, domain.CollectionAvenue)
	if err != nil {
		return nil, err
	}
	for i := range avenues {
		c.Avenues[avenues[i].AvenueID] = &avenues[i]
	}

	sources, err := listDocs[domain.IncomeSource](ctx, repo, domain.CollectionSource)
	if err != nil {
		return nil, err
	}
	for i := range sources {
		c.Sources[sources[i].SourceID] = &sources[i]
	}

	tags, err := listDocs[domain.Tag](ctx, repo, domain.CollectionTag)
	if err != nil {
		return nil, err
	}
	for i := range tags {
		c.Tags[tags[i].TagID] = &tags[i]
	}

	return c, nil
}
