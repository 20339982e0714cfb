package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/cashbook-dev/cashbook/internal/apperrors"
	"github.com/cashbook-dev/cashbook/internal/core/domain"
	portsrepo "github.com/cashbook-dev/cashbook/internal/core/ports/repositories"
	portssvc "github.com/cashbook-dev/cashbook/internal/core/ports/services"
	"github.com/cashbook-dev/cashbook/internal/middleware"
	"github.com/cashbook-dev/cashbook/internal/utils/accounting"
	"golang.org/x/sync/errgroup"
)

// defaultInferConcurrency bounds the record-inference fan-out so the document
// store is not hammered with parallel lookups.
const defaultInferConcurrency = 6

// accountingService derives the full journal from source records. The result
// is memoized process-wide; any document write, regardless of collection,
// clears the cache and the next call rebuilds from scratch. Concurrent calls
// during a build are serialized behind the mutex, so at most one build runs
// at a time (a documented tightening over recompute-per-caller).
type accountingService struct {
	repo             portsrepo.DocumentRepository
	inferConcurrency int

	mu     sync.Mutex
	cached *domain.AccountingResult
}

// AccountingServiceOption configures the accounting service.
type AccountingServiceOption func(*accountingService)

// WithInferConcurrency overrides the inference worker limit.
func WithInferConcurrency(n int) AccountingServiceOption {
	return func(s *accountingService) {
		if n > 0 {
			s.inferConcurrency = n
		}
	}
}

// NewAccountingService creates the journal builder and subscribes it to the
// document store's change feed for cache invalidation.
func NewAccountingService(repo portsrepo.DocumentRepository, options ...AccountingServiceOption) portssvc.AccountingSvcFacade {
	s := &accountingService{
		repo:             repo,
		inferConcurrency: defaultInferConcurrency,
	}
	for _, option := range options {
		option(s)
	}
	repo.Subscribe(func(string) {
		s.invalidate()
	})
	return s
}

var _ portssvc.AccountingSvcFacade = (*accountingService)(nil)

func (s *accountingService) invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
}

// InitiateAccounting implements portssvc.AccountingSvcFacade.
func (s *accountingService) InitiateAccounting(ctx context.Context, progress portssvc.ProgressFunc) (*domain.AccountingResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger := middleware.GetLoggerFromCtx(ctx)

	if s.cached != nil {
		logger.Debug("Returning cached accounting result",
			slog.Int("entry_count", len(s.cached.JournalEntryList)))
		return s.cached, nil
	}

	accountMap, accountList := PopulateAccounts()

	cat, err := loadCatalogs(ctx, s.repo)
	if err != nil {
		return nil, err
	}

	journal := synthesizeInitialOpeningEntries(cat, accountMap)
	serial := 0
	for _, entry := range journal {
		entry.Serial = serial
		serial++
	}

	records, err := listDocs[domain.Record](ctx, s.repo, domain.CollectionRecord)
	if err != nil {
		return nil, err
	}

	inferred, err := s.inferRecords(ctx, cat, records, progress)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(inferred, func(i, j int) bool {
		return inferred[i].TransactionEpoch < inferred[j].TransactionEpoch
	})

	for _, record := range inferred {
		conv, err := convertRecord(record, accountMap)
		if err != nil {
			return nil, err
		}
		check := accounting.CheckBalance(conv.DebitList, conv.CreditList)
		journal = append(journal, &domain.JournalEntry{
			Serial:          serial,
			EntryEpoch:      record.TransactionEpoch,
			Modality:        domain.ModalityStandard,
			DebitList:       conv.DebitList,
			CreditList:      conv.CreditList,
			Description:     conv.Description,
			Notes:           record.Notes,
			IsMultiCurrency: check.IsMultiCurrency,
			IsBalanced:      check.IsBalanced,
			CurrencyIDList:  check.CurrencyIDList,
		})
		serial++
	}

	if err := injectCurrencyMeta(journal, cat.Currencies); err != nil {
		return nil, err
	}
	restampOpeningEpochs(journal)

	s.cached = &domain.AccountingResult{
		AccountMap:       accountMap,
		AccountList:      accountList,
		JournalEntryList: journal,
	}
	logger.Info("Journal built",
		slog.Int("record_count", len(records)),
		slog.Int("entry_count", len(journal)))
	return s.cached, nil
}

// inferRecords resolves every record's foreign keys with bounded concurrency.
// Result order follows the input; determinism is restored by the epoch sort
// that follows regardless.
func (s *accountingService) inferRecords(ctx context.Context, cat *catalogs, records []domain.Record, progress portssvc.ProgressFunc) ([]*domain.Record, error) {
	inference := newInferenceService(cat)
	inferred := make([]*domain.Record, len(records))

	total := len(records)
	step := total / 10
	if step == 0 {
		step = 1
	}
	var done atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.inferConcurrency)
	for i := range records {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := inference.InferRecord(&records[i])
			if err != nil {
				return err
			}
			inferred[i] = result
			if n := int(done.Add(1)); progress != nil && (n%step == 0 || n == total) {
				progress(n, total)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return inferred, nil
}

// injectCurrencyMeta joins currency metadata onto every posting. A posting
// referencing an unknown currency aborts the build: well-formed data can
// never produce one.
func injectCurrencyMeta(journal []*domain.JournalEntry, currencies map[string]*domain.Currency) error {
	for _, entry := range journal {
		for _, list := range [][]domain.Posting{entry.DebitList, entry.CreditList} {
			for i := range list {
				currency, ok := currencies[list[i].CurrencyID]
				if !ok {
					return fmt.Errorf("%w: posting in entry %d references currency %s", apperrors.ErrMissingCurrency, entry.Serial, list[i].CurrencyID)
				}
				list[i].Currency = currency
			}
		}
	}
	return nil
}

// restampOpeningEpochs aligns every opening entry's epoch with the first
// standard entry so openings sort immediately before the first real
// transaction instead of at epoch zero.
func restampOpeningEpochs(journal []*domain.JournalEntry) {
	var firstStandard *domain.JournalEntry
	for _, entry := range journal {
		if entry.Modality == domain.ModalityStandard {
			firstStandard = entry
			break
		}
	}
	if firstStandard == nil {
		return
	}
	for _, entry := range journal {
		if entry.Modality == domain.ModalityOpening {
			entry.EntryEpoch = firstStandard.EntryEpoch
		}
	}
}

// ApplyJournalFilters implements portssvc.AccountingSvcFacade. Entries before
// the window collapse into synthetic opening entries; entries within it are
// returned as shallow copies so renumbering never touches the cached journal.
func (s *accountingService) ApplyJournalFilters(ctx context.Context, journalEntryList []*domain.JournalEntry, filters domain.JournalFilters) ([]*domain.JournalEntry, error) {
	var prior, within []*domain.JournalEntry
	for _, entry := range journalEntryList {
		switch {
		case entry.EntryEpoch < filters.StartEpoch:
			prior = append(prior, entry)
		case entry.EntryEpoch < filters.EndEpoch:
			within = append(within, entry)
		}
	}

	opening := synthesizeOpeningForCutoff(prior)
	if len(opening) > 0 {
		currencies, err := loadCurrencyMap(ctx, s.repo)
		if err != nil {
			return nil, err
		}
		if err := injectCurrencyMeta(opening, currencies); err != nil {
			return nil, err
		}
	}

	filtered := make([]*domain.JournalEntry, 0, len(opening)+len(within))
	filtered = append(filtered, opening...)
	for _, entry := range within {
		copied := *entry
		filtered = append(filtered, &copied)
	}
	for i, entry := range filtered {
		entry.Serial = i
	}
	restampOpeningEpochs(filtered)
	return filtered, nil
}
