package ledger

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jsvantner/minca/internal/common"
	"github.com/jsvantner/minca/internal/interfaces"
	"github.com/jsvantner/minca/internal/models"
)

// DefaultRefreshTimeout bounds one refresh round trip.
const DefaultRefreshTimeout = 30 * time.Second

// Service drives ledger refreshes. Each refresh fetches the snapshot and
// the category list concurrently and applies them to the store only when no
// newer refresh has started in the meantime, so a stale response can never
// overwrite a fresher one.
type Service struct {
	client  interfaces.LedgerClient
	store   *Store
	logger  *common.Logger
	timeout time.Duration

	gen     atomic.Int64
	applyMu sync.Mutex
}

// NewService creates a refresh service around the given client and store.
func NewService(client interfaces.LedgerClient, store *Store, logger *common.Logger) *Service {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Service{
		client:  client,
		store:   store,
		logger:  logger,
		timeout: DefaultRefreshTimeout,
	}
}

// SetTimeout overrides the per-refresh timeout.
func (s *Service) SetTimeout(d time.Duration) {
	s.timeout = d
}

// Store returns the backing store.
func (s *Service) Store() *Store {
	return s.store
}

// Refresh fetches the snapshot for the date range along with the category
// list and replaces the store contents. If another Refresh started after
// this one, the results are discarded.
func (s *Service) Refresh(ctx context.Context, from, to models.Date) error {
	gen := s.gen.Add(1)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var (
		snap *models.LedgerSnapshot
		cats []models.Category
	)

	// The two fetches are independent and have no ordering dependency.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap, err = s.client.GetSnapshot(gctx, from, to)
		return err
	})
	g.Go(func() error {
		var err error
		cats, err = s.client.GetCategories(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	s.applyMu.Lock()
	defer s.applyMu.Unlock()
	if s.gen.Load() != gen {
		s.logger.Debug().
			Str("from", from.String()).
			Str("to", to.String()).
			Msg("dropping stale ledger response")
		return nil
	}

	s.store.SetSnapshot(snap)
	s.store.SetCategories(cats)
	s.logger.Debug().
		Int("transactions", len(snap.Transactions)).
		Int("categories", len(cats)).
		Msg("ledger refreshed")
	return nil
}
