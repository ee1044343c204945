package app

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/fliplab/bzflip/business/market/domain"
	"github.com/fliplab/bzflip/internal/logger"
)

const snapshotCacheKey = "market:snapshot"

// SnapshotService assembles a market snapshot from the three feeds and
// caches it for the lifetime of the process. Every caller in the same run
// sees the same immutable snapshot.
type SnapshotService struct {
	bazaar  BazaarProvider
	catalog ItemCatalogProvider
	recipes RecipeProvider
	session *gocache.Cache
	log     logger.LoggerInterface

	mu sync.Mutex
}

// NewSnapshotService creates a snapshot service over the given providers.
func NewSnapshotService(bazaar BazaarProvider, catalog ItemCatalogProvider, recipes RecipeProvider, log logger.LoggerInterface) *SnapshotService {
	return &SnapshotService{
		bazaar:  bazaar,
		catalog: catalog,
		recipes: recipes,
		session: gocache.New(gocache.NoExpiration, 0),
		log:     log,
	}
}

// Snapshot returns the process-wide snapshot, assembling it on first use.
func (s *SnapshotService) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cached, ok := s.session.Get(snapshotCacheKey); ok {
		return cached.(*domain.Snapshot), nil
	}

	started := time.Now()

	products, err := s.bazaar.FetchProducts(ctx)
	if err != nil {
		return nil, err
	}

	items, err := s.catalog.FetchItems(ctx)
	if err != nil {
		return nil, err
	}

	recipeTable, err := s.recipes.LoadRecipes(ctx)
	if err != nil {
		return nil, err
	}

	snap := domain.NewSnapshot(products, items, recipeTable, time.Now())
	s.session.Set(snapshotCacheKey, snap, gocache.NoExpiration)

	s.log.Info(ctx, "market snapshot assembled",
		"products", len(products),
		"items", len(items),
		"recipes", len(recipeTable),
		"elapsed", time.Since(started).String(),
	)

	return snap, nil
}
