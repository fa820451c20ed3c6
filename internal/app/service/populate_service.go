package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/mkramos/gamestore-backend/internal/app/model"
	"github.com/mkramos/gamestore-backend/internal/app/repository"
	apperrors "github.com/mkramos/gamestore-backend/internal/errors"
	"github.com/mkramos/gamestore-backend/pkg/gog"
	"github.com/mkramos/gamestore-backend/pkg/logger"
	"github.com/mkramos/gamestore-backend/pkg/slug"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrCatalogUnavailable aborts the whole run: without a product list
	// nothing can be mirrored
	ErrCatalogUnavailable = errors.New("catalog is unavailable")

	// ErrSyncAlreadyRunning is returned when another populate run holds the
	// sync lease
	ErrSyncAlreadyRunning = errors.New("a catalog sync is already running")
)

// CatalogSource is the remote catalog the mirror is populated from
type CatalogSource interface {
	Catalog(ctx context.Context, query url.Values) ([]gog.Product, error)
	GameDetails(ctx context.Context, slug string) (*gog.Details, error)
}

// SyncLock serializes populate runs across processes. A nil lock disables
// cross-process serialization; the in-process single flight still holds.
type SyncLock interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context)
}

// ItemFailure is one isolated failure inside a populate run. The stage is an
// error code from internal/errors; enrichment and media stages do not stop
// the item itself from being created.
type ItemFailure struct {
	Item  string `json:"item"`
	Stage string `json:"stage"`
	Error string `json:"error"`
}

// PopulateResult is the structured outcome of one run. Per-item failures are
// accumulated here instead of being propagated; the run itself only fails
// when the catalog cannot be fetched at all.
type PopulateResult struct {
	mu      sync.Mutex
	Created []string      `json:"created"`
	Skipped []string      `json:"skipped"`
	Failed  []ItemFailure `json:"failed"`
}

func (r *PopulateResult) addCreated(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Created = append(r.Created, name)
}

func (r *PopulateResult) addSkipped(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Skipped = append(r.Skipped, name)
}

func (r *PopulateResult) addFailure(item, stage string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Failed = append(r.Failed, ItemFailure{Item: item, Stage: stage, Error: err.Error()})
}

// PopulateService mirrors one page of the remote catalog into the store:
// taxonomy pre-pass, then per-product registration with enrichment and media
// uploads. Re-running with overlapping catalog data creates nothing new.
type PopulateService interface {
	Populate(ctx context.Context, query url.Values) (*PopulateResult, error)
}

type populateService struct {
	source          CatalogSource
	taxonomy        TaxonomyService
	media           MediaService
	games           repository.GameRepository
	lock            SyncLock
	workerLimit     int
	screenshotLimit int
}

func NewPopulateService(
	source CatalogSource,
	taxonomy TaxonomyService,
	media MediaService,
	games repository.GameRepository,
	lock SyncLock,
	workerLimit int,
	screenshotLimit int,
) PopulateService {
	return &populateService{
		source:          source,
		taxonomy:        taxonomy,
		media:           media,
		games:           games,
		lock:            lock,
		workerLimit:     workerLimit,
		screenshotLimit: screenshotLimit,
	}
}

func (s *populateService) Populate(ctx context.Context, query url.Values) (*PopulateResult, error) {
	if s.lock != nil {
		acquired, err := s.lock.Acquire(ctx)
		if err != nil {
			return nil, fmt.Errorf("acquire sync lease: %w", err)
		}
		if !acquired {
			return nil, ErrSyncAlreadyRunning
		}
		defer s.lock.Release(ctx)
	}

	started := time.Now()
	products, err := s.source.Catalog(ctx, query)
	if err != nil {
		logger.Error("Catalog fetch failed, aborting populate run", err)
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	logger.Info("Starting catalog populate run", map[string]interface{}{
		"products": len(products),
		"query":    query.Encode(),
	})

	result := &PopulateResult{}

	// Pre-pass: one get-or-create per distinct taxonomy name across the
	// whole page, so N products sharing a developer trigger one sequence.
	for _, failure := range s.taxonomy.EnsureAll(ctx, collectTaxonomyNames(products), s.workerLimit) {
		result.addFailure(failure.Name, apperrors.TaxonomyRemoteFailed, failure.Err)
	}

	var g errgroup.Group
	if s.workerLimit > 0 {
		g.SetLimit(s.workerLimit)
	}
	for _, product := range products {
		product := product
		g.Go(func() error {
			s.registerIfAbsent(ctx, product, result)
			return nil
		})
	}
	g.Wait()

	logger.Info("Catalog populate run finished", map[string]interface{}{
		"created":  len(result.Created),
		"skipped":  len(result.Skipped),
		"failed":   len(result.Failed),
		"duration": time.Since(started).String(),
	})
	return result, nil
}

// registerIfAbsent mirrors one product. An existing game with the same name
// is the idempotence boundary: it is skipped untouched. Every failure past
// the existence check is recorded on the result and never propagated, so one
// product cannot sink its siblings.
func (s *populateService) registerIfAbsent(ctx context.Context, product gog.Product, result *PopulateResult) {
	existing, err := s.games.FindByName(product.Title)
	if err != nil {
		result.addFailure(product.Title, apperrors.InternalDatabase, err)
		return
	}
	if existing != nil {
		result.addSkipped(product.Title)
		return
	}

	logger.Info("Registering game", map[string]interface{}{
		"title": product.Title,
		"slug":  product.Slug,
	})

	game := &model.Game{
		Name:        product.Title,
		Slug:        product.Slug,
		Price:       product.Price.FinalMoney.Amount,
		ReleaseDate: parseReleaseDate(product),
		PublishedAt: time.Now(),
		Categories:  s.taxonomy.ResolveCategories(genreNames(product)),
		Platforms:   s.taxonomy.ResolvePlatforms(product.OperatingSystems),
		Developers:  s.taxonomy.ResolveDevelopers(product.Developers),
		Publishers:  s.taxonomy.ResolvePublishers(product.Publishers),
	}
	if game.Slug == "" {
		game.Slug = slug.Make(product.Title)
	}

	details, err := s.source.GameDetails(ctx, product.Slug)
	if err != nil {
		// Best effort: the game is created without enrichment fields
		logger.Warn("Enrichment unavailable", map[string]interface{}{
			"title": product.Title,
			"error": err.Error(),
		})
		result.addFailure(product.Title, apperrors.EnrichmentUnavailable, err)
	} else {
		game.Description = details.Description
		game.ShortDescription = details.ShortDescription
		game.Rating = details.Rating
	}

	if err := s.games.Create(game); err != nil {
		result.addFailure(product.Title, apperrors.InternalDatabase, err)
		return
	}
	result.addCreated(product.Title)

	// Media only attaches to a persisted game; a failed cover never blocks
	// the gallery and vice versa
	if product.CoverHorizontal != "" {
		if err := s.media.Upload(ctx, product.CoverHorizontal, game, model.MediaFieldCover, 0); err != nil {
			logger.Warn("Cover upload failed", map[string]interface{}{
				"title": product.Title,
				"error": err.Error(),
			})
			result.addFailure(product.Title, apperrors.MediaUploadFailed, err)
		}
	}

	screenshots := product.Screenshots
	if s.screenshotLimit > 0 && len(screenshots) > s.screenshotLimit {
		screenshots = screenshots[:s.screenshotLimit]
	}
	for position, screenshot := range screenshots {
		if err := s.media.Upload(ctx, gog.ScreenshotURL(screenshot), game, model.MediaFieldGallery, position); err != nil {
			logger.Warn("Screenshot upload failed", map[string]interface{}{
				"title":    product.Title,
				"position": position,
				"error":    err.Error(),
			})
			result.addFailure(product.Title, apperrors.MediaUploadFailed, err)
		}
	}
}

// collectTaxonomyNames gathers the set of distinct names per kind across the
// fetched page, first-seen order preserved
func collectTaxonomyNames(products []gog.Product) map[model.TaxonomyKind][]string {
	names := make(map[model.TaxonomyKind][]string, 4)
	seen := make(map[string]struct{})

	add := func(kind model.TaxonomyKind, name string) {
		if name == "" {
			return
		}
		key := string(kind) + ":" + name
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		names[kind] = append(names[kind], name)
	}

	for _, product := range products {
		for _, genre := range product.Genres {
			add(model.KindCategory, genre.Name)
		}
		for _, os := range product.OperatingSystems {
			add(model.KindPlatform, os)
		}
		for _, developer := range product.Developers {
			add(model.KindDeveloper, developer)
		}
		for _, publisher := range product.Publishers {
			add(model.KindPublisher, publisher)
		}
	}
	return names
}

func genreNames(product gog.Product) []string {
	names := make([]string, 0, len(product.Genres))
	for _, genre := range product.Genres {
		names = append(names, genre.Name)
	}
	return names
}

func parseReleaseDate(product gog.Product) time.Time {
	if product.ReleaseDate == "" {
		return time.Time{}
	}
	released, err := time.Parse("2006-01-02", product.ReleaseDate)
	if err != nil {
		logger.Warn("Unparseable release date", map[string]interface{}{
			"title": product.Title,
			"date":  product.ReleaseDate,
		})
		return time.Time{}
	}
	return released
}
