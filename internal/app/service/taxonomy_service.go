package service

import (
	"context"

	"github.com/mkramos/gamestore-backend/internal/app/model"
	"github.com/mkramos/gamestore-backend/internal/app/repository"
	"github.com/mkramos/gamestore-backend/pkg/logger"
	"github.com/mkramos/gamestore-backend/pkg/slug"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// TaxonomyFailure records one name whose get-or-create did not complete.
// The entity may stay absent; games referencing it tolerate the gap.
type TaxonomyFailure struct {
	Kind model.TaxonomyKind
	Name string
	Err  error
}

// TaxonomyService is the get-or-create layer over the four taxonomy tables.
// Ensure is idempotent per (kind, name); concurrent calls for the same key
// collapse into a single lookup-then-create sequence.
type TaxonomyService interface {
	Ensure(kind model.TaxonomyKind, name string) error
	EnsureAll(ctx context.Context, names map[model.TaxonomyKind][]string, workerLimit int) []TaxonomyFailure
	ResolveCategories(names []string) []model.Category
	ResolvePlatforms(names []string) []model.Platform
	ResolveDevelopers(names []string) []model.Developer
	ResolvePublishers(names []string) []model.Publisher
	ListCategories() ([]model.Category, error)
	ListPlatforms() ([]model.Platform, error)
	ListDevelopers() ([]model.Developer, error)
	ListPublishers() ([]model.Publisher, error)
}

type taxonomyService struct {
	repo  repository.TaxonomyRepository
	group singleflight.Group
}

func NewTaxonomyService(repo repository.TaxonomyRepository) TaxonomyService {
	return &taxonomyService{repo: repo}
}

// Ensure creates the entity of the given kind when no entity with that name
// exists yet. The per-key single flight serializes concurrent callers so the
// non-atomic lookup-then-create in the repository cannot race with itself
// within this process.
func (s *taxonomyService) Ensure(kind model.TaxonomyKind, name string) error {
	key := string(kind) + ":" + name
	_, err, _ := s.group.Do(key, func() (interface{}, error) {
		return nil, s.repo.Ensure(kind, name, slug.Make(name))
	})
	return err
}

// EnsureAll runs Ensure for every distinct name of every kind, fanning out
// with at most workerLimit concurrent lookups. A failed name is reported and
// skipped; it never aborts the batch.
func (s *taxonomyService) EnsureAll(ctx context.Context, names map[model.TaxonomyKind][]string, workerLimit int) []TaxonomyFailure {
	var (
		g        errgroup.Group
		failures []TaxonomyFailure
		failCh   = make(chan TaxonomyFailure)
		done     = make(chan struct{})
	)
	if workerLimit > 0 {
		g.SetLimit(workerLimit)
	}

	go func() {
		for f := range failCh {
			failures = append(failures, f)
		}
		close(done)
	}()

	for kind, kindNames := range names {
		kind := kind
		for _, name := range kindNames {
			name := name
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					failCh <- TaxonomyFailure{Kind: kind, Name: name, Err: err}
					return nil
				}
				if err := s.Ensure(kind, name); err != nil {
					logger.Warn("Taxonomy get-or-create failed", map[string]interface{}{
						"kind":  kind,
						"name":  name,
						"error": err.Error(),
					})
					failCh <- TaxonomyFailure{Kind: kind, Name: name, Err: err}
				}
				return nil
			})
		}
	}

	g.Wait()
	close(failCh)
	<-done

	return failures
}

// Resolve methods look up persisted references for a game about to be
// created. Entities are expected to exist from the batch pre-pass; a miss
// degrades to a fresh get-or-create. Names that still cannot be resolved are
// dropped rather than failing the registration.

func (s *taxonomyService) ResolveCategories(names []string) []model.Category {
	refs := make([]model.Category, 0, len(names))
	for _, name := range names {
		entity, err := s.repo.FindCategory(name)
		if err == nil && entity == nil {
			if err = s.Ensure(model.KindCategory, name); err == nil {
				entity, err = s.repo.FindCategory(name)
			}
		}
		if err != nil || entity == nil {
			s.logUnresolved(model.KindCategory, name, err)
			continue
		}
		refs = append(refs, *entity)
	}
	return refs
}

func (s *taxonomyService) ResolvePlatforms(names []string) []model.Platform {
	refs := make([]model.Platform, 0, len(names))
	for _, name := range names {
		entity, err := s.repo.FindPlatform(name)
		if err == nil && entity == nil {
			if err = s.Ensure(model.KindPlatform, name); err == nil {
				entity, err = s.repo.FindPlatform(name)
			}
		}
		if err != nil || entity == nil {
			s.logUnresolved(model.KindPlatform, name, err)
			continue
		}
		refs = append(refs, *entity)
	}
	return refs
}

func (s *taxonomyService) ResolveDevelopers(names []string) []model.Developer {
	refs := make([]model.Developer, 0, len(names))
	for _, name := range names {
		entity, err := s.repo.FindDeveloper(name)
		if err == nil && entity == nil {
			if err = s.Ensure(model.KindDeveloper, name); err == nil {
				entity, err = s.repo.FindDeveloper(name)
			}
		}
		if err != nil || entity == nil {
			s.logUnresolved(model.KindDeveloper, name, err)
			continue
		}
		refs = append(refs, *entity)
	}
	return refs
}

func (s *taxonomyService) ResolvePublishers(names []string) []model.Publisher {
	refs := make([]model.Publisher, 0, len(names))
	for _, name := range names {
		entity, err := s.repo.FindPublisher(name)
		if err == nil && entity == nil {
			if err = s.Ensure(model.KindPublisher, name); err == nil {
				entity, err = s.repo.FindPublisher(name)
			}
		}
		if err != nil || entity == nil {
			s.logUnresolved(model.KindPublisher, name, err)
			continue
		}
		refs = append(refs, *entity)
	}
	return refs
}

func (s *taxonomyService) ListCategories() ([]model.Category, error) {
	return s.repo.ListCategories()
}

func (s *taxonomyService) ListPlatforms() ([]model.Platform, error) {
	return s.repo.ListPlatforms()
}

func (s *taxonomyService) ListDevelopers() ([]model.Developer, error) {
	return s.repo.ListDevelopers()
}

func (s *taxonomyService) ListPublishers() ([]model.Publisher, error) {
	return s.repo.ListPublishers()
}

func (s *taxonomyService) logUnresolved(kind model.TaxonomyKind, name string, err error) {
	fields := map[string]interface{}{
		"kind": kind,
		"name": name,
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	logger.Warn("Dropping unresolved taxonomy reference", fields)
}
