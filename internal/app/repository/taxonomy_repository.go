package repository

import (
	"errors"
	"fmt"

	"github.com/mkramos/gamestore-backend/internal/app/model"
	"github.com/mkramos/gamestore-backend/pkg/logger"
	"gorm.io/gorm"
)

// TaxonomyRepository persists the four taxonomy tables. Find methods return
// (nil, nil) when no entity with the given name exists.
type TaxonomyRepository interface {
	FindCategory(name string) (*model.Category, error)
	FindPlatform(name string) (*model.Platform, error)
	FindDeveloper(name string) (*model.Developer, error)
	FindPublisher(name string) (*model.Publisher, error)
	ListCategories() ([]model.Category, error)
	ListPlatforms() ([]model.Platform, error)
	ListDevelopers() ([]model.Developer, error)
	ListPublishers() ([]model.Publisher, error)
	Ensure(kind model.TaxonomyKind, name, slug string) error
}

type taxonomyRepository struct {
	db *gorm.DB
}

func NewTaxonomyRepository(db *gorm.DB) TaxonomyRepository {
	return &taxonomyRepository{db: db}
}

func (r *taxonomyRepository) FindCategory(name string) (*model.Category, error) {
	var entity model.Category
	found, err := r.findByName(&entity, name)
	if err != nil || !found {
		return nil, err
	}
	return &entity, nil
}

func (r *taxonomyRepository) FindPlatform(name string) (*model.Platform, error) {
	var entity model.Platform
	found, err := r.findByName(&entity, name)
	if err != nil || !found {
		return nil, err
	}
	return &entity, nil
}

func (r *taxonomyRepository) FindDeveloper(name string) (*model.Developer, error) {
	var entity model.Developer
	found, err := r.findByName(&entity, name)
	if err != nil || !found {
		return nil, err
	}
	return &entity, nil
}

func (r *taxonomyRepository) FindPublisher(name string) (*model.Publisher, error) {
	var entity model.Publisher
	found, err := r.findByName(&entity, name)
	if err != nil || !found {
		return nil, err
	}
	return &entity, nil
}

func (r *taxonomyRepository) ListCategories() ([]model.Category, error) {
	var entities []model.Category
	if err := r.db.Order("name ASC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

func (r *taxonomyRepository) ListPlatforms() ([]model.Platform, error) {
	var entities []model.Platform
	if err := r.db.Order("name ASC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

func (r *taxonomyRepository) ListDevelopers() ([]model.Developer, error) {
	var entities []model.Developer
	if err := r.db.Order("name ASC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

func (r *taxonomyRepository) ListPublishers() ([]model.Publisher, error) {
	var entities []model.Publisher
	if err := r.db.Order("name ASC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// Ensure looks up an entity of the given kind by exact name and creates it
// when absent. The lookup-then-create sequence is not atomic; concurrent
// callers are expected to serialize per name.
func (r *taxonomyRepository) Ensure(kind model.TaxonomyKind, name, slug string) error {
	record, err := r.newRecord(kind, name, slug)
	if err != nil {
		return err
	}

	found, err := r.findByName(record, name)
	if err != nil || found {
		return err
	}

	logger.Debug("Creating taxonomy entity", map[string]interface{}{
		"kind": kind,
		"name": name,
		"slug": slug,
	})
	return r.db.Create(record).Error
}

func (r *taxonomyRepository) newRecord(kind model.TaxonomyKind, name, slug string) (interface{}, error) {
	switch kind {
	case model.KindCategory:
		return &model.Category{Name: name, Slug: slug}, nil
	case model.KindPlatform:
		return &model.Platform{Name: name, Slug: slug}, nil
	case model.KindDeveloper:
		return &model.Developer{Name: name, Slug: slug}, nil
	case model.KindPublisher:
		return &model.Publisher{Name: name, Slug: slug}, nil
	default:
		return nil, fmt.Errorf("unknown taxonomy kind %q", kind)
	}
}

func (r *taxonomyRepository) findByName(dest interface{}, name string) (bool, error) {
	err := r.db.Where("name = ?", name).First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
