package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/finapp2p/backend/internal/domain/person"
	"github.com/finapp2p/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPersonRepository implements person.Repository using GORM
type GormPersonRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormPersonRepository creates a new GormPersonRepository
func NewGormPersonRepository(db *gorm.DB) *GormPersonRepository {
	return &GormPersonRepository{db: db, now: time.Now}
}

// Create inserts a new person
func (r *GormPersonRepository) Create(ctx context.Context, p person.Person) error {
	var model models.PersonModel
	if err := model.FromDomain(p); err != nil {
		return err
	}

	exists, err := r.exists(ctx, "id = ?", model.ID)
	if err != nil {
		return err
	}
	if exists {
		return person.NewValidationError("id", "already exists")
	}
	if model.Document != nil {
		taken, err := r.exists(ctx, "document = ?", *model.Document)
		if err != nil {
			return err
		}
		if taken {
			return person.ErrDuplicateDocument
		}
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return translateWriteError(err)
	}
	return nil
}

// Update replaces the stored fields of an existing person and refreshes UpdatedAt.
// CreatedAt always keeps the stored value.
func (r *GormPersonRepository) Update(ctx context.Context, p person.Person) error {
	base := p.Common()

	var stored models.PersonModel
	if err := r.db.WithContext(ctx).First(&stored, "id = ?", base.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return person.ErrNotFound
		}
		return err
	}

	var model models.PersonModel
	if err := model.FromDomain(p); err != nil {
		return err
	}
	if model.Document != nil {
		taken, err := r.exists(ctx, "document = ? AND id <> ?", *model.Document, model.ID)
		if err != nil {
			return err
		}
		if taken {
			return person.ErrDuplicateDocument
		}
	}

	now := r.now()
	model.CreatedAt = stored.CreatedAt
	model.UpdatedAt = &now
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return translateWriteError(err)
	}

	base.CreatedAt = stored.CreatedAt
	base.Touch(now)
	return nil
}

// Delete removes a person by id. Deleting a missing id is a no-op.
func (r *GormPersonRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.PersonModel{}, "id = ?", id).Error
}

// FindByID finds a person by its id
func (r *GormPersonRepository) FindByID(ctx context.Context, id string) (person.Person, bool, error) {
	var model models.PersonModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return model.ToDomain(), true, nil
}

// FindAll returns every person ordered by name
func (r *GormPersonRepository) FindAll(ctx context.Context) ([]person.Person, error) {
	var personModels []models.PersonModel
	if err := r.db.WithContext(ctx).Order("name ASC, id ASC").Find(&personModels).Error; err != nil {
		return nil, err
	}

	persons := make([]person.Person, len(personModels))
	for i := range personModels {
		persons[i] = personModels[i].ToDomain()
	}
	return persons, nil
}

func (r *GormPersonRepository) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.PersonModel{}).Where(query, args...).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// translateWriteError maps the unique index violation that can still occur on a
// concurrent write to the domain conflict
func translateWriteError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return person.ErrDuplicateDocument
	}
	return err
}

// Ensure GormPersonRepository implements person.Repository
var _ person.Repository = (*GormPersonRepository)(nil)
