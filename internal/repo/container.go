package repo

import (
	"context"
	"errors"

	"DocPortal/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ContainerRepository is the storage contract of the container tree.
type ContainerRepository interface {
	// Create inserts the container. The unique index on name decides the
	// loser of concurrent creates; callers detect it with IsDuplicate.
	Create(ctx context.Context, c *model.Container) error

	GetByID(ctx context.Context, id string) (*model.Container, error)

	// List returns every container regardless of nesting level.
	List(ctx context.Context) ([]model.Container, error)

	// ListByParent returns direct children only.
	ListByParent(ctx context.Context, parentID string) ([]model.Container, error)

	// ReplaceAuthorizedUsers overwrites the email allow-list wholesale.
	ReplaceAuthorizedUsers(ctx context.Context, id string, emails []string) error

	Delete(ctx context.Context, id string) error
}

type containerRepo struct {
	db *gorm.DB
}

func NewContainerRepository(db *gorm.DB) ContainerRepository {
	return &containerRepo{db: db}
}

func (r *containerRepo) Create(ctx context.Context, c *model.Container) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *containerRepo) GetByID(ctx context.Context, id string) (*model.Container, error) {
	var c model.Container
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *containerRepo) List(ctx context.Context) ([]model.Container, error) {
	var out []model.Container
	if err := r.db.WithContext(ctx).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *containerRepo) ListByParent(ctx context.Context, parentID string) ([]model.Container, error) {
	var out []model.Container
	if err := r.db.WithContext(ctx).Where("parent_id = ?", parentID).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *containerRepo) ReplaceAuthorizedUsers(ctx context.Context, id string, emails []string) error {
	return r.db.WithContext(ctx).
		Model(&model.Container{}).
		Where("id = ?", id).
		Update("authorized_users", datatypes.NewJSONSlice(emails)).Error
}

func (r *containerRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.Container{}, "id = ?", id).Error
}
