package repo

import (
	"context"
	"errors"

	"DocPortal/internal/model"

	"gorm.io/gorm"
)

// RequirementRepository is a dumb store: batch insert is verbatim, with no
// de-duplication — that is the caller's contract.
type RequirementRepository interface {
	// List returns requirements, filtered by exact container name when
	// container is non-empty.
	List(ctx context.Context, container string) ([]model.Requirement, error)

	GetByID(ctx context.Context, id string) (*model.Requirement, error)

	// ReplaceByContainer swaps the container's rows for the batch inside one
	// transaction, so readers never observe the deleted-but-not-reinserted gap.
	ReplaceByContainer(ctx context.Context, container string, reqs []model.Requirement) error

	Delete(ctx context.Context, id string) error

	// DeleteByContainer drops every requirement with the given container
	// name and returns how many were removed.
	DeleteByContainer(ctx context.Context, container string) (int64, error)
}

type requirementRepo struct {
	db *gorm.DB
}

func NewRequirementRepository(db *gorm.DB) RequirementRepository {
	return &requirementRepo{db: db}
}

func (r *requirementRepo) List(ctx context.Context, container string) ([]model.Requirement, error) {
	var out []model.Requirement
	tx := r.db.WithContext(ctx)
	if container != "" {
		tx = tx.Where("container = ?", container)
	}
	if err := tx.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *requirementRepo) GetByID(ctx context.Context, id string) (*model.Requirement, error) {
	var req model.Requirement
	err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *requirementRepo) ReplaceByContainer(ctx context.Context, container string, reqs []model.Requirement) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("container = ?", container).Delete(&model.Requirement{}).Error; err != nil {
			return err
		}
		if len(reqs) == 0 {
			return nil
		}
		return tx.Create(&reqs).Error
	})
}

func (r *requirementRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.Requirement{}, "id = ?", id).Error
}

func (r *requirementRepo) DeleteByContainer(ctx context.Context, container string) (int64, error) {
	tx := r.db.WithContext(ctx).Where("container = ?", container).Delete(&model.Requirement{})
	return tx.RowsAffected, tx.Error
}
