package repo

import (
	"context"
	"errors"

	"DocPortal/internal/model"

	"gorm.io/gorm"
)

// FileRepository is the storage contract for submissions.
type FileRepository interface {
	Create(ctx context.Context, f *model.File) error

	List(ctx context.Context) ([]model.File, error)

	GetByID(ctx context.Context, id string) (*model.File, error)

	// FindByNameURL returns the submission with the exact (name, url) pair,
	// or nil when there is none. This backs the duplicate-upload check.
	FindByNameURL(ctx context.Context, name, url string) (*model.File, error)

	// FirstByName returns the first submission matching the requirement
	// name in store iteration order, or nil. No ordering is guaranteed.
	FirstByName(ctx context.Context, name string) (*model.File, error)

	ListByName(ctx context.Context, name string) ([]model.File, error)

	// UpdateStatus overwrites the status and reports rows affected, so the
	// caller can distinguish a missing id.
	UpdateStatus(ctx context.Context, id, status string) (int64, error)

	Delete(ctx context.Context, id string) error

	DeleteByName(ctx context.Context, name string) error
}

type fileRepo struct {
	db *gorm.DB
}

func NewFileRepository(db *gorm.DB) FileRepository {
	return &fileRepo{db: db}
}

func (r *fileRepo) Create(ctx context.Context, f *model.File) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *fileRepo) List(ctx context.Context) ([]model.File, error) {
	var out []model.File
	if err := r.db.WithContext(ctx).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *fileRepo) GetByID(ctx context.Context, id string) (*model.File, error) {
	var f model.File
	err := r.db.WithContext(ctx).First(&f, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *fileRepo) FindByNameURL(ctx context.Context, name, url string) (*model.File, error) {
	var f model.File
	err := r.db.WithContext(ctx).First(&f, "name = ? AND url = ?", name, url).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *fileRepo) FirstByName(ctx context.Context, name string) (*model.File, error) {
	var f model.File
	err := r.db.WithContext(ctx).First(&f, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *fileRepo) ListByName(ctx context.Context, name string) ([]model.File, error) {
	var out []model.File
	if err := r.db.WithContext(ctx).Where("name = ?", name).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *fileRepo) UpdateStatus(ctx context.Context, id, status string) (int64, error) {
	tx := r.db.WithContext(ctx).Model(&model.File{}).Where("id = ?", id).Update("status", status)
	return tx.RowsAffected, tx.Error
}

func (r *fileRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.File{}, "id = ?", id).Error
}

func (r *fileRepo) DeleteByName(ctx context.Context, name string) error {
	return r.db.WithContext(ctx).Delete(&model.File{}, "name = ?", name).Error
}
