package repo

import (
	"context"
	"testing"

	"DocPortal/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func mkContainer(name string, parentID *string) *model.Container {
	return &model.Container{
		ID:       uuid.NewString(),
		Name:     name,
		ParentID: parentID,
	}
}

func TestContainerRepository_Create_GetByID(t *testing.T) {
	db := newTestDB(t)
	r := NewContainerRepository(db)
	ctx := context.Background()

	c := mkContainer("Onboarding", nil)
	assert.NoError(t, r.Create(ctx, c))

	got, err := r.GetByID(ctx, c.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Onboarding", got.Name)
	assert.Nil(t, got.ParentID)

	// unknown id is nil without error
	got, err = r.GetByID(ctx, uuid.NewString())
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestContainerRepository_DuplicateNameIsStorageEnforced(t *testing.T) {
	db := newTestDB(t)
	r := NewContainerRepository(db)
	ctx := context.Background()

	parent := mkContainer("Audit", nil)
	assert.NoError(t, r.Create(ctx, parent))

	// same name under a different parent still violates the unique index
	dup := mkContainer("Audit", &parent.ID)
	err := r.Create(ctx, dup)
	assert.Error(t, err)
	assert.True(t, IsDuplicate(err), "expected duplicate-key error, got %v", err)
}

func TestContainerRepository_ListByParent(t *testing.T) {
	db := newTestDB(t)
	r := NewContainerRepository(db)
	ctx := context.Background()

	top := mkContainer("Onboarding", nil)
	assert.NoError(t, r.Create(ctx, top))
	assert.NoError(t, r.Create(ctx, mkContainer("Week1", &top.ID)))
	assert.NoError(t, r.Create(ctx, mkContainer("Week2", &top.ID)))
	assert.NoError(t, r.Create(ctx, mkContainer("Unrelated", nil)))

	subs, err := r.ListByParent(ctx, top.ID)
	assert.NoError(t, err)
	assert.Len(t, subs, 2)

	all, err := r.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestContainerRepository_ReplaceAuthorizedUsers(t *testing.T) {
	db := newTestDB(t)
	r := NewContainerRepository(db)
	ctx := context.Background()

	c := mkContainer("Onboarding", nil)
	c.AuthorizedUsers = datatypes.NewJSONSlice([]string{"old@co.com"})
	assert.NoError(t, r.Create(ctx, c))

	assert.NoError(t, r.ReplaceAuthorizedUsers(ctx, c.ID, []string{"a@co.com", "b@co.com"}))

	got, err := r.GetByID(ctx, c.ID)
	assert.NoError(t, err)
	assert.Equal(t, []string{"a@co.com", "b@co.com"}, []string(got.AuthorizedUsers))

	// wholesale replace, including down to empty
	assert.NoError(t, r.ReplaceAuthorizedUsers(ctx, c.ID, []string{}))
	got, err = r.GetByID(ctx, c.ID)
	assert.NoError(t, err)
	assert.Empty(t, []string(got.AuthorizedUsers))
}

func TestContainerRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	r := NewContainerRepository(db)
	ctx := context.Background()

	c := mkContainer("Temp", nil)
	assert.NoError(t, r.Create(ctx, c))
	assert.NoError(t, r.Delete(ctx, c.ID))

	got, err := r.GetByID(ctx, c.ID)
	assert.NoError(t, err)
	assert.Nil(t, got)

	// name is free again after delete
	assert.NoError(t, r.Create(ctx, mkContainer("Temp", nil)))
}
