package repo

import (
	"context"
	"testing"

	"DocPortal/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func mkRequirement(name, container string) model.Requirement {
	return model.Requirement{
		ID:        uuid.NewString(),
		Name:      name,
		Type:      model.RequirementTypeFile,
		Container: container,
	}
}

func TestRequirementRepository_ReplaceByContainer_List(t *testing.T) {
	db := newTestDB(t)
	r := NewRequirementRepository(db)
	ctx := context.Background()

	assert.NoError(t, r.ReplaceByContainer(ctx, "Audit", []model.Requirement{
		mkRequirement("Spec Doc", "Audit"),
		mkRequirement("Budget", "Audit"),
	}))
	assert.NoError(t, r.ReplaceByContainer(ctx, "Onboarding", []model.Requirement{
		mkRequirement("ID Scan", "Onboarding"),
	}))

	all, err := r.List(ctx, "")
	assert.NoError(t, err)
	assert.Len(t, all, 3)

	audit, err := r.List(ctx, "Audit")
	assert.NoError(t, err)
	assert.Len(t, audit, 2)

	// exact name match only
	none, err := r.List(ctx, "audit")
	assert.NoError(t, err)
	assert.Empty(t, none)
}

func TestRequirementRepository_ReplaceByContainer_Verbatim(t *testing.T) {
	db := newTestDB(t)
	r := NewRequirementRepository(db)
	ctx := context.Background()

	// the registry does not de-duplicate; two identical rows stay two rows
	assert.NoError(t, r.ReplaceByContainer(ctx, "Audit", []model.Requirement{
		mkRequirement("R1", "Audit"),
		mkRequirement("R1", "Audit"),
	}))

	got, err := r.List(ctx, "Audit")
	assert.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestRequirementRepository_ReplaceByContainer_SwapsRows(t *testing.T) {
	db := newTestDB(t)
	r := NewRequirementRepository(db)
	ctx := context.Background()

	assert.NoError(t, r.ReplaceByContainer(ctx, "Audit", []model.Requirement{
		mkRequirement("Old", "Audit"),
	}))
	assert.NoError(t, r.ReplaceByContainer(ctx, "Onboarding", []model.Requirement{
		mkRequirement("Keep", "Onboarding"),
	}))

	assert.NoError(t, r.ReplaceByContainer(ctx, "Audit", []model.Requirement{
		mkRequirement("New1", "Audit"),
		mkRequirement("New2", "Audit"),
	}))

	audit, err := r.List(ctx, "Audit")
	assert.NoError(t, err)
	assert.Len(t, audit, 2)
	for _, req := range audit {
		assert.NotEqual(t, "Old", req.Name)
	}

	// other containers stay untouched
	other, err := r.List(ctx, "Onboarding")
	assert.NoError(t, err)
	assert.Len(t, other, 1)

	// an empty batch clears the container
	assert.NoError(t, r.ReplaceByContainer(ctx, "Audit", nil))
	audit, err = r.List(ctx, "Audit")
	assert.NoError(t, err)
	assert.Empty(t, audit)
}

func TestRequirementRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	r := NewRequirementRepository(db)
	ctx := context.Background()

	req := mkRequirement("Spec Doc", "Audit")
	assert.NoError(t, r.ReplaceByContainer(ctx, "Audit", []model.Requirement{req}))

	got, err := r.GetByID(ctx, req.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Spec Doc", got.Name)

	assert.NoError(t, r.Delete(ctx, req.ID))

	got, err = r.GetByID(ctx, req.ID)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestRequirementRepository_DeleteByContainer(t *testing.T) {
	db := newTestDB(t)
	r := NewRequirementRepository(db)
	ctx := context.Background()

	assert.NoError(t, r.ReplaceByContainer(ctx, "Audit", []model.Requirement{
		mkRequirement("R1", "Audit"),
		mkRequirement("R2", "Audit"),
	}))
	assert.NoError(t, r.ReplaceByContainer(ctx, "Onboarding", []model.Requirement{
		mkRequirement("R3", "Onboarding"),
	}))

	n, err := r.DeleteByContainer(ctx, "Audit")
	assert.NoError(t, err)
	assert.Equal(t, int64(2), n)

	left, err := r.List(ctx, "")
	assert.NoError(t, err)
	assert.Len(t, left, 1)
	assert.Equal(t, "Onboarding", left[0].Container)

	// deleting an unknown container removes nothing and is not an error
	n, err = r.DeleteByContainer(ctx, "Nope")
	assert.NoError(t, err)
	assert.Zero(t, n)
}
