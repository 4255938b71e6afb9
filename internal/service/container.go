package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"DocPortal/internal/apperror"
	"DocPortal/internal/model"
	"DocPortal/internal/repo"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// ContainerService owns the container tree: creation, the per-container
// email allow-list, and the recursive cascade delete. Authorization for
// sub-containers is inherited: reaching the parent already proved access,
// so Subcontainers applies no filter of its own.
type ContainerService struct {
	containers   repo.ContainerRepository
	requirements repo.RequirementRepository
	logger       *zap.SugaredLogger
}

func NewContainerService(containers repo.ContainerRepository, requirements repo.RequirementRepository, logger *zap.SugaredLogger) *ContainerService {
	return &ContainerService{containers: containers, requirements: requirements, logger: logger}
}

// Create adds a container with an empty allow-list. Name uniqueness across
// the whole tree is decided by the storage unique index, not a pre-check,
// so concurrent creates of the same name cannot both win.
func (s *ContainerService) Create(ctx context.Context, name string, parentID *string) (*model.Container, error) {
	if name == "" {
		return nil, apperror.InvalidInput("name", "container name is required")
	}
	if parentID != nil && *parentID == "" {
		parentID = nil
	}

	c := &model.Container{
		ID:              uuid.NewString(),
		Name:            name,
		ParentID:        parentID,
		AuthorizedUsers: datatypes.NewJSONSlice([]string{}),
	}
	if err := s.containers.Create(ctx, c); err != nil {
		if repo.IsDuplicate(err) {
			return nil, apperror.Conflict("container", fmt.Sprintf("name %q already exists", name))
		}
		return nil, apperror.Storage("create container", err)
	}
	return c, nil
}

// List returns every container when email is empty (the admin view), or
// only containers whose allow-list holds the normalized email. The filter
// applies to each container's own list; descendant visibility for a user
// goes through Subcontainers instead.
func (s *ContainerService) List(ctx context.Context, email string) ([]model.Container, error) {
	all, err := s.containers.List(ctx)
	if err != nil {
		return nil, apperror.Storage("list containers", err)
	}
	if email == "" {
		return all, nil
	}

	norm := normalizeEmail(email)
	out := make([]model.Container, 0)
	for _, c := range all {
		if slices.Contains(c.AuthorizedUsers, norm) {
			out = append(out, c)
		}
	}
	return out, nil
}

// Subcontainers lists direct children. No authorization filtering here:
// callers gate on the parent.
func (s *ContainerService) Subcontainers(ctx context.Context, parentID string) ([]model.Container, error) {
	subs, err := s.containers.ListByParent(ctx, parentID)
	if err != nil {
		return nil, apperror.Storage("list subcontainers", err)
	}
	return subs, nil
}

// Authorize replaces the allow-list wholesale with the normalized,
// de-duplicated input.
func (s *ContainerService) Authorize(ctx context.Context, id string, emails []string) (*model.Container, error) {
	c, err := s.getContainer(ctx, id)
	if err != nil {
		return nil, err
	}

	normalized := normalizeEmails(emails)
	if err := s.containers.ReplaceAuthorizedUsers(ctx, id, normalized); err != nil {
		return nil, apperror.Storage("authorize container", err)
	}
	c.AuthorizedUsers = datatypes.NewJSONSlice(normalized)
	return c, nil
}

// Deauthorize removes only the given emails from the allow-list, leaving
// the rest untouched.
func (s *ContainerService) Deauthorize(ctx context.Context, id string, emails []string) (*model.Container, error) {
	c, err := s.getContainer(ctx, id)
	if err != nil {
		return nil, err
	}

	remove := make(map[string]struct{}, len(emails))
	for _, e := range emails {
		remove[normalizeEmail(e)] = struct{}{}
	}
	kept := make([]string, 0, len(c.AuthorizedUsers))
	for _, e := range c.AuthorizedUsers {
		if _, ok := remove[e]; !ok {
			kept = append(kept, e)
		}
	}

	if err := s.containers.ReplaceAuthorizedUsers(ctx, id, kept); err != nil {
		return nil, apperror.Storage("deauthorize container", err)
	}
	c.AuthorizedUsers = datatypes.NewJSONSlice(kept)
	return c, nil
}

// Delete removes the container, all its descendants (post-order) and every
// requirement registered under each removed container's name. The sequence
// is not transactional: a mid-way failure leaves the subtree partially
// deleted and surfaces as a storage error.
func (s *ContainerService) Delete(ctx context.Context, id string) error {
	c, err := s.getContainer(ctx, id)
	if err != nil {
		return err
	}
	return s.deleteRecursive(ctx, c)
}

func (s *ContainerService) deleteRecursive(ctx context.Context, c *model.Container) error {
	subs, err := s.containers.ListByParent(ctx, c.ID)
	if err != nil {
		return apperror.Storage("list subcontainers", err)
	}
	for i := range subs {
		if err := s.deleteRecursive(ctx, &subs[i]); err != nil {
			return err
		}
	}

	n, err := s.requirements.DeleteByContainer(ctx, c.Name)
	if err != nil {
		return apperror.Storage("delete requirements of container", err)
	}
	if err := s.containers.Delete(ctx, c.ID); err != nil {
		return apperror.Storage("delete container", err)
	}

	s.logger.Infow("container deleted",
		"id", c.ID,
		"name", c.Name,
		"requirements_removed", n,
	)
	return nil
}

func (s *ContainerService) getContainer(ctx context.Context, id string) (*model.Container, error) {
	c, err := s.containers.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Storage("get container", err)
	}
	if c == nil {
		return nil, apperror.NotFound("container", id)
	}
	return c, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// normalizeEmails trims, lower-cases and de-duplicates, keeping first-seen order.
func normalizeEmails(emails []string) []string {
	seen := make(map[string]struct{}, len(emails))
	out := make([]string, 0, len(emails))
	for _, e := range emails {
		norm := normalizeEmail(e)
		if norm == "" {
			continue
		}
		if _, ok := seen[norm]; ok {
			continue
		}
		seen[norm] = struct{}{}
		out = append(out, norm)
	}
	return out
}
