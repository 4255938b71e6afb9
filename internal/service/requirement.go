package service

import (
	"context"
	"strings"

	"DocPortal/internal/apperror"
	"DocPortal/internal/blobstore"
	"DocPortal/internal/model"
	"DocPortal/internal/repo"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequirementService is the registry of obligations per container. Its
// primary write path is a full replace-by-container; it stores the incoming
// batch verbatim and leaves de-duplication to the caller.
type RequirementService struct {
	requirements repo.RequirementRepository
	files        repo.FileRepository
	blobs        blobstore.Store
	logger       *zap.SugaredLogger
}

func NewRequirementService(requirements repo.RequirementRepository, files repo.FileRepository, blobs blobstore.Store, logger *zap.SugaredLogger) *RequirementService {
	return &RequirementService{requirements: requirements, files: files, blobs: blobs, logger: logger}
}

func (s *RequirementService) List(ctx context.Context, container string) ([]model.Requirement, error) {
	reqs, err := s.requirements.List(ctx, container)
	if err != nil {
		return nil, apperror.Storage("list requirements", err)
	}
	return reqs, nil
}

// Replace drops every requirement of the container and inserts the given
// batch in one transaction. The whole batch is rejected when any name is
// empty, before anything is written.
func (s *RequirementService) Replace(ctx context.Context, container string, reqs []model.Requirement) ([]model.Requirement, error) {
	if container == "" {
		return nil, apperror.InvalidInput("container", "container is required")
	}

	toInsert := make([]model.Requirement, 0, len(reqs))
	for _, r := range reqs {
		if strings.TrimSpace(r.Name) == "" {
			return nil, apperror.InvalidInput("name", "requirement name cannot be empty")
		}
		typ := r.Type
		if typ == "" {
			typ = model.RequirementTypeFile
		}
		if typ != model.RequirementTypeFile && typ != model.RequirementTypeURL {
			return nil, apperror.InvalidInput("type", "requirement type must be file or url")
		}
		toInsert = append(toInsert, model.Requirement{
			ID:          uuid.NewString(),
			Name:        r.Name,
			Description: r.Description,
			Type:        typ,
			Container:   container,
		})
	}

	if err := s.requirements.ReplaceByContainer(ctx, container, toInsert); err != nil {
		return nil, apperror.Storage("replace requirements", err)
	}
	return toInsert, nil
}

// Delete removes one requirement and cascades to every submission carrying
// the same name: artifacts first (best-effort), then the records.
func (s *RequirementService) Delete(ctx context.Context, id string) error {
	req, err := s.requirements.GetByID(ctx, id)
	if err != nil {
		return apperror.Storage("get requirement", err)
	}
	if req == nil {
		return apperror.NotFound("requirement", id)
	}

	files, err := s.files.ListByName(ctx, req.Name)
	if err != nil {
		return apperror.Storage("list submissions of requirement", err)
	}
	for _, f := range files {
		if f.Type == model.FileTypeFile && f.URL != "" {
			if err := s.blobs.Remove(ctx, f.URL); err != nil {
				// a missing artifact never fails the cascade
				s.logger.Warnw("skipping artifact removal", "url", f.URL, "error", err)
			}
		}
	}
	if err := s.files.DeleteByName(ctx, req.Name); err != nil {
		return apperror.Storage("delete submissions of requirement", err)
	}
	if err := s.requirements.Delete(ctx, req.ID); err != nil {
		return apperror.Storage("delete requirement", err)
	}

	s.logger.Infow("requirement deleted", "id", req.ID, "name", req.Name, "submissions_removed", len(files))
	return nil
}

// DeleteByContainer bulk-drops the container's requirements and returns the
// count. Unlike the single delete it does not touch submissions; the
// asymmetry is inherited behavior, kept on purpose.
func (s *RequirementService) DeleteByContainer(ctx context.Context, container string) (int64, error) {
	n, err := s.requirements.DeleteByContainer(ctx, container)
	if err != nil {
		return 0, apperror.Storage("delete requirements by container", err)
	}
	return n, nil
}
