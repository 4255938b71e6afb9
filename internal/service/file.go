package service

import (
	"context"
	"fmt"

	"DocPortal/internal/apperror"
	"DocPortal/internal/blobstore"
	"DocPortal/internal/model"
	"DocPortal/internal/repo"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FileService owns submissions: upload, the (name, url) duplicate check,
// the approval status machine and the name-equality matcher that pairs a
// requirement with its current submission.
type FileService struct {
	files  repo.FileRepository
	blobs  blobstore.Store
	logger *zap.SugaredLogger
}

func NewFileService(files repo.FileRepository, blobs blobstore.Store, logger *zap.SugaredLogger) *FileService {
	return &FileService{files: files, blobs: blobs, logger: logger}
}

// UploadRequest carries one submission: Data for file uploads, URL for
// pasted links.
type UploadRequest struct {
	Name     string
	Type     string
	URL      string
	Filename string
	Data     []byte
}

// Upload stores the artifact (file type), rejects exact (name, url)
// duplicates and creates the record in pending status.
func (s *FileService) Upload(ctx context.Context, in UploadRequest) (*model.File, error) {
	if in.Name == "" || in.Type == "" {
		return nil, apperror.InvalidInput("name", "name and type are required")
	}
	if in.Type != model.FileTypeFile && in.Type != model.FileTypeLink {
		return nil, apperror.InvalidInput("type", "type must be file or link")
	}

	url := in.URL
	if in.Type == model.FileTypeFile {
		if len(in.Data) == 0 {
			return nil, apperror.InvalidInput("file", "file is missing")
		}
		filename := in.Filename
		if filename == "" {
			filename = in.Name
		}
		locator, err := s.blobs.Store(ctx, filename, in.Data)
		if err != nil {
			return nil, apperror.Storage("store artifact", err)
		}
		url = locator
	}

	existing, err := s.files.FindByNameURL(ctx, in.Name, url)
	if err != nil {
		return nil, apperror.Storage("check duplicate submission", err)
	}
	if existing != nil {
		return nil, apperror.Conflict("file", fmt.Sprintf("submission %q already exists for this url", in.Name))
	}

	f := &model.File{
		ID:     uuid.NewString(),
		Name:   in.Name,
		Type:   in.Type,
		URL:    url,
		Status: model.StatusPending,
	}
	if err := s.files.Create(ctx, f); err != nil {
		return nil, apperror.Storage("create submission", err)
	}

	s.logger.Infow("submission uploaded", "id", f.ID, "name", f.Name, "type", f.Type)
	return f, nil
}

// List returns all submissions in store iteration order; no ordering is
// promised beyond that.
func (s *FileService) List(ctx context.Context) ([]model.File, error) {
	files, err := s.files.List(ctx)
	if err != nil {
		return nil, apperror.Storage("list submissions", err)
	}
	return files, nil
}

// SetStatus overwrites the status with accepted or rejected. Any current
// state transitions to any target state; re-applying the same status is a
// no-op success.
func (s *FileService) SetStatus(ctx context.Context, id, status string) (*model.File, error) {
	if status != model.StatusAccepted && status != model.StatusRejected {
		return nil, apperror.InvalidInput("status", "status must be accepted or rejected")
	}

	n, err := s.files.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, apperror.Storage("update submission status", err)
	}
	if n == 0 {
		return nil, apperror.NotFound("file", id)
	}

	f, err := s.files.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Storage("get submission", err)
	}
	return f, nil
}

// Delete removes the record, dropping the stored artifact first for file
// submissions. A blob already gone from the store is logged and ignored.
func (s *FileService) Delete(ctx context.Context, id string) error {
	f, err := s.files.GetByID(ctx, id)
	if err != nil {
		return apperror.Storage("get submission", err)
	}
	if f == nil {
		return apperror.NotFound("file", id)
	}

	if f.Type == model.FileTypeFile && f.URL != "" {
		if err := s.blobs.Remove(ctx, f.URL); err != nil {
			s.logger.Warnw("skipping artifact removal", "url", f.URL, "error", err)
		}
	}
	if err := s.files.Delete(ctx, f.ID); err != nil {
		return apperror.Storage("delete submission", err)
	}
	return nil
}

// DownloadURL resolves a submission to a fetchable URL. Links pass through
// as-is; a locator the artifact store no longer recognizes is a 404, never
// a crash.
func (s *FileService) DownloadURL(ctx context.Context, id string) (string, error) {
	f, err := s.files.GetByID(ctx, id)
	if err != nil {
		return "", apperror.Storage("get submission", err)
	}
	if f == nil {
		return "", apperror.NotFound("file", id)
	}
	if f.Type == model.FileTypeLink {
		return f.URL, nil
	}

	url, err := s.blobs.ResolveURL(ctx, f.URL)
	if err != nil {
		s.logger.Warnw("dangling artifact locator", "id", f.ID, "url", f.URL, "error", err)
		return "", apperror.NotFound("file", id)
	}
	return url, nil
}

// RequirementStatus is the matcher's view of one requirement: its current
// submission (first match by name, if any) and the derived display status.
type RequirementStatus struct {
	Requirement model.Requirement `json:"requirement"`
	Submission  *model.File       `json:"submission,omitempty"`
	Status      string            `json:"status"`
}

// MatchRequirements pairs each requirement with the first submission whose
// name equals the requirement's name. Ties between multiple submissions of
// one name fall to store iteration order.
func (s *FileService) MatchRequirements(ctx context.Context, reqs []model.Requirement) ([]RequirementStatus, error) {
	out := make([]RequirementStatus, 0, len(reqs))
	for _, r := range reqs {
		f, err := s.files.FirstByName(ctx, r.Name)
		if err != nil {
			return nil, apperror.Storage("match submission", err)
		}
		out = append(out, RequirementStatus{Requirement: r, Submission: f, Status: StatusFor(f)})
	}
	return out, nil
}

// StatusFor derives the display status of a matched submission; a missing
// submission reads as "none".
func StatusFor(f *model.File) string {
	if f == nil {
		return model.StatusNone
	}
	return f.Status
}
