package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"DocPortal/internal/config"
	"DocPortal/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// FileHandler exposes submissions: multipart upload, the approval status
// machine and the download redirect.
type FileHandler struct {
	Files  *service.FileService
	Logger *zap.SugaredLogger
	Config *config.Config
}

func NewFileHandler(files *service.FileService, logger *zap.SugaredLogger, cfg *config.Config) *FileHandler {
	return &FileHandler{Files: files, Logger: logger, Config: cfg}
}

type statusRequest struct {
	Status string `json:"status"`
}

// Upload accepts multipart/form-data: name and type fields always, a file
// part for file submissions, a url field for links.
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if _, ok := identity(w, r); !ok {
		return
	}

	// body limit with headroom for the multipart framing
	maxBody := int64(h.Config.UploadMaxSizeMB)*1024*1024 + 1*1024*1024
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "payload too large"})
			return
		}
		h.Logger.Warnw("upload: invalid multipart form", "error", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid multipart form"})
		return
	}

	req := service.UploadRequest{
		Name: r.FormValue("name"),
		Type: r.FormValue("type"),
		URL:  r.FormValue("url"),
	}
	if file, header, err := r.FormFile("file"); err == nil {
		defer file.Close()
		data, readErr := io.ReadAll(file)
		if readErr != nil {
			h.Logger.Warnw("upload: failed to read file part", "error", readErr)
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "failed to read file"})
			return
		}
		if int64(len(data)) > int64(h.Config.UploadMaxSizeMB)*1024*1024 {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "payload too large"})
			return
		}
		req.Filename = header.Filename
		req.Data = data
	}

	f, err := h.Files.Upload(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, f)
}

func (h *FileHandler) List(w http.ResponseWriter, r *http.Request) {
	if _, ok := identity(w, r); !ok {
		return
	}

	files, err := h.Files.List(r.Context())
	if err != nil {
		h.Logger.Errorw("list submissions", "error", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, files)
}

// SetStatus overwrites a submission's status with accepted or rejected.
func (h *FileHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	f, err := h.Files.SetStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (h *FileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	if err := h.Files.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Download redirects to the submission's fetchable URL: the pasted link,
// the static uploads path or a presigned object URL.
func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	if _, ok := identity(w, r); !ok {
		return
	}

	url, err := h.Files.DownloadURL(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	http.Redirect(w, r, url, http.StatusFound)
}
