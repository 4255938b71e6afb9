package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"DocPortal/internal/model"
	"DocPortal/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// RequirementHandler exposes the per-container requirement registry and the
// matcher view joining requirements with their current submissions.
type RequirementHandler struct {
	Requirements *service.RequirementService
	Files        *service.FileService
	Logger       *zap.SugaredLogger
}

func NewRequirementHandler(requirements *service.RequirementService, files *service.FileService, logger *zap.SugaredLogger) *RequirementHandler {
	return &RequirementHandler{Requirements: requirements, Files: files, Logger: logger}
}

type requirementInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

type replaceRequirementsRequest struct {
	Container    string             `json:"container"`
	Requirements []requirementInput `json:"requirements"`
}

func (h *RequirementHandler) List(w http.ResponseWriter, r *http.Request) {
	if _, ok := identity(w, r); !ok {
		return
	}

	reqs, err := h.Requirements.List(r.Context(), r.URL.Query().Get("container"))
	if err != nil {
		h.Logger.Errorw("list requirements", "error", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reqs)
}

// Status returns the matcher view: each requirement of the container paired
// with its current submission and a display status.
func (h *RequirementHandler) Status(w http.ResponseWriter, r *http.Request) {
	if _, ok := identity(w, r); !ok {
		return
	}

	reqs, err := h.Requirements.List(r.Context(), r.URL.Query().Get("container"))
	if err != nil {
		h.Logger.Errorw("list requirements for status", "error", err)
		writeError(w, err)
		return
	}
	matched, err := h.Files.MatchRequirements(r.Context(), reqs)
	if err != nil {
		h.Logger.Errorw("match requirements", "error", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, matched)
}

// Replace swaps the container's requirement set for the posted batch. The
// handler owns the caller contract: exact duplicate rows collapse to one and
// names empty after trimming are dropped before the service write.
func (h *RequirementHandler) Replace(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	var req replaceRequirementsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	// a missing or null batch must not read as "replace with nothing"
	if req.Requirements == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "requirements must be an array", Field: "requirements"})
		return
	}

	batch := dedupeRequirements(req.Requirements)
	created, err := h.Requirements.Replace(r.Context(), req.Container, batch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *RequirementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	if err := h.Requirements.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteByContainer bulk-drops every requirement of one container and
// reports the count. Submissions stay untouched on this path.
func (h *RequirementHandler) DeleteByContainer(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	n, err := h.Requirements.DeleteByContainer(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"deleted": n})
}

// dedupeRequirements collapses exact (name, description, type) repeats,
// keeping first-seen order, and drops entries whose name trims to empty.
func dedupeRequirements(in []requirementInput) []model.Requirement {
	type key struct{ name, description, typ string }
	seen := make(map[key]struct{}, len(in))
	out := make([]model.Requirement, 0, len(in))
	for _, r := range in {
		if strings.TrimSpace(r.Name) == "" {
			continue
		}
		k := key{r.Name, r.Description, r.Type}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, model.Requirement{Name: r.Name, Description: r.Description, Type: r.Type})
	}
	return out
}
