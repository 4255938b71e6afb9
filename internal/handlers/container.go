package handlers

import (
	"encoding/json"
	"net/http"

	"DocPortal/internal/middleware"
	"DocPortal/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ContainerHandler exposes the container tree and its allow-lists.
type ContainerHandler struct {
	Containers *service.ContainerService
	Logger     *zap.SugaredLogger
}

func NewContainerHandler(containers *service.ContainerService, logger *zap.SugaredLogger) *ContainerHandler {
	return &ContainerHandler{Containers: containers, Logger: logger}
}

type createContainerRequest struct {
	Name     string  `json:"name"`
	ParentID *string `json:"parent,omitempty"`
}

type allowListRequest struct {
	Emails []string `json:"emails"`
}

// List returns every container for admins and the allow-list filtered view
// for everyone else. The filter email comes from the verified token only,
// never from the request.
func (h *ContainerHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := identity(w, r)
	if !ok {
		return
	}

	email := ""
	if claims.Role != middleware.RoleAdmin {
		email = claims.Email
	}
	containers, err := h.Containers.List(r.Context(), email)
	if err != nil {
		h.Logger.Errorw("list containers", "error", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, containers)
}

func (h *ContainerHandler) Create(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	var req createContainerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	c, err := h.Containers.Create(r.Context(), req.Name, req.ParentID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// Subcontainers lists direct children of a container. Access to the parent
// already proved authorization, so no filter applies here.
func (h *ContainerHandler) Subcontainers(w http.ResponseWriter, r *http.Request) {
	if _, ok := identity(w, r); !ok {
		return
	}

	subs, err := h.Containers.Subcontainers(r.Context(), chi.URLParam(r, "parentID"))
	if err != nil {
		h.Logger.Errorw("list subcontainers", "error", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, subs)
}

func (h *ContainerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	if err := h.Containers.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Authorize replaces the container's allow-list with the posted emails.
func (h *ContainerHandler) Authorize(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	req, ok := decodeAllowList(w, r)
	if !ok {
		return
	}
	c, err := h.Containers.Authorize(r.Context(), chi.URLParam(r, "id"), req.Emails)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// Deauthorize removes the posted emails from the allow-list.
func (h *ContainerHandler) Deauthorize(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	req, ok := decodeAllowList(w, r)
	if !ok {
		return
	}
	c, err := h.Containers.Deauthorize(r.Context(), chi.URLParam(r, "id"), req.Emails)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// decodeAllowList rejects bodies where emails is absent or not an array.
func decodeAllowList(w http.ResponseWriter, r *http.Request) (*allowListRequest, bool) {
	var req allowListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body", Field: "emails"})
		return nil, false
	}
	if req.Emails == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "emails must be an array", Field: "emails"})
		return nil, false
	}
	return &req, true
}
