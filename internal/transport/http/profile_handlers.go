package http

import (
	"net/http"
	"strings"

	"github.com/cwrk-planet/bizos/internal/domain"
	"github.com/cwrk-planet/bizos/pkg/httputil"

	"github.com/go-chi/chi/v5"
)

const (
	msgProfileNotFound  = "Profile not found"
	msgBusinessNotFound = "Business account not found"
)

// GET /api/profiles/{id}
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", msgProfileNotFound)
	if !ok {
		return
	}
	p, err := h.svc.Profiles.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, "GetProfile", err, msgProfileNotFound)
		return
	}
	httputil.JSON(w, http.StatusOK, p)
}

// GET /api/profiles/by-email/{email}
func (h *Handler) GetProfileByEmail(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(chi.URLParam(r, "email"))
	p, err := h.svc.Profiles.GetByEmail(r.Context(), email)
	if err != nil {
		h.fail(w, r, "GetProfileByEmail", err, msgProfileNotFound)
		return
	}
	httputil.JSON(w, http.StatusOK, p)
}

// POST /api/profiles
func (h *Handler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var req CreateProfileRequest
	if !decodeJSON(w, r, &req, "Invalid profile data") {
		return
	}
	p, err := h.svc.Profiles.Create(r.Context(), &domain.Profile{
		ID:        req.ID,
		Email:     req.Email,
		FullName:  req.FullName,
		AvatarURL: req.AvatarURL,
		Role:      domain.Role(req.Role),
	})
	if err != nil {
		h.fail(w, r, "CreateProfile", err, "")
		return
	}
	httputil.JSON(w, http.StatusCreated, p)
}

// PUT /api/profiles/{id}
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", msgProfileNotFound)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if !decodeJSON(w, r, &req, "Invalid profile data") {
		return
	}
	patch := domain.ProfilePatch{Email: req.Email, FullName: req.FullName, AvatarURL: req.AvatarURL}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		patch.Role = &role
	}
	p, err := h.svc.Profiles.Update(r.Context(), id, patch)
	if err != nil {
		h.fail(w, r, "UpdateProfile", err, msgProfileNotFound)
		return
	}
	httputil.JSON(w, http.StatusOK, p)
}

// GET /api/business-accounts/owner/{ownerId}
func (h *Handler) ListBusinessesByOwner(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := pathID(w, r, "ownerId", "")
	if !ok {
		return
	}
	items, err := h.svc.Businesses.ListByOwner(r.Context(), ownerID)
	if err != nil {
		h.fail(w, r, "ListBusinessesByOwner", err, "")
		return
	}
	httputil.JSON(w, http.StatusOK, items)
}

// GET /api/business-accounts/{id}
func (h *Handler) GetBusiness(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", msgBusinessNotFound)
	if !ok {
		return
	}
	b, err := h.svc.Businesses.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, "GetBusiness", err, msgBusinessNotFound)
		return
	}
	httputil.JSON(w, http.StatusOK, b)
}

// POST /api/business-accounts
func (h *Handler) CreateBusiness(w http.ResponseWriter, r *http.Request) {
	var req CreateBusinessRequest
	if !decodeJSON(w, r, &req, "Invalid business account data") {
		return
	}
	b, err := h.svc.Businesses.Create(r.Context(), req.Name, req.OwnerID)
	if err != nil {
		h.fail(w, r, "CreateBusiness", err, "")
		return
	}
	httputil.JSON(w, http.StatusCreated, b)
}

// PUT /api/business-accounts/{id}
func (h *Handler) UpdateBusiness(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", msgBusinessNotFound)
	if !ok {
		return
	}
	var req UpdateBusinessRequest
	if !decodeJSON(w, r, &req, "Invalid business account data") {
		return
	}
	b, err := h.svc.Businesses.Update(r.Context(), id, req.Name)
	if err != nil {
		h.fail(w, r, "UpdateBusiness", err, msgBusinessNotFound)
		return
	}
	httputil.JSON(w, http.StatusOK, b)
}
