package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/cwrk-planet/bizos/internal/domain"
	"github.com/cwrk-planet/bizos/internal/imagegen"
	"github.com/cwrk-planet/bizos/internal/service"
	"github.com/cwrk-planet/bizos/pkg/errs"
	"github.com/cwrk-planet/bizos/pkg/httputil"
	"github.com/cwrk-planet/bizos/pkg/logger"
)

// GET /api/generated-images/{businessId}
func (h *Handler) ListImages(w http.ResponseWriter, r *http.Request) {
	businessID, ok := pathID(w, r, "businessId", "")
	if !ok {
		return
	}
	items, err := h.svc.Images.ListByBusiness(r.Context(), businessID)
	if err != nil {
		h.fail(w, r, "ListImages", err, "")
		return
	}
	httputil.JSON(w, http.StatusOK, items)
}

// POST /api/generate-image
func (h *Handler) GenerateImage(w http.ResponseWriter, r *http.Request) {
	var req GenerateImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		httputil.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	// до провайдера: запрос к нему платный
	if id := strings.TrimSpace(req.BusinessID); id != "" && !isUUID(id) {
		httputil.Error(w, http.StatusBadRequest, "Invalid business_id")
		return
	}

	img, err := h.svc.Images.Generate(r.Context(), service.GenerateImageInput{
		Prompt:     req.Prompt,
		Style:      req.Style,
		BusinessID: req.BusinessID,
	})
	if err != nil {
		h.failImage(w, r, err)
		return
	}
	httputil.JSON(w, http.StatusOK, img)
}

// ошибки провайдера отдаются 500 с его кодом в тексте
func (h *Handler) failImage(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *imagegen.APIError
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		httputil.Error(w, http.StatusBadRequest, errs.Message(err))
		return
	case errors.Is(err, imagegen.ErrNotConfigured):
		httputil.Error(w, http.StatusInternalServerError, "OpenAI API key not configured")
	case errors.As(err, &apiErr):
		logger.FromContext(r.Context()).Error("handler.GenerateImage",
			slog.Any("err", err), slog.String("body", apiErr.Body))
		httputil.Error(w, http.StatusInternalServerError,
			fmt.Sprintf("OpenAI API error: %d %s", apiErr.StatusCode, apiErr.StatusText))
		return
	case errors.Is(err, imagegen.ErrInvalidResponse):
		httputil.Error(w, http.StatusInternalServerError, "Invalid response from OpenAI API")
	default:
		h.fail(w, r, "GenerateImage", err, "")
		return
	}
	logger.FromContext(r.Context()).Error("handler.GenerateImage", slog.Any("err", err))
}
