package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cwrk-planet/bizos/internal/domain"
	"github.com/cwrk-planet/bizos/internal/postgres"
	httpmw "github.com/cwrk-planet/bizos/internal/transport/http/middleware"
	"github.com/cwrk-planet/bizos/pkg/errs"
	"github.com/cwrk-planet/bizos/pkg/httputil"
	"github.com/cwrk-planet/bizos/pkg/logger"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const msgNotMember = "User is not a member of this group"

type Handler struct {
	svc Services
}

func NewHandler(svc Services) *Handler {
	return &Handler{svc: svc}
}

// fail пишет ответ по ошибке сервиса; notFound: текст для 404 конкретной сущности.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error, notFound string) {
	switch {
	case errors.Is(err, postgres.ErrInvalidCursor):
		httputil.Error(w, http.StatusBadRequest, "invalid cursor")
		return
	case notFound != "" && errors.Is(err, domain.ErrNotFound):
		httputil.Error(w, http.StatusNotFound, notFound)
		return
	}

	status := errs.ToHTTP(err)
	if status >= http.StatusInternalServerError {
		logger.FromContext(r.Context()).Error("handler."+op, slog.Any("err", err))
	}
	httputil.Error(w, status, errs.Message(err))
}

// actingUser сверяет userId из тела с аутентифицированным пользователем.
// Если идентичности в запросе нет, доверяем телу.
func actingUser(w http.ResponseWriter, r *http.Request, claimed string) (string, bool) {
	authed := httpmw.UserIDFromCtx(r.Context())
	switch {
	case authed == "" && claimed == "":
		httputil.ValidationError(w, "userId is required", []httputil.FieldError{{Field: "userId", Rule: "required"}})
		return "", false
	case authed == "":
		return claimed, true
	case claimed != "" && claimed != authed:
		httputil.Error(w, http.StatusForbidden, "userId does not match the authenticated user")
		return "", false
	default:
		return authed, true
	}
}

// pathID читает uuid из пути. Кривой id не доходит до базы: 404 сущности или 400 для списков.
func pathID(w http.ResponseWriter, r *http.Request, name, notFound string) (string, bool) {
	id := chi.URLParam(r, name)
	if isUUID(id) {
		return id, true
	}
	if notFound != "" {
		httputil.Error(w, http.StatusNotFound, notFound)
	} else {
		httputil.Error(w, http.StatusBadRequest, "Invalid "+name)
	}
	return "", false
}

// isUUID: только каноническая форма 8-4-4-4-12.
func isUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

func queryInt(r *http.Request, key string, def int) int {
	if s := r.URL.Query().Get(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return def
}
