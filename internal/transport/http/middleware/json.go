package httpmw

import (
	"bytes"
	"io"
	"mime"
	"net/http"

	"github.com/cwrk-planet/bizos/pkg/httputil"

	"github.com/valyala/fastjson"
)

const maxBodyBytes = 1 << 20

// RequireJSON проверяет тело POST/PUT/PATCH: Content-Type и корректный JSON.
// Пустое тело пропускается, его разбирает обработчик.
func RequireJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			next.ServeHTTP(w, r)
			return
		}

		if ct := r.Header.Get("Content-Type"); ct != "" {
			mt, _, err := mime.ParseMediaType(ct)
			if err != nil {
				httputil.Error(w, http.StatusBadRequest, "Malformed Content-Type header")
				return
			}
			if mt != "application/json" {
				httputil.Error(w, http.StatusUnsupportedMediaType, "Content-Type header must be application/json")
				return
			}
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
		if err != nil {
			httputil.Error(w, http.StatusBadRequest, "Can not read request body")
			return
		}
		if len(body) > maxBodyBytes {
			httputil.Error(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		if len(bytes.TrimSpace(body)) > 0 {
			if err := fastjson.ValidateBytes(body); err != nil {
				httputil.Error(w, http.StatusBadRequest, "Malformed JSON")
				return
			}
		}

		r.Body = io.NopCloser(bytes.NewReader(body))
		next.ServeHTTP(w, r)
	})
}
