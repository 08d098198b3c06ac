package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/cwrk-planet/bizos/pkg/httputil"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// в details имена полей из JSON
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeJSON читает тело в dst и проверяет теги validate.
// При ошибке ответ уже записан, вызывающий просто выходит.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, invalidMsg string) bool {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		httputil.Error(w, http.StatusBadRequest, invalidMsg)
		return false
	}

	if err := validate.Struct(dst); err != nil {
		var ves validator.ValidationErrors
		if !errors.As(err, &ves) {
			httputil.Error(w, http.StatusBadRequest, invalidMsg)
			return false
		}
		details := make([]httputil.FieldError, 0, len(ves))
		for _, fe := range ves {
			details = append(details, httputil.FieldError{Field: fe.Field(), Rule: fe.Tag()})
		}
		httputil.ValidationError(w, invalidMsg, details)
		return false
	}
	return true
}
