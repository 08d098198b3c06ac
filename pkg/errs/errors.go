package errs

import (
	"errors"
	"net/http"

	"github.com/cwrk-planet/bizos/internal/domain"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrRateLimited  = errors.New("too many requests")
)

func ToHTTP(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidReference),
		errors.Is(err, domain.ErrEmptyMessage),
		errors.Is(err, domain.ErrMessageTooLong):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrNotMember):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyExists),
		errors.Is(err, domain.ErrAlreadyMember):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvitationInactive),
		errors.Is(err, domain.ErrInvitationExpired),
		errors.Is(err, domain.ErrInvitationExhausted):
		return http.StatusGone
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// publicError: ошибка, текст которой можно показать клиенту целиком.
type publicError interface {
	Public() string
}

// Message: текст для тела ответа. Внутренние детали (SQL, обёртки) не раскрываются.
func Message(err error) string {
	var pe publicError
	if errors.As(err, &pe) {
		return pe.Public()
	}
	switch {
	case errors.Is(err, domain.ErrInvitationInactive):
		return "This invitation link has been deactivated"
	case errors.Is(err, domain.ErrInvitationExpired):
		return "This invitation link has expired"
	case errors.Is(err, domain.ErrInvitationExhausted):
		return "This invitation link has reached its usage limit"
	case errors.Is(err, domain.ErrAlreadyMember):
		return "User is already a member of this group"
	case errors.Is(err, domain.ErrNotMember):
		return "User is not a member of this group"
	case errors.Is(err, domain.ErrEmptyMessage):
		return "Message content is empty"
	case errors.Is(err, domain.ErrMessageTooLong):
		return "Message content is too long"
	case errors.Is(err, domain.ErrInvalidReference):
		return "Referenced record does not exist"
	case errors.Is(err, domain.ErrInvalidInput):
		return "Invalid input"
	case errors.Is(err, domain.ErrNotFound):
		return "Not found"
	case errors.Is(err, domain.ErrAlreadyExists):
		return "Already exists"
	case errors.Is(err, ErrUnauthorized):
		return "Unauthorized"
	case errors.Is(err, ErrForbidden):
		return "Forbidden"
	case errors.Is(err, ErrRateLimited):
		return "Too many requests, please try again later"
	}
	return "Internal server error"
}
