package domain

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrAlreadyExists    = errors.New("already exists")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidReference = errors.New("referenced record does not exist")

	ErrAlreadyMember = errors.New("user is already a member of this group")
	ErrNotMember     = errors.New("user is not a member of this group")

	ErrInvitationInactive  = errors.New("this invitation link has been deactivated")
	ErrInvitationExpired   = errors.New("this invitation link has expired")
	ErrInvitationExhausted = errors.New("this invitation link has reached its usage limit")

	ErrEmptyMessage   = errors.New("message content is empty")
	ErrMessageTooLong = errors.New("message content is too long")
)
