package http

import (
	"time"

	"github.com/cwrk-planet/bizos/internal/domain"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type CreateProfileRequest struct {
	ID        string  `json:"id" validate:"required,uuid"`
	Email     *string `json:"email" validate:"omitempty,email"`
	FullName  *string `json:"fullName" validate:"omitempty,max=200"`
	AvatarURL *string `json:"avatarUrl" validate:"omitempty,url"`
	Role      string  `json:"role" validate:"omitempty,oneof=business_owner business_manager"`
}

type UpdateProfileRequest struct {
	Email     *string `json:"email" validate:"omitempty,email"`
	FullName  *string `json:"fullName" validate:"omitempty,max=200"`
	AvatarURL *string `json:"avatarUrl" validate:"omitempty,url"`
	Role      *string `json:"role" validate:"omitempty,oneof=business_owner business_manager"`
}

type CreateBusinessRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	OwnerID string `json:"ownerId" validate:"required,uuid"`
}

type UpdateBusinessRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=200"`
}

type CreateGroupRequest struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	BusinessID  string  `json:"businessId" validate:"required,uuid"`
	CreatedBy   string  `json:"createdBy" validate:"omitempty,uuid"`
}

type UpdateGroupRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

type AddMemberRequest struct {
	GroupID string `json:"groupId" validate:"required,uuid"`
	UserID  string `json:"userId" validate:"required,uuid"`
	IsAdmin bool   `json:"isAdmin"`
}

type UpdateMemberRequest struct {
	IsAdmin *bool `json:"isAdmin" validate:"required"`
}

type CreateInvitationRequest struct {
	GroupID       string     `json:"groupId" validate:"required,uuid"`
	CreatedBy     string     `json:"createdBy" validate:"omitempty,uuid"`
	ExpiresAt     *time.Time `json:"expiresAt"`
	ExpiresInDays *int       `json:"expiresInDays" validate:"omitempty,min=1,max=365"`
	MaxUses       *int       `json:"maxUses" validate:"omitempty,min=1"`
}

type UpdateInvitationRequest struct {
	IsActive  *bool      `json:"isActive"`
	MaxUses   *int       `json:"maxUses" validate:"omitempty,min=1"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

type AcceptInvitationRequest struct {
	UserID string `json:"userId" validate:"omitempty,uuid"`
}

type SendMessageRequest struct {
	GroupID     string  `json:"groupId" validate:"required,uuid"`
	UserID      string  `json:"userId" validate:"omitempty,uuid"`
	Content     string  `json:"content" validate:"required"`
	MessageType string  `json:"messageType" validate:"omitempty,max=32"`
	FileURL     *string `json:"fileUrl" validate:"omitempty,url"`
	FileName    *string `json:"fileName" validate:"omitempty,max=255"`
	ReplyTo     *string `json:"replyTo" validate:"omitempty,uuid"`
}

type EditMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

type TypingRequest struct {
	GroupID string `json:"groupId" validate:"required,uuid"`
	UserID  string `json:"userId" validate:"omitempty,uuid"`
}

// GenerateImageRequest: поля в snake_case, как у исходного эндпоинта.
type GenerateImageRequest struct {
	Prompt     string `json:"prompt"`
	Style      string `json:"style"`
	BusinessID string `json:"business_id"`
}

type CreateTransactionRequest struct {
	BusinessID  string       `json:"businessId" validate:"required,uuid"`
	Date        *domain.Date `json:"date" validate:"required"`
	Description string       `json:"description" validate:"required,max=500"`
	Amount      *float64     `json:"amount" validate:"required,gte=0"`
	Type        string       `json:"type" validate:"required,oneof=income expense"`
	Category    string       `json:"category" validate:"required,max=100"`
}

type UpdateTransactionRequest struct {
	Date        *domain.Date `json:"date"`
	Description *string      `json:"description" validate:"omitempty,max=500"`
	Amount      *float64     `json:"amount" validate:"omitempty,gte=0"`
	Type        *string      `json:"type" validate:"omitempty,oneof=income expense"`
	Category    *string      `json:"category" validate:"omitempty,max=100"`
}

type CreateDocumentRequest struct {
	BusinessID string   `json:"businessId" validate:"required,uuid"`
	Title      string   `json:"title" validate:"required,max=300"`
	Content    string   `json:"content"`
	Tags       []string `json:"tags" validate:"omitempty,dive,max=50"`
}

type UpdateDocumentRequest struct {
	Title   *string  `json:"title" validate:"omitempty,min=1,max=300"`
	Content *string  `json:"content"`
	Tags    []string `json:"tags" validate:"omitempty,dive,max=50"`
}

type CreateContactRequest struct {
	BusinessID string   `json:"businessId" validate:"required,uuid"`
	Name       string   `json:"name" validate:"required,max=200"`
	Email      *string  `json:"email" validate:"omitempty,email"`
	Phone      *string  `json:"phone" validate:"omitempty,max=50"`
	Company    *string  `json:"company" validate:"omitempty,max=200"`
	Status     string   `json:"status" validate:"required,oneof=lead customer prospect"`
	Value      *float64 `json:"value" validate:"omitempty,gte=0"`
}

type UpdateContactRequest struct {
	Name    *string  `json:"name" validate:"omitempty,min=1,max=200"`
	Email   *string  `json:"email" validate:"omitempty,email"`
	Phone   *string  `json:"phone" validate:"omitempty,max=50"`
	Company *string  `json:"company" validate:"omitempty,max=200"`
	Status  *string  `json:"status" validate:"omitempty,oneof=lead customer prospect"`
	Value   *float64 `json:"value" validate:"omitempty,gte=0"`
}
