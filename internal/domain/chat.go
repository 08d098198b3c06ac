package domain

import (
	"time"
)

type ChatGroup struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	BusinessID  *string   `json:"businessId"`
	CreatedBy   *string   `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ChatGroupSummary: группа глазами конкретного участника.
type ChatGroupSummary struct {
	ChatGroup
	MemberCount int  `json:"memberCount"`
	IsAdmin     bool `json:"isAdmin"`
}

type GroupPatch struct {
	Name        *string
	Description *string
}

type GroupMember struct {
	ID       string    `json:"id"`
	GroupID  string    `json:"groupId"`
	UserID   string    `json:"userId"`
	JoinedAt time.Time `json:"joinedAt"`
	IsAdmin  bool      `json:"isAdmin"`
}

type GroupInvitation struct {
	ID             string     `json:"id"`
	GroupID        string     `json:"groupId"`
	CreatedBy      string     `json:"createdBy"`
	InvitationCode string     `json:"invitationCode"`
	ExpiresAt      *time.Time `json:"expiresAt"`
	MaxUses        *int       `json:"maxUses"`
	CurrentUses    int        `json:"currentUses"`
	IsActive       bool       `json:"isActive"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// Usable проверяет приглашение в том же порядке, в каком об этом узнаёт пользователь.
func (i *GroupInvitation) Usable(now time.Time) error {
	if !i.IsActive {
		return ErrInvitationInactive
	}
	if i.ExpiresAt != nil && !now.Before(*i.ExpiresAt) {
		return ErrInvitationExpired
	}
	if i.MaxUses != nil && i.CurrentUses >= *i.MaxUses {
		return ErrInvitationExhausted
	}
	return nil
}

type InvitationPatch struct {
	IsActive  *bool
	MaxUses   *int
	ExpiresAt *time.Time
}

type JoinStatus string

const (
	JoinStatusJoined        JoinStatus = "joined"
	JoinStatusAlreadyMember JoinStatus = "already_member"
)

type JoinResult struct {
	Status  JoinStatus   `json:"status"`
	GroupID string       `json:"groupId"`
	Member  *GroupMember `json:"member,omitempty"`
}

const MessageTypeText = "text"

type MessageAuthor struct {
	FullName  *string `json:"fullName"`
	AvatarURL *string `json:"avatarUrl"`
}

type ChatMessage struct {
	ID          string         `json:"id"`
	GroupID     string         `json:"groupId"`
	UserID      string         `json:"userId"`
	Content     string         `json:"content"`
	MessageType string         `json:"messageType"`
	FileURL     *string        `json:"fileUrl"`
	FileName    *string        `json:"fileName"`
	ReplyTo     *string        `json:"replyTo"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	Profile     *MessageAuthor `json:"profile,omitempty"`
}

type TypingIndicator struct {
	ID         string    `json:"id"`
	GroupID    string    `json:"groupId"`
	UserID     string    `json:"userId"`
	LastTyping time.Time `json:"lastTyping"`
}
