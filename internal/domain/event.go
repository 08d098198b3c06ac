package domain

// События групп, которые уходят подписчикам realtime.
const (
	EventMessage        = "message"
	EventMessageUpdated = "message_updated"
	EventTyping         = "typing"
	EventTypingCleared  = "typing_cleared"
	EventMemberJoined   = "member_joined"
	EventMemberLeft     = "member_left"
)

type GroupEvent struct {
	Type    string `json:"type"`
	GroupID string `json:"groupId"`
	Payload any    `json:"payload"`
}

type MemberEventPayload struct {
	GroupID string `json:"groupId"`
	UserID  string `json:"userId"`
}
