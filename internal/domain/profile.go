package domain

import "time"

type Role string

const (
	RoleBusinessOwner   Role = "business_owner"
	RoleBusinessManager Role = "business_manager"
)

func (r Role) Valid() bool {
	return r == RoleBusinessOwner || r == RoleBusinessManager
}

// Profile: id совпадает с id пользователя у auth-провайдера.
type Profile struct {
	ID        string    `json:"id"`
	Email     *string   `json:"email"`
	FullName  *string   `json:"fullName"`
	AvatarURL *string   `json:"avatarUrl"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ProfilePatch struct {
	Email     *string
	FullName  *string
	AvatarURL *string
	Role      *Role
}

type BusinessAccount struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
