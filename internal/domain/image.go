package domain

import "time"

type GeneratedImage struct {
	ID          string    `json:"id"`
	BusinessID  string    `json:"businessId"`
	Prompt      string    `json:"prompt"`
	Style       string    `json:"style"`
	ImageURL    string    `json:"imageUrl"`
	StoragePath *string   `json:"storagePath"`
	CreatedAt   time.Time `json:"createdAt"`
}
