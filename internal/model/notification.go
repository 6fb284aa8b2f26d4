package model

import "time"

type Notification struct {
	ID        uint       `json:"id"`
	Type      string     `json:"type,omitempty"`
	Title     string     `json:"title"`
	Message   string     `json:"message,omitempty"`
	Link      string     `json:"link,omitempty"`
	IsRead    bool       `json:"is_read"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
