package model

import "time"

// Food is a menu item as stored by the backend.
type Food struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Image       string    `json:"image"`
	ImageMime   string    `json:"image_mime,omitempty"`
	CreatedBy   *int64    `json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Reply is the envelope every backend endpoint answers with.
type Reply struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// LoginReply is returned by the login endpoint.
type LoginReply struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Token   string `json:"token,omitempty"`
	Admin   bool   `json:"admin"`
}
