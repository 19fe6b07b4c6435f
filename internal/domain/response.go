package domain

import "encoding/json"

// Envelope is the backend's uniform response wrapper:
// { "success": bool, "data": ..., "message": "..." }.
// Data stays raw so callers decode it into the type they expect.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

// LoginData is the payload inside a successful login envelope.
type LoginData struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	User         *User  `json:"user"`
}

// Pagination describes the position of a page within a listing.
type Pagination struct {
	Total       int `json:"total"`
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	Limit       int `json:"limit"`
}

// Page pairs one page of records with its pagination info.
type Page[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}
