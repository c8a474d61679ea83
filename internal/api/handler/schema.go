package handler

import (
	"time"

	"github.com/secondbrain/bookmarks/internal/core/domain"
)

// --- Requests ---

type SignupRequest struct {
	Name     string `json:"name"     validate:"required,min=3,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=3,max=10"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=3,max=10"`
}

type ContentRequest struct {
	Title string `json:"title" validate:"required,min=3,max=1000"`
	Link  string `json:"link"  validate:"required,url"`
	Type  string `json:"type"  validate:"required,oneof=youtube twitter document other"`
}

// --- Responses ---

// messageResponse is the envelope of every error and of the duplicate-email signup.
type messageResponse struct {
	Message string `json:"message"`
}

type validationResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

type userDetail struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type authResponse struct {
	Message    string     `json:"message"`
	Token      string     `json:"token"`
	UserDetail userDetail `json:"userdetail"`
}

type contentResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Link      string    `json:"link"`
	Type      string    `json:"type"`
	OwnerID   string    `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type createContentResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	NewPost contentResponse `json:"newPost"`
}

type editContentResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Content contentResponse `json:"content"`
}

type deleteContentResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

type listContentResponse struct {
	Contents []contentResponse `json:"contents"`
}

func toContentResponse(c *domain.Content) contentResponse {
	return contentResponse{
		ID:        c.ID.Hex(),
		Title:     c.Title,
		Link:      c.Link,
		Type:      string(c.Type),
		OwnerID:   c.OwnerID.Hex(),
		CreatedAt: c.CreatedAt.UTC(),
		UpdatedAt: c.UpdatedAt.UTC(),
	}
}

func toListResponse(items []*domain.Content) listContentResponse {
	out := make([]contentResponse, len(items))
	for i, c := range items {
		out[i] = toContentResponse(c)
	}
	return listContentResponse{Contents: out}
}
