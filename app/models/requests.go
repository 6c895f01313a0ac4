package models

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// RegisterRequest is the body of POST /api/register.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CommentRequest is the body of PUT /api/posts/{id}/comment. Whitespace-only
// text passes the schema and is rejected by the service.
type CommentRequest struct {
	Text string `json:"text" validate:"required"`
}

// DeleteCommentRequest is the body of PUT /api/posts/{id}/comment/delete.
// Index is a pointer so that position 0 survives the required check.
type DeleteCommentRequest struct {
	Index *int `json:"index" validate:"required,gte=0"`
}

// EditPostRequest is the body of PUT /api/posts/{id}/edit.
type EditPostRequest struct {
	Content string `json:"content" validate:"required"`
}

// Validate checks the request against its schema tags.
func (r *RegisterRequest) Validate() error { return validate.Struct(r) }

// Validate checks the request against its schema tags.
func (r *LoginRequest) Validate() error { return validate.Struct(r) }

// Validate checks the request against its schema tags.
func (r *CommentRequest) Validate() error { return validate.Struct(r) }

// Validate checks the request against its schema tags.
func (r *DeleteCommentRequest) Validate() error { return validate.Struct(r) }

// Validate checks the request against its schema tags.
func (r *EditPostRequest) Validate() error { return validate.Struct(r) }
