package models

import "time"

// User is an account holder. PasswordHash never leaves the server.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Bio          string    `json:"bio"`
	ProfileImage string    `json:"profileImage,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Post is a feed entry with an optional image, a like set and embedded
// comments. AuthorName is filled in by the service when listing, it is not
// persisted.
type Post struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"userId"`
	AuthorName string    `json:"authorName,omitempty"`
	Content    string    `json:"content"`
	Image      string    `json:"image,omitempty"`
	Likes      []string  `json:"likes"`
	Comments   []Comment `json:"comments"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Comment is addressed by its position in the parent post's comment list;
// it carries no id of its own.
type Comment struct {
	AuthorID   string    `json:"userId"`
	AuthorName string    `json:"authorName,omitempty"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"createdAt"`
}
