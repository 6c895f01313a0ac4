package models

import (
	"errors"
	"time"
)

// BeforeCreate sets up any necessary fields before creation
func (p *Post) BeforeCreate() {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	if p.Likes == nil {
		p.Likes = []string{}
	}
	if p.Comments == nil {
		p.Comments = []Comment{}
	}
}

// HasLike reports whether userID is in the like set.
func (p *Post) HasLike(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// ToggleLike flips userID's membership in the like set and reports whether
// the post is liked afterwards. The set never holds an id twice.
func (p *Post) ToggleLike(userID string) bool {
	for i, id := range p.Likes {
		if id == userID {
			p.Likes = append(p.Likes[:i], p.Likes[i+1:]...)
			return false
		}
	}
	p.Likes = append(p.Likes, userID)
	return true
}

// AddComment appends a comment to the post
func (p *Post) AddComment(comment Comment) {
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	p.Comments = append(p.Comments, comment)
}

// RemoveCommentAt removes the comment at index, shifting later comments
// down by one.
func (p *Post) RemoveCommentAt(index int) error {
	if index < 0 || index >= len(p.Comments) {
		return errors.New("comment index out of range")
	}
	p.Comments = append(p.Comments[:index], p.Comments[index+1:]...)
	return nil
}
