package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/bajrang214/looptalk-server/app/models"
	"github.com/bajrang214/looptalk-server/app/repositories"
)

// PostService implements the feed use cases: create, list, like, comment,
// edit and delete, with ownership checks. It needs the user repository only
// to resolve display names on reads.
type PostService struct {
	postRepo repositories.PostRepository
	userRepo repositories.UserRepository
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository, userRepo repositories.UserRepository) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
	}
}

// CreatePost creates a post owned by authorID. imagePath may be empty.
func (s *PostService) CreatePost(authorID, content, imagePath string) (*models.Post, error) {
	post := &models.Post{
		AuthorID: authorID,
		Content:  content,
		Image:    imagePath,
	}
	if err := s.postRepo.Create(post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.resolveNames([]*models.Post{post})
	return post, nil
}

// ListPosts retrieves all posts, newest first, with author and
// comment-author names resolved.
func (s *PostService) ListPosts() ([]*models.Post, error) {
	posts, err := s.postRepo.List()
	if err != nil {
		return nil, err
	}
	s.resolveNames(posts)
	return posts, nil
}

// ListPostsByAuthor retrieves one author's posts, newest first, enriched
// the same way as ListPosts.
func (s *PostService) ListPostsByAuthor(authorID string) ([]*models.Post, error) {
	posts, err := s.postRepo.ListByAuthor(authorID)
	if err != nil {
		return nil, err
	}
	s.resolveNames(posts)
	return posts, nil
}

// ToggleLike flips callerID's like on the post. Calling it twice restores
// the original state.
func (s *PostService) ToggleLike(postID, callerID string) (*models.Post, error) {
	return s.postRepo.Mutate(postID, func(p *models.Post) error {
		p.ToggleLike(callerID)
		return nil
	})
}

// AddComment appends a comment by callerID. The raw text is stored, but it
// must be non-empty after trimming.
func (s *PostService) AddComment(postID, callerID, text string) (*models.Post, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyComment
	}

	return s.postRepo.Mutate(postID, func(p *models.Post) error {
		p.AddComment(models.Comment{
			AuthorID:  callerID,
			Text:      text,
			CreatedAt: time.Now(),
		})
		return nil
	})
}

// DeleteComment removes the comment at index. Only the comment's author may
// delete it; later comments shift down by one. The index is checked against
// the current comment list inside the same transaction as the removal.
func (s *PostService) DeleteComment(postID, callerID string, index int) error {
	_, err := s.postRepo.Mutate(postID, func(p *models.Post) error {
		if index < 0 || index >= len(p.Comments) {
			return repositories.ErrNotFound
		}
		if p.Comments[index].AuthorID != callerID {
			return ErrForbidden
		}
		return p.RemoveCommentAt(index)
	})
	return err
}

// EditPost replaces the post's content. Only the post's author may edit it.
func (s *PostService) EditPost(postID, callerID, content string) error {
	_, err := s.postRepo.Mutate(postID, func(p *models.Post) error {
		if p.AuthorID != callerID {
			return ErrForbidden
		}
		p.Content = content
		return nil
	})
	return err
}

// DeletePost deletes the post and its embedded comments. Only the post's
// author may delete it.
func (s *PostService) DeletePost(postID, callerID string) error {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return err
	}
	if post.AuthorID != callerID {
		return ErrForbidden
	}
	return s.postRepo.Delete(postID)
}

// resolveNames fills in AuthorName on posts and their comments. A missing
// user (deleted account) leaves the name empty rather than failing the read.
func (s *PostService) resolveNames(posts []*models.Post) {
	names := make(map[string]string)

	lookup := func(id string) string {
		if name, ok := names[id]; ok {
			return name
		}
		name := ""
		if user, err := s.userRepo.GetByID(id); err == nil {
			name = user.Username
		}
		names[id] = name
		return name
	}

	for _, post := range posts {
		post.AuthorName = lookup(post.AuthorID)
		for i := range post.Comments {
			post.Comments[i].AuthorName = lookup(post.Comments[i].AuthorID)
		}
	}
}
