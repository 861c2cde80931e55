package services

import (
	"context"
	"errors"
	"log"
	"time"

	"gorilla-shop/models"
)

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrLoginRequired   = errors.New("login required to read this post")
	ErrCommentNotFound = errors.New("comment not found")
)

type PostStore interface {
	ListPublished(ctx context.Context, page, limit int) ([]models.Post, int, error)
	ListAll(ctx context.Context, page, limit int) ([]models.Post, int, error)
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id int64) error
	IncrementViews(ctx context.Context, id int64) error
	ListApprovedComments(ctx context.Context, postID int64) ([]models.Comment, error)
	CreateComment(ctx context.Context, comment *models.Comment) error
	ApproveComment(ctx context.Context, commentID int64) error
}

// ContentService serves the blog. Unpublished posts are only visible to
// admins, and posts flagged login_require refuse anonymous readers.
type ContentService struct {
	posts PostStore
}

func NewContentService(posts PostStore) *ContentService {
	return &ContentService{posts: posts}
}

func (s *ContentService) ListPublished(ctx context.Context, page, limit int) ([]models.Post, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}
	return s.posts.ListPublished(ctx, page, limit)
}

func (s *ContentService) ListAll(ctx context.Context, page, limit int) ([]models.Post, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}
	return s.posts.ListAll(ctx, page, limit)
}

// Read fetches a post for display, counting the view. authenticated reports
// whether the reader is logged in, isAdmin whether they may see drafts.
func (s *ContentService) Read(ctx context.Context, id int64, authenticated, isAdmin bool) (*models.Post, []models.Comment, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if post == nil {
		return nil, nil, ErrPostNotFound
	}
	if !post.Published && !isAdmin {
		return nil, nil, ErrPostNotFound
	}
	if post.LoginRequire && !authenticated {
		return nil, nil, ErrLoginRequired
	}

	if err := s.posts.IncrementViews(ctx, post.ID); err != nil {
		log.Printf("Failed to count view for post %d: %v", post.ID, err)
	} else {
		post.CountedViews++
	}

	comments, err := s.posts.ListApprovedComments(ctx, post.ID)
	if err != nil {
		return nil, nil, err
	}
	return post, comments, nil
}

func (s *ContentService) Create(ctx context.Context, authorID int64, req models.CreatePostRequest) (*models.Post, error) {
	post := &models.Post{
		Title:        req.Title,
		AuthorID:     authorID,
		Content:      req.Content,
		Published:    req.Published,
		LoginRequire: req.LoginRequire,
	}
	if post.Published {
		now := time.Now()
		post.PublishedAt = &now
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *ContentService) Update(ctx context.Context, id int64, req models.UpdatePostRequest) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	if req.Title != "" {
		post.Title = req.Title
	}
	if req.Content != "" {
		post.Content = req.Content
	}
	if req.LoginRequire != nil {
		post.LoginRequire = *req.LoginRequire
	}
	if req.Published != nil {
		if *req.Published && !post.Published {
			now := time.Now()
			post.PublishedAt = &now
		}
		post.Published = *req.Published
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *ContentService) Delete(ctx context.Context, id int64) error {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	return s.posts.Delete(ctx, id)
}

// AddComment stores a visitor comment awaiting moderation.
func (s *ContentService) AddComment(ctx context.Context, postID int64, req models.CreateCommentRequest) (*models.Comment, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil || !post.Published {
		return nil, ErrPostNotFound
	}

	comment := &models.Comment{
		PostID:  postID,
		Name:    req.Name,
		Email:   req.Email,
		Website: req.Website,
		Comment: req.Comment,
	}
	if err := s.posts.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ApproveComment releases a moderated comment for display.
func (s *ContentService) ApproveComment(ctx context.Context, commentID int64) error {
	return s.posts.ApproveComment(ctx, commentID)
}
