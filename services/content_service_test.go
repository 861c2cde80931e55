package services

import (
	"context"
	"errors"
	"testing"

	"gorilla-shop/models"
)

type fakePostStore struct {
	nextID        int64
	nextCommentID int64
	posts         map[int64]*models.Post
	comments      map[int64][]models.Comment
}

func newFakePostStore() *fakePostStore {
	return &fakePostStore{
		nextID:        1,
		nextCommentID: 1,
		posts:         map[int64]*models.Post{},
		comments:      map[int64][]models.Comment{},
	}
}

func (f *fakePostStore) ListPublished(_ context.Context, page, limit int) ([]models.Post, int, error) {
	out := []models.Post{}
	for _, post := range f.posts {
		if post.Published {
			out = append(out, *post)
		}
	}
	return out, len(out), nil
}

func (f *fakePostStore) ListAll(_ context.Context, page, limit int) ([]models.Post, int, error) {
	out := []models.Post{}
	for _, post := range f.posts {
		out = append(out, *post)
	}
	return out, len(out), nil
}

func (f *fakePostStore) GetByID(_ context.Context, id int64) (*models.Post, error) {
	post, ok := f.posts[id]
	if !ok {
		return nil, nil
	}
	copied := *post
	return &copied, nil
}

func (f *fakePostStore) Create(_ context.Context, post *models.Post) error {
	post.ID = f.nextID
	f.nextID++
	copied := *post
	f.posts[post.ID] = &copied
	return nil
}

func (f *fakePostStore) Update(_ context.Context, post *models.Post) error {
	if _, ok := f.posts[post.ID]; !ok {
		return errors.New("post not found")
	}
	copied := *post
	f.posts[post.ID] = &copied
	return nil
}

func (f *fakePostStore) Delete(_ context.Context, id int64) error {
	delete(f.posts, id)
	return nil
}

func (f *fakePostStore) IncrementViews(_ context.Context, id int64) error {
	post, ok := f.posts[id]
	if !ok {
		return errors.New("post not found")
	}
	post.CountedViews++
	return nil
}

func (f *fakePostStore) ListApprovedComments(_ context.Context, postID int64) ([]models.Comment, error) {
	out := []models.Comment{}
	for _, c := range f.comments[postID] {
		if c.Approved {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakePostStore) CreateComment(_ context.Context, comment *models.Comment) error {
	comment.ID = f.nextCommentID
	f.nextCommentID++
	f.comments[comment.PostID] = append(f.comments[comment.PostID], *comment)
	return nil
}

func (f *fakePostStore) ApproveComment(_ context.Context, commentID int64) error {
	for postID := range f.comments {
		for i := range f.comments[postID] {
			if f.comments[postID][i].ID == commentID {
				f.comments[postID][i].Approved = true
				return nil
			}
		}
	}
	return ErrCommentNotFound
}

func createPost(t *testing.T, svc *ContentService, published, loginRequire bool) *models.Post {
	t.Helper()
	post, err := svc.Create(context.Background(), 1, models.CreatePostRequest{
		Title:        "Brewing notes",
		Content:      "Grind finer.",
		Published:    published,
		LoginRequire: loginRequire,
	})
	if err != nil {
		t.Fatalf("Create post: %v", err)
	}
	return post
}

func TestReadCountsViews(t *testing.T) {
	store := newFakePostStore()
	svc := NewContentService(store)
	post := createPost(t, svc, true, false)

	got, _, err := svc.Read(context.Background(), post.ID, false, false)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.CountedViews != 1 {
		t.Errorf("Expected 1 counted view, got %d", got.CountedViews)
	}

	got, _, _ = svc.Read(context.Background(), post.ID, false, false)
	if got.CountedViews != 2 {
		t.Errorf("Expected 2 counted views, got %d", got.CountedViews)
	}
}

func TestReadHidesDraftsFromNonAdmins(t *testing.T) {
	store := newFakePostStore()
	svc := NewContentService(store)
	post := createPost(t, svc, false, false)
	ctx := context.Background()

	if _, _, err := svc.Read(ctx, post.ID, true, false); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("Draft should look missing to non-admins, got %v", err)
	}
	if _, _, err := svc.Read(ctx, post.ID, true, true); err != nil {
		t.Errorf("Admin should see the draft, got %v", err)
	}
}

func TestReadLoginRequired(t *testing.T) {
	store := newFakePostStore()
	svc := NewContentService(store)
	post := createPost(t, svc, true, true)
	ctx := context.Background()

	if _, _, err := svc.Read(ctx, post.ID, false, false); !errors.Is(err, ErrLoginRequired) {
		t.Errorf("Expected ErrLoginRequired, got %v", err)
	}
	if _, _, err := svc.Read(ctx, post.ID, true, false); err != nil {
		t.Errorf("Logged-in reader should see the post, got %v", err)
	}
}

func TestPublishSetsPublishedAtOnce(t *testing.T) {
	store := newFakePostStore()
	svc := NewContentService(store)
	post := createPost(t, svc, false, false)
	ctx := context.Background()

	if post.PublishedAt != nil {
		t.Error("Draft should have no publication time")
	}

	published := true
	updated, err := svc.Update(ctx, post.ID, models.UpdatePostRequest{Published: &published})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.PublishedAt == nil {
		t.Fatal("Publishing should set the publication time")
	}
	first := *updated.PublishedAt

	updated, err = svc.Update(ctx, post.ID, models.UpdatePostRequest{Published: &published})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !updated.PublishedAt.Equal(first) {
		t.Error("Re-publishing should not move the publication time")
	}
}

func TestCommentsAwaitModeration(t *testing.T) {
	store := newFakePostStore()
	svc := NewContentService(store)
	post := createPost(t, svc, true, false)
	ctx := context.Background()

	comment, err := svc.AddComment(ctx, post.ID, models.CreateCommentRequest{
		Name:    "Visitor",
		Email:   "v@example.com",
		Comment: "Nice post",
	})
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	if comment.Approved {
		t.Error("New comments should not be approved")
	}

	_, comments, err := svc.Read(ctx, post.ID, false, false)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(comments) != 0 {
		t.Errorf("Unapproved comments should be hidden, got %+v", comments)
	}

	if err := svc.ApproveComment(ctx, comment.ID); err != nil {
		t.Fatalf("ApproveComment: %v", err)
	}
	_, comments, _ = svc.Read(ctx, post.ID, false, false)
	if len(comments) != 1 {
		t.Errorf("Approved comment should be visible, got %+v", comments)
	}
}

func TestApproveUnknownComment(t *testing.T) {
	svc := NewContentService(newFakePostStore())

	if err := svc.ApproveComment(context.Background(), 99); !errors.Is(err, ErrCommentNotFound) {
		t.Errorf("Expected ErrCommentNotFound, got %v", err)
	}
}

func TestCommentOnDraftRefused(t *testing.T) {
	store := newFakePostStore()
	svc := NewContentService(store)
	post := createPost(t, svc, false, false)

	_, err := svc.AddComment(context.Background(), post.ID, models.CreateCommentRequest{Comment: "hi"})
	if !errors.Is(err, ErrPostNotFound) {
		t.Errorf("Expected ErrPostNotFound, got %v", err)
	}
}
