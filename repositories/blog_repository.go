package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gorilla-shop/models"
	"gorilla-shop/services"
)

const postColumns = `p.id, p.title, p.author_id, COALESCE(up.first_name || ' ' || up.last_name, ''),
	p.content, p.image_url, p.published, p.login_require, p.counted_views, p.published_at,
	p.created_at, p.updated_at`

const postJoin = `FROM posts p LEFT JOIN user_profiles up ON up.user_id = p.author_id`

type BlogRepository struct {
	db *pgxpool.Pool
}

func NewBlogRepository(db *pgxpool.Pool) *BlogRepository {
	return &BlogRepository{db: db}
}

func scanPost(row pgx.Row) (*models.Post, error) {
	var p models.Post
	err := row.Scan(
		&p.ID, &p.Title, &p.AuthorID, &p.AuthorName, &p.Content, &p.ImageURL,
		&p.Published, &p.LoginRequire, &p.CountedViews, &p.PublishedAt,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *BlogRepository) listWhere(ctx context.Context, where string, page, limit int) ([]models.Post, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM posts p `+where).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + postColumns + ` ` + postJoin + ` ` + where +
		` ORDER BY p.created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, 0, err
		}
		posts = append(posts, *post)
	}
	return posts, total, rows.Err()
}

func (r *BlogRepository) ListPublished(ctx context.Context, page, limit int) ([]models.Post, int, error) {
	return r.listWhere(ctx, `WHERE p.published = true`, page, limit)
}

func (r *BlogRepository) ListAll(ctx context.Context, page, limit int) ([]models.Post, int, error) {
	return r.listWhere(ctx, ``, page, limit)
}

func (r *BlogRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` ` + postJoin + ` WHERE p.id = $1`
	post, err := scanPost(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return post, err
}

func (r *BlogRepository) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (title, author_id, content, image_url, published, login_require, counted_views, published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, 0, $7, $8, $8)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query,
		post.Title, post.AuthorID, post.Content, post.ImageURL,
		post.Published, post.LoginRequire, post.PublishedAt, time.Now(),
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
}

func (r *BlogRepository) Update(ctx context.Context, post *models.Post) error {
	query := `UPDATE posts SET title = $1, content = $2, image_url = $3, published = $4,
	          login_require = $5, published_at = $6, updated_at = $7 WHERE id = $8`
	_, err := r.db.Exec(ctx, query,
		post.Title, post.Content, post.ImageURL, post.Published,
		post.LoginRequire, post.PublishedAt, time.Now(), post.ID,
	)
	return err
}

func (r *BlogRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	return err
}

func (r *BlogRepository) IncrementViews(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `UPDATE posts SET counted_views = counted_views + 1 WHERE id = $1`, id)
	return err
}

func (r *BlogRepository) ListApprovedComments(ctx context.Context, postID int64) ([]models.Comment, error) {
	query := `SELECT id, post_id, name, email, website, comment, approved, created_at
	          FROM comments WHERE post_id = $1 AND approved = true ORDER BY created_at`
	rows, err := r.db.Query(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		err := rows.Scan(&c.ID, &c.PostID, &c.Name, &c.Email, &c.Website, &c.Comment, &c.Approved, &c.CreatedAt)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *BlogRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (post_id, name, email, website, comment, approved, created_at)
		VALUES ($1, $2, $3, $4, $5, false, $6)
		RETURNING id, created_at
	`
	return r.db.QueryRow(ctx, query,
		comment.PostID, comment.Name, comment.Email, comment.Website, comment.Comment, time.Now(),
	).Scan(&comment.ID, &comment.CreatedAt)
}

func (r *BlogRepository) ApproveComment(ctx context.Context, commentID int64) error {
	result, err := r.db.Exec(ctx, `UPDATE comments SET approved = true WHERE id = $1`, commentID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return services.ErrCommentNotFound
	}
	return nil
}
