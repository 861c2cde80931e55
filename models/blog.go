package models

import "time"

type Post struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	AuthorID     int64      `json:"author_id"`
	AuthorName   string     `json:"author_name,omitempty"`
	Content      string     `json:"content"`
	ImageURL     string     `json:"image_url,omitempty"`
	Published    bool       `json:"published"`
	LoginRequire bool       `json:"login_require"`
	CountedViews int        `json:"counted_views"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type Comment struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"post_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Website   string    `json:"website,omitempty"`
	Comment   string    `json:"comment"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"created_at"`
}
