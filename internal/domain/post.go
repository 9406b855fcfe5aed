package domain

import (
	"context"
	"time"
)

// Post is one entry of the community forum feed.
type Post struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName,omitempty"`
	Content    string    `json:"content"`
	Images     []string  `json:"images,omitempty"`
	Likes      int       `json:"likes"`
	Comments   int       `json:"comments"`
	CreatedAt  time.Time `json:"createdAt"`
}

type CreatePostRequest struct {
	Content string   `json:"content" validate:"required,max=5000"`
	Images  []string `json:"images,omitempty" validate:"max=4,dive,url"`
}

type PostRepository interface {
	List(ctx context.Context, page, limit int) ([]Post, Pagination, error)
	Create(ctx context.Context, req CreatePostRequest) (*Post, error)
}
