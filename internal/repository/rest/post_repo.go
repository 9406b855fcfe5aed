package restrepo

import (
	"context"

	"petclinic-client/internal/domain"
)

type postRepository struct {
	client *Client
}

func NewPostRepository(client *Client) domain.PostRepository {
	return &postRepository{client: client}
}

func (r *postRepository) List(ctx context.Context, page, limit int) ([]domain.Post, domain.Pagination, error) {
	var posts []domain.Post
	meta, err := r.client.getPage(ctx, "/api/posts", pageQuery(page, limit), &posts)
	if err != nil {
		return nil, domain.Pagination{}, err
	}
	return posts, meta, nil
}

func (r *postRepository) Create(ctx context.Context, req domain.CreatePostRequest) (*domain.Post, error) {
	var post domain.Post
	if err := r.client.post(ctx, "/api/posts", req, &post); err != nil {
		return nil, err
	}
	return &post, nil
}
