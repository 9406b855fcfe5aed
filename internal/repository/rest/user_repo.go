package restrepo

import (
	"context"

	"petclinic-client/internal/domain"
)

type userRepository struct {
	client *Client
}

func NewUserRepository(client *Client) domain.UserRepository {
	return &userRepository{client: client}
}

func (r *userRepository) List(ctx context.Context, filter domain.UserFilter) ([]domain.User, domain.Pagination, error) {
	q := pageQuery(filter.Page, filter.Limit)
	if filter.Search != "" {
		q.Set("search", filter.Search)
	}
	if filter.Role != "" {
		q.Set("role", filter.Role)
	}

	var users []domain.User
	meta, err := r.client.getPage(ctx, "/api/users", q, &users)
	if err != nil {
		return nil, domain.Pagination{}, err
	}
	return users, meta, nil
}

func (r *userRepository) Create(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	var user domain.User
	if err := r.client.post(ctx, "/api/users", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Ban(ctx context.Context, id string) error {
	return r.client.put(ctx, "/api/users/"+escape(id)+"/ban", nil, nil)
}

func (r *userRepository) Unban(ctx context.Context, id string) error {
	return r.client.put(ctx, "/api/users/"+escape(id)+"/unban", nil, nil)
}
