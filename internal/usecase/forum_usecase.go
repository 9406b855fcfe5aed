package usecase

import (
	"context"
	"strings"

	"petclinic-client/internal/domain"
	"petclinic-client/pkg/utils"
)

type ForumUsecase struct {
	repo domain.PostRepository
}

func NewForumUsecase(repo domain.PostRepository) *ForumUsecase {
	return &ForumUsecase{repo: repo}
}

// Feed returns one page of posts, newest first as the API orders them.
func (u *ForumUsecase) Feed(ctx context.Context, page, limit int) ([]domain.Post, domain.Pagination, error) {
	page, limit = domain.NormalizePage(page, limit)
	return u.repo.List(ctx, page, limit)
}

func (u *ForumUsecase) Publish(ctx context.Context, req domain.CreatePostRequest) (*domain.Post, error) {
	req.Content = strings.TrimSpace(req.Content)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	return u.repo.Create(ctx, req)
}
