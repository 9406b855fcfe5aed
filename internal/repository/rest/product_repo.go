package restrepo

import (
	"context"

	"petclinic-client/internal/domain"
)

type productRepository struct {
	client *Client
}

func NewProductRepository(client *Client) domain.ProductRepository {
	return &productRepository{client: client}
}

func (r *productRepository) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, domain.Pagination, error) {
	q := pageQuery(filter.Page, filter.Limit)
	if filter.Category != "" {
		q.Set("category", filter.Category)
	}
	if filter.Search != "" {
		q.Set("search", filter.Search)
	}

	var products []domain.Product
	meta, err := r.client.getPage(ctx, "/api/products", q, &products)
	if err != nil {
		return nil, domain.Pagination{}, err
	}
	return products, meta, nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	var product domain.Product
	if err := r.client.get(ctx, "/api/products/"+escape(id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}
