package product

import (
	"context"

	dom "example.com/trendy-store/internal/domain/product"
)

type Service struct {
	repo dom.Repository
}

func NewService(repo dom.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(ctx context.Context, id int64) (*dom.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter dom.ListFilter) ([]*dom.Product, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) Create(ctx context.Context, p *dom.Product) (*dom.Product, error) {
	return s.repo.Create(ctx, p)
}

func (s *Service) Update(ctx context.Context, p *dom.Product) (*dom.Product, error) {
	existing, err := s.repo.GetByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	if p.Name != "" {
		existing.Name = p.Name
	}
	if p.Brand != "" {
		existing.Brand = p.Brand
	}
	if p.Category != "" {
		existing.Category = p.Category
	}
	if p.Description != "" {
		existing.Description = p.Description
	}
	if p.Price > 0 {
		existing.Price = p.Price
	}
	if p.OriginalPrice > 0 {
		existing.OriginalPrice = p.OriginalPrice
	}
	if len(p.Images) > 0 {
		existing.Images = p.Images
	}
	if len(p.Sizes) > 0 {
		existing.Sizes = p.Sizes
	}
	if len(p.Colors) > 0 {
		existing.Colors = p.Colors
	}
	existing.InStock = p.InStock
	existing.IsFeatured = p.IsFeatured

	return s.repo.Update(ctx, existing)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
