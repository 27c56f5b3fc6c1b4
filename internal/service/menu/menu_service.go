package menu

import (
	"context"

	"github.com/zvrva/littlelemon/internal/domain"
	"github.com/zvrva/littlelemon/internal/repository"
)

type MenuUseCase interface {
	List(ctx context.Context) ([]domain.MenuItem, error)
	GetByID(ctx context.Context, id int64) (*domain.MenuItem, error)
	Create(ctx context.Context, input ItemInput) (*domain.MenuItem, error)
	Update(ctx context.Context, id int64, input ItemInput) (*domain.MenuItem, error)
	Delete(ctx context.Context, id int64) error
}

type Cache interface {
	GetMenu(ctx context.Context) ([]domain.MenuItem, error)
	SetMenu(ctx context.Context, items []domain.MenuItem) error
	InvalidateMenu(ctx context.Context) error
}

// ItemInput carries pointer fields so that a partial update can tell "field
// absent" apart from a zero value.
type ItemInput struct {
	Title     *string
	Price     *string
	Inventory *int
}

type MenuService struct {
	repo  repository.MenuRepository
	cache Cache
}

func NewMenuService(repo repository.MenuRepository, cache Cache) *MenuService {
	return &MenuService{repo: repo, cache: cache}
}

func (s *MenuService) List(ctx context.Context) ([]domain.MenuItem, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetMenu(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetMenu(ctx, items)
	}
	return items, nil
}

func (s *MenuService) GetByID(ctx context.Context, id int64) (*domain.MenuItem, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *MenuService) Create(ctx context.Context, input ItemInput) (*domain.MenuItem, error) {
	item := &domain.MenuItem{}
	if err := apply(item, input, true); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return item, nil
}

func (s *MenuService) Update(ctx context.Context, id int64, input ItemInput) (*domain.MenuItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(item, input, false); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return item, nil
}

func (s *MenuService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *MenuService) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateMenu(ctx)
	}
}

// apply validates input field by field and writes it onto item. With
// requireAll set, absent fields are validation errors; otherwise they keep
// their current values.
func apply(item *domain.MenuItem, input ItemInput, requireAll bool) error {
	verrs := domain.ValidationErrors{}

	switch {
	case input.Title != nil:
		if *input.Title == "" {
			verrs["title"] = "title must not be empty"
		} else {
			item.Title = *input.Title
		}
	case requireAll:
		verrs["title"] = "this field is required"
	}

	switch {
	case input.Price != nil:
		price, err := domain.ParsePrice(*input.Price)
		if err != nil {
			verrs["price"] = err.Error()
		} else if price < 0 {
			verrs["price"] = "price must not be negative"
		} else {
			item.Price = price
		}
	case requireAll:
		verrs["price"] = "this field is required"
	}

	switch {
	case input.Inventory != nil:
		if *input.Inventory < 0 {
			verrs["inventory"] = "inventory must not be negative"
		} else {
			item.Inventory = *input.Inventory
		}
	case requireAll:
		verrs["inventory"] = "this field is required"
	}

	if len(verrs) > 0 {
		return verrs
	}
	return nil
}

var _ MenuUseCase = (*MenuService)(nil)
