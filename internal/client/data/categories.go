package data

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/iudanet/balancio/internal/models"
	"github.com/iudanet/balancio/internal/validation"
	pkgapi "github.com/iudanet/balancio/pkg/api"
)

const categoriesEndpoint = "categories"

// CategoryService операции с категориями
type CategoryService struct {
	backend Backend
	toaster Toaster
	logger  *slog.Logger
}

// NewCategoryService создает сервис категорий
func NewCategoryService(backend Backend, toaster Toaster, logger *slog.Logger) *CategoryService {
	return &CategoryService{
		backend: backend,
		toaster: toasterOrDiscard(toaster),
		logger:  loggerOrDefault(logger),
	}
}

// List возвращает категории пользователя
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	var body []byte
	if err := s.backend.Get(ctx, categoriesEndpoint, &body); err != nil {
		return nil, fail(s.toaster, s.logger, operation{verb: "load", object: "category", plural: true}, err)
	}

	dtos, err := pkgapi.DecodeList[pkgapi.CategoryDTO](body)
	if err != nil {
		return nil, err
	}
	return CategoriesFromDTO(dtos), nil
}

// Get возвращает категорию по идентификатору
func (s *CategoryService) Get(ctx context.Context, id string) (*models.Category, error) {
	var dto pkgapi.CategoryDTO
	if err := s.backend.Get(ctx, categoryPath(id), &dto); err != nil {
		return nil, fail(s.toaster, s.logger, operation{verb: "load", object: "category"}, err)
	}
	c := CategoryFromDTO(dto)
	return &c, nil
}

// Create создает категорию
func (s *CategoryService) Create(ctx context.Context, in models.CategoryInput) (*models.Category, error) {
	if err := validation.Validate(in); err != nil {
		return nil, err
	}

	req := pkgapi.CategoryRequest{
		Name:  in.Name,
		Type:  string(in.Type),
		Color: in.Color,
		Icon:  in.Icon,
	}

	var dto pkgapi.CategoryDTO
	if err := s.backend.Post(ctx, categoriesEndpoint, req, &dto); err != nil {
		return nil, fail(s.toaster, s.logger, operation{verb: "create", object: "category"}, err)
	}
	c := CategoryFromDTO(dto)

	s.toaster.Success("Category Created", fmt.Sprintf("Category %q has been created", c.Name))
	return &c, nil
}

// Update изменяет непустые поля категории
func (s *CategoryService) Update(ctx context.Context, id string, in models.CategoryUpdate) (*models.Category, error) {
	if in == (models.CategoryUpdate{}) {
		return nil, fmt.Errorf("%w: nothing to update", validation.ErrInvalidInput)
	}
	if err := validation.Validate(in); err != nil {
		return nil, err
	}

	req := pkgapi.CategoryRequest{
		Name:  in.Name,
		Type:  string(in.Type),
		Color: in.Color,
		Icon:  in.Icon,
	}

	var dto pkgapi.CategoryDTO
	if err := s.backend.Put(ctx, categoryPath(id), req, &dto); err != nil {
		return nil, fail(s.toaster, s.logger, operation{verb: "update", object: "category"}, err)
	}
	c := CategoryFromDTO(dto)

	s.toaster.Success("Category Updated", fmt.Sprintf("Category %q has been updated", c.Name))
	return &c, nil
}

// Delete удаляет категорию
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if err := s.backend.Delete(ctx, categoryPath(id), nil); err != nil {
		return fail(s.toaster, s.logger, operation{verb: "delete", object: "category"}, err)
	}

	s.toaster.Info("Category Deleted", "Category has been successfully removed")
	return nil
}

func categoryPath(id string) string {
	return categoriesEndpoint + "/" + url.PathEscape(id)
}
