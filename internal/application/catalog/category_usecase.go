package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/petshop-api/internal/application/dto"
	"github.com/jhoicas/petshop-api/internal/domain"
	"github.com/jhoicas/petshop-api/internal/domain/entity"
	"github.com/jhoicas/petshop-api/internal/domain/repository"
)

// CategoryUseCase casos de uso de categorías. Las de productos son compartidas;
// las de ingresos y gastos solo las ve su dueño.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

func visible(c *entity.Category, userID string) bool {
	return c != nil && (c.Kind == entity.CategoryProduct || c.UserID == userID)
}

// Create registra una categoría del usuario.
func (uc *CategoryUseCase) Create(ctx context.Context, userID string, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.Invalid("name", "requerido")
	}
	if !entity.ValidCategoryKind(in.Kind) {
		return nil, domain.Invalid("type", "debe ser PRODUCT, INCOME o EXPENSE")
	}
	now := time.Now()
	c := &entity.Category{
		ID:          uuid.New().String(),
		UserID:      userID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Kind:        in.Kind,
		Color:       in.Color,
		Icon:        in.Icon,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return dto.NewCategoryResponse(c), nil
}

// List devuelve las categorías activas visibles para el usuario, opcionalmente de un tipo.
func (uc *CategoryUseCase) List(ctx context.Context, userID, kind string) ([]dto.CategoryResponse, error) {
	active := true
	list, err := uc.repo.List(ctx, repository.CategoryFilter{Kind: kind, Active: &active})
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		if visible(c, userID) {
			out = append(out, *dto.NewCategoryResponse(c))
		}
	}
	return out, nil
}

// Update modifica nombre, descripción y apariencia. El tipo no cambia.
func (uc *CategoryUseCase) Update(ctx context.Context, userID, id string, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.Invalid("name", "requerido")
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !visible(c, userID) {
		return nil, domain.ErrNotFound
	}
	c.Name = strings.TrimSpace(in.Name)
	c.Description = in.Description
	c.Color = in.Color
	c.Icon = in.Icon
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return dto.NewCategoryResponse(c), nil
}

// Delete desactiva la categoría (baja lógica).
func (uc *CategoryUseCase) Delete(ctx context.Context, userID, id string) error {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !visible(c, userID) {
		return domain.ErrNotFound
	}
	c.Active = false
	c.UpdatedAt = time.Now()
	return uc.repo.Update(ctx, c)
}
