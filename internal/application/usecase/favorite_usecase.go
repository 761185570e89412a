package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// FavoriteUseCase favoritos por usuario: añadir, listar (con producto) y quitar.
type FavoriteUseCase struct {
	repo        repository.FavoriteRepository
	productRepo repository.ProductRepository
}

// NewFavoriteUseCase construye el caso de uso.
func NewFavoriteUseCase(repo repository.FavoriteRepository, productRepo repository.ProductRepository) *FavoriteUseCase {
	return &FavoriteUseCase{repo: repo, productRepo: productRepo}
}

// Add marca un producto como favorito. ErrDuplicate si ya lo era.
func (uc *FavoriteUseCase) Add(userID, productID string) (*dto.FavoriteResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if existing, _ := uc.repo.GetByUserAndProduct(userID, productID); existing != nil {
		return nil, domain.ErrDuplicate
	}
	favorite := &entity.Favorite{
		ID:        uuid.New().String(),
		UserID:    userID,
		ProductID: productID,
		Image:     product.Image,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(favorite); err != nil {
		return nil, err
	}
	return &dto.FavoriteResponse{
		ID:      favorite.ID,
		Product: *toProductResponse(product),
		Image:   favorite.Image,
	}, nil
}

// List favoritos del usuario con los datos del producto.
func (uc *FavoriteUseCase) List(userID string) ([]dto.FavoriteResponse, error) {
	details, err := uc.repo.ListDetailByUser(userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FavoriteResponse, 0, len(details))
	for _, d := range details {
		out = append(out, dto.FavoriteResponse{
			ID:      d.ID,
			Product: *toProductResponse(&d.Product),
			Image:   d.Image,
		})
	}
	return out, nil
}

// Remove quita un producto de los favoritos del usuario.
func (uc *FavoriteUseCase) Remove(userID, productID string) error {
	favorite, err := uc.repo.GetByUserAndProduct(userID, productID)
	if err != nil {
		return err
	}
	if favorite == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(userID, productID)
}
