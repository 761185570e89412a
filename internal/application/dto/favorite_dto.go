package dto

// AddFavoriteRequest body para POST /api/favorites.
type AddFavoriteRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
}

// FavoriteResponse favorito junto con el producto asociado.
type FavoriteResponse struct {
	ID      string          `json:"id"`
	Product ProductResponse `json:"product"`
	Image   string          `json:"image,omitempty"`
}
