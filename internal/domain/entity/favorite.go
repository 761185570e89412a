package entity

import "time"

// Favorite marca un producto como favorito de un usuario (único por usuario+producto).
type Favorite struct {
	ID        string
	UserID    string
	ProductID string
	Image     string
	CreatedAt time.Time
}

// FavoriteDetail favorito junto con los datos del producto asociado.
type FavoriteDetail struct {
	Favorite
	Product Product
}
