package stock

import (
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// Ledger es la única autoridad sobre el stock disponible de un producto.
// Todas las operaciones reciben un StockRepository atado a la transacción del
// caller: el bloqueo de fila (SELECT FOR UPDATE) dura hasta el commit, por lo
// que dos reservas concurrentes sobre el mismo producto se serializan en la DB.
type Ledger struct{}

// NewLedger construye el libro de stock.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Reserve descuenta quantity unidades del stock disponible del producto.
// Devuelve ErrInsufficientStock sin tocar el stock si no hay unidades suficientes;
// ErrNotFound si el producto no existe.
func (l *Ledger) Reserve(stockRepo repository.StockRepository, productID string, quantity int64) error {
	if quantity <= 0 {
		return domain.ErrInvalidInput
	}
	s, err := stockRepo.GetForUpdate(productID)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.ErrNotFound
	}
	if s.Stock < quantity {
		return domain.ErrInsufficientStock
	}
	return stockRepo.SetStock(productID, s.Stock-quantity)
}

// Release devuelve quantity unidades al stock disponible del producto.
// No es idempotente: cada liberación lógica debe llamarse exactamente una vez
// (el ajuste es un incremento incondicional, no un conjunto de reservas).
func (l *Ledger) Release(stockRepo repository.StockRepository, productID string, quantity int64) error {
	if quantity <= 0 {
		return domain.ErrInvalidInput
	}
	s, err := stockRepo.GetForUpdate(productID)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.ErrNotFound
	}
	return stockRepo.SetStock(productID, s.Stock+quantity)
}

// AdjustReservation ajusta una reserva existente: delta > 0 reserva unidades
// adicionales (puede fallar con ErrInsufficientStock), delta < 0 libera, 0 no hace nada.
func (l *Ledger) AdjustReservation(stockRepo repository.StockRepository, productID string, delta int64) error {
	switch {
	case delta > 0:
		return l.Reserve(stockRepo, productID, delta)
	case delta < 0:
		return l.Release(stockRepo, productID, -delta)
	}
	return nil
}
