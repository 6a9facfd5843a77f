package pos

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gimnasio-api/internal/application/dto"
	"github.com/jhoicas/Gimnasio-api/internal/domain"
	"github.com/jhoicas/Gimnasio-api/internal/domain/inventory"
	domainpos "github.com/jhoicas/Gimnasio-api/internal/domain/pos"
	"github.com/jhoicas/Gimnasio-api/internal/domain/repository"
)

// CartService mantiene un carrito en memoria por usuario del personal.
type CartService struct {
	mu          sync.Mutex
	carts       map[int64]*domainpos.Cart
	productRepo repository.ProductRepository
	lotRepo     repository.LotRepository
}

// NewCartService construye el servicio de carritos.
func NewCartService(productRepo repository.ProductRepository, lotRepo repository.LotRepository) *CartService {
	return &CartService{
		carts:       make(map[int64]*domainpos.Cart),
		productRepo: productRepo,
		lotRepo:     lotRepo,
	}
}

// AddItem agrega el producto al precio de venta vigente. La cantidad acumulada no puede superar el stock.
func (s *CartService) AddItem(ctx context.Context, userID int64, in dto.CartItemRequest) (*dto.CartResponse, error) {
	if !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	product, err := s.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.Active {
		return nil, domain.ErrNotFound
	}
	stock, err := s.stock(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	cart := s.cartLocked(userID)
	if cart.Quantity(in.ProductID).Add(in.Quantity).GreaterThan(stock) {
		return nil, domain.ErrInsufficientStock
	}
	if err := cart.Add(product.ID, product.Name, in.Quantity, product.SalePrice); err != nil {
		return nil, err
	}
	return toCartResponse(cart), nil
}

// SetQuantity fija la cantidad de una línea; 0 la elimina.
func (s *CartService) SetQuantity(ctx context.Context, userID, productID int64, qty decimal.Decimal) (*dto.CartResponse, error) {
	if qty.IsPositive() {
		stock, err := s.stock(ctx, productID)
		if err != nil {
			return nil, err
		}
		if qty.GreaterThan(stock) {
			return nil, domain.ErrInsufficientStock
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cart := s.cartLocked(userID)
	if err := cart.SetQuantity(productID, qty); err != nil {
		return nil, err
	}
	return toCartResponse(cart), nil
}

// RemoveItem quita la línea del producto.
func (s *CartService) RemoveItem(userID, productID int64) (*dto.CartResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart := s.cartLocked(userID)
	if err := cart.Remove(productID); err != nil {
		return nil, err
	}
	return toCartResponse(cart), nil
}

// Get carrito actual del usuario (vacío si no tiene).
func (s *CartService) Get(userID int64) *dto.CartResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return toCartResponse(s.cartLocked(userID))
}

// Clear vacía el carrito del usuario.
func (s *CartService) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
}

// snapshot líneas del carrito para cobrar.
func (s *CartService) snapshot(userID int64) []domainpos.Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cart, ok := s.carts[userID]; ok {
		return cart.Lines()
	}
	return nil
}

func (s *CartService) cartLocked(userID int64) *domainpos.Cart {
	cart, ok := s.carts[userID]
	if !ok {
		cart = domainpos.NewCart()
		s.carts[userID] = cart
	}
	return cart
}

func (s *CartService) stock(ctx context.Context, productID int64) (decimal.Decimal, error) {
	lots, err := s.lotRepo.ListByProduct(ctx, productID)
	if err != nil {
		return decimal.Zero, err
	}
	return inventory.Stock(lots), nil
}

func toCartResponse(c *domainpos.Cart) *dto.CartResponse {
	lines := c.Lines()
	out := &dto.CartResponse{Lines: make([]dto.CartLineResponse, 0, len(lines))}
	for _, l := range lines {
		out.Lines = append(out.Lines, dto.CartLineResponse{
			ProductID: l.ProductID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Subtotal:  l.Subtotal,
		})
	}
	out.Items, out.Subtotal = c.Totals()
	return out
}
