package inventory

import (
	"context"

	"github.com/jhoicas/Gimnasio-api/internal/application/dto"
)

// RegisterPurchaseFromRequest adapta el request HTTP al caso de uso RegisterPurchase.
func (uc *RegisterMovementUseCase) RegisterPurchaseFromRequest(ctx context.Context, userID, productID int64, in dto.PurchaseRequest) (*dto.PurchaseResponse, error) {
	return uc.RegisterPurchase(ctx, PurchaseInput{
		UserID:         userID,
		ProductID:      productID,
		Quantity:       in.Quantity,
		UnitCost:       in.UnitCost,
		Supplier:       in.Supplier,
		PurchaseDate:   in.PurchaseDate,
		ExpirationDate: in.ExpirationDate,
	})
}

// AdjustStockFromRequest adapta el request HTTP al caso de uso AdjustStock.
func (uc *RegisterMovementUseCase) AdjustStockFromRequest(ctx context.Context, userID, productID int64, in dto.AdjustStockRequest) (*dto.AdjustStockResponse, error) {
	return uc.AdjustStock(ctx, AdjustInput{
		UserID:    userID,
		ProductID: productID,
		Delta:     in.Delta,
		Reason:    in.Reason,
	})
}
