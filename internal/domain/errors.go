package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrInvalidBackup      = errors.New("respaldo inválido: no es una base de datos SQLite")
	ErrAlreadyPaid        = errors.New("el registro de nómina ya fue pagado")
	ErrSaleVoided         = errors.New("la venta ya fue anulada")
	ErrEmptyCart          = errors.New("el carrito está vacío")
)
