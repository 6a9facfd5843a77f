package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jhoicas/Gimnasio-api/internal/domain/repository"
)

// TxRunner ejecuta callbacks dentro de una transacción SQLite.
// Con _txlock=immediate el BEGIN toma el lock de escritura, así dos escritores no se intercalan.
type TxRunner struct {
	db *sql.DB
}

// NewTxRunner construye el runner con la conexión.
func NewTxRunner(db *sql.DB) *TxRunner {
	return &TxRunner{db: db}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.TxRepos) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(NewTxRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// WithWriteLock mantiene una transacción de escritura abierta mientras corre fn.
// Ningún otro escritor puede confirmar cambios en el archivo hasta que fn termine.
func (r *TxRunner) WithWriteLock(ctx context.Context, fn func() error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	return fn()
}

// NewTxRepos construye todos los repositorios sobre el mismo Querier.
func NewTxRepos(q Querier) repository.TxRepos {
	return repository.TxRepos{
		Plans:     NewPlanRepository(q),
		Clients:   NewClientRepository(q),
		Payments:  NewClientPaymentRepository(q),
		Products:  NewProductRepository(q),
		Lots:      NewLotRepository(q),
		Movements: NewStockMovementRepository(q),
		Sales:     NewSaleRepository(q),
		Employees: NewEmployeeRepository(q),
		Payroll:   NewPayrollRepository(q),
	}
}
