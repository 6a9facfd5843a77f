package repository

// TxRepos repositorios atados a una misma transacción de BD.
// Lo construye la infraestructura (TxRunner) y lo consumen los casos de uso transaccionales.
type TxRepos struct {
	Plans     PlanRepository
	Clients   ClientRepository
	Payments  ClientPaymentRepository
	Products  ProductRepository
	Lots      LotRepository
	Movements StockMovementRepository
	Sales     SaleRepository
	Employees EmployeeRepository
	Payroll   PayrollRepository
}
