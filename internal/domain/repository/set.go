package repository

// Set agrupa los repositorios atados a una misma unidad de trabajo.
type Set struct {
	Cars      CarRepository
	Budgets   BudgetRepository
	Stock     StockRepository
	Movements StockMovementRepository
	Employees EmployeeRepository
	Payments  PaymentRepository
	Expenses  ExpenseRepository
	Audit     AuditRepository
	Invoices  InvoiceRepository
	Problems  ProblemRepository
	Users     UserRepository
	Profile   ProfileRepository
}
