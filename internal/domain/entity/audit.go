package entity

import "time"

// AuditAction acción registrada en la auditoría.
type AuditAction string

const (
	ActionCarAdded               AuditAction = "CAR_ADDED"
	ActionStageCompleted         AuditAction = "STAGE_COMPLETED"
	ActionStageReverted          AuditAction = "STAGE_REVERTED"
	ActionMaterialAdded          AuditAction = "MATERIAL_ADDED"
	ActionEmployeeAdded          AuditAction = "EMPLOYEE_ADDED"
	ActionEmployeeUpdated        AuditAction = "EMPLOYEE_UPDATED"
	ActionEmployeeRemoved        AuditAction = "EMPLOYEE_REMOVED"
	ActionProblemReported        AuditAction = "PROBLEM_REPORTED"
	ActionProblemResolved        AuditAction = "PROBLEM_RESOLVED"
	ActionGeneralProblemReported AuditAction = "GENERAL_PROBLEM_REPORTED"
	ActionStockItemAdded         AuditAction = "STOCK_ITEM_ADDED"
	ActionStockMovement          AuditAction = "STOCK_MOVEMENT"
	ActionStockItemUpdated       AuditAction = "STOCK_ITEM_UPDATED"
	ActionStockItemRemoved       AuditAction = "STOCK_ITEM_REMOVED"
	ActionProfileUpdated         AuditAction = "PROFILE_UPDATED"
	ActionPaymentMade            AuditAction = "PAYMENT_MADE"
	ActionInvoiceIssued          AuditAction = "INVOICE_ISSUED"
	ActionBudgetCreated          AuditAction = "BUDGET_CREATED"
	ActionBudgetUpdated          AuditAction = "BUDGET_UPDATED"
	ActionBudgetConverted        AuditAction = "BUDGET_CONVERTED"
	ActionExpenseAdded           AuditAction = "EXPENSE_ADDED"
)

// AuditLogEntry registro de auditoría (append-only).
type AuditLogEntry struct {
	ID        string      `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
	ActorID   string      `json:"actor_id,omitempty"`
	ActorName string      `json:"actor_name"`
	Action    AuditAction `json:"action"`
	Details   string      `json:"details"`
	TargetID  string      `json:"target_id,omitempty"`
}

// Actor quién ejecuta una operación (administrador del dashboard o empleado).
type Actor struct {
	ID   string
	Name string
}

// SystemActor se usa cuando no hay sesión (p. ej. consumo automático).
var SystemActor = Actor{ID: "system", Name: "Sistema"}
