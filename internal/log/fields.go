package log

// Common field names for structured logging
const (
	FieldComponent      = "component"
	FieldOperation      = "operation"
	FieldError          = "error"
	FieldBackend        = "backend"
	FieldPath           = "path"
	FieldExpenseID      = "expense_id"
	FieldExpenseDesc    = "expense_description"
	FieldAmountCents    = "amount_cents"
	FieldCategory       = "category"
	FieldYear           = "year"
	FieldMonth          = "month"
	FieldCount          = "count"
	FieldQuarantinePath = "quarantine_path"
	FieldBackupPath     = "backup_path"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentStore     = "store"
	ComponentLedger    = "ledger"
	ComponentRecurring = "recurring"
	ComponentImport    = "import"
	ComponentCLI       = "cli"
)

// Operations defines standard operation names
const (
	OpLoad       = "load"
	OpSave       = "save"
	OpBackup     = "backup"
	OpQuarantine = "quarantine"
	OpAdd        = "add"
	OpDelete     = "delete"
	OpEdit       = "edit"
	OpUndo       = "undo"
	OpApplyRules = "apply_rules"
	OpImport     = "import"
	OpExport     = "export"
)
