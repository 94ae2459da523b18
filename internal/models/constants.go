package models

// ============================================================================
// DATE FORMATS
// ============================================================================

// DateLayout is the storage and input format for calendar dates
const DateLayout = "2006-01-02"

// TimeLayout is the storage format for instants (always UTC)
const TimeLayout = "2006-01-02T15:04:05Z"

// ============================================================================
// SUPPLY ORDER STATUS
// ============================================================================

// Supply order lifecycle: pending -> received | cancelled
const (
	OrderStatusPending   = "pending"
	OrderStatusReceived  = "received"
	OrderStatusCancelled = "cancelled"
)

// ============================================================================
// EXPENSE CATEGORIES
// ============================================================================

// Expense categories accepted by the expense ledger
const (
	ExpenseRent        = "rent"
	ExpenseUtilities   = "utilities"
	ExpenseEquipment   = "equipment"
	ExpenseMaintenance = "maintenance"
	ExpenseMarketing   = "marketing"
	ExpenseOther       = "other"
)

// ExpenseCategories lists every valid expense category in display order
var ExpenseCategories = []string{
	ExpenseRent,
	ExpenseUtilities,
	ExpenseEquipment,
	ExpenseMaintenance,
	ExpenseMarketing,
	ExpenseOther,
}

// ============================================================================
// LIMITS
// ============================================================================

// MaxNameLength bounds every name-like column (items, suppliers, people)
const MaxNameLength = 100

// MaxDescriptionLength bounds free text columns such as addresses and expense notes
const MaxDescriptionLength = 500
