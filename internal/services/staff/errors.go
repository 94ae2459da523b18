package staff

import "errors"

// Staff-related errors
var (
	ErrNoChanges        = errors.New("no fields to update")
	ErrShiftTooLong     = errors.New("shift exceeds the maximum shift length")
	ErrPaidBeforePeriod = errors.New("payment date is before the start of the paid period")
	ErrNoHoursWorked    = errors.New("no hours worked in period")
)
