package record

import "errors"

// Record is one attendance entry. Date is stored as entered; the UIs offer
// ISO yyyy-mm-dd but the store does not enforce a calendar format, and
// report bounds compare dates lexically.
type Record struct {
	ID        int64  `json:"id"`
	StudentID string `json:"student_id"`
	Name      string `json:"name"`
	ClassName string `json:"class_name"`
	Date      string `json:"date"`
}

// ReportAllClasses disables the class restriction in Report.
const ReportAllClasses = "all"

// Classes is the fixed list both front-end forms offer. The store itself
// accepts arbitrary class text.
var Classes = []string{"Class 1", "Class 2", "Class 3", "Class 4", "Class 5"}

var (
	// ErrNotFound signals an id-keyed operation on an absent record.
	ErrNotFound = errors.New("record not found")
	// ErrValidation signals a create/update with a missing required field.
	ErrValidation = errors.New("all fields are required")
)
