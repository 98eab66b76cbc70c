package checkout

import "strings"

// paidStatuses are the backend statuses that count as a confirmed payment
var paidStatuses = map[string]bool{
	"COMPLETED": true,
	"PAID":      true,
	"APPROVED":  true,
	"SUCCESS":   true,
}

// IsPaidStatus reports whether a status string means the payment went
// through. Matching is case-insensitive.
func IsPaidStatus(status string) bool {
	return paidStatuses[strings.ToUpper(status)]
}

// EnrollmentState is the closed set of per-course enrollment check outcomes
// driving the "retry enrollment" affordance
type EnrollmentState string

const (
	EnrollmentUnknown  EnrollmentState = "UNKNOWN"
	EnrollmentChecking EnrollmentState = "CHECKING"
	EnrollmentExists   EnrollmentState = "EXISTS"
	EnrollmentMissing  EnrollmentState = "MISSING"
	EnrollmentError    EnrollmentState = "ERROR"
)
