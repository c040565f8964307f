package verification

// ===============================
// Verification State
// ===============================

// One tagged state instead of two independent booleans: the
// verified+failed combination is unrepresentable.
type State string

const (
	StateUnverified State = "unverified"
	StateVerified   State = "verified"
	StateRejected   State = "rejected"
)

func IsValid(s State) bool {
	switch s {
	case StateUnverified, StateVerified, StateRejected:
		return true
	}
	return false
}

// Eligible reports whether a professional in this state may appear in
// customer-facing listings and receive bookings.
func Eligible(s State, adminBlocked bool) bool {
	return s == StateVerified && !adminBlocked
}
