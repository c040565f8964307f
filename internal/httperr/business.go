package httperr

import "errors"

// Business failure codes shared by the lifecycle and verification
// operations. Handlers map them onto HTTP statuses.
const (
	CodeInvalidInput           = "invalid_input"
	CodeForbidden              = "forbidden"
	CodeInvalidTransition      = "invalid_transition"
	CodeDuplicateActiveRequest = "duplicate_active_request"
	CodeAlreadyReviewed        = "already_reviewed"
	CodeNotFound               = "not_found"
	CodeProfileNotFound        = "profile_not_found"
	CodeServiceInUse           = "service_in_use"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// BusinessCode extracts the code when err is a business failure,
// "" otherwise.
func BusinessCode(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
