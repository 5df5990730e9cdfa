package httperr

import "errors"

// Kind classifies domain errors so the API boundary can pick a status code.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindNotFound     Kind = "not_found"
	KindForbidden    Kind = "forbidden"
	KindUnauthorized Kind = "unauthorized"
	KindReferential  Kind = "referential"
	KindConcurrency  Kind = "concurrency"
)

type BusinessError struct {
	Kind Kind
	Code string

	// Extra flags copied into the JSON body (e.g. has_records).
	Fields map[string]any
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Kind: KindValidation, Code: code}
}

func ErrNotFound(code string) error {
	return BusinessError{Kind: KindNotFound, Code: code}
}

func ErrForbidden(code string) error {
	return BusinessError{Kind: KindForbidden, Code: code}
}

func ErrUnauthorized(code string) error {
	return BusinessError{Kind: KindUnauthorized, Code: code}
}

// ErrReferential reports a delete blocked by dependent rows. The caller may
// retry with cascade=true.
func ErrReferential(code string, fields map[string]any) error {
	return BusinessError{Kind: KindReferential, Code: code, Fields: fields}
}

// ErrConcurrency means the write could not be serialized. Retrying is safe.
func ErrConcurrency(code string) error {
	return BusinessError{Kind: KindConcurrency, Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func IsKind(err error, kind Kind) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind == kind
	}
	return false
}
