package errors

import "errors"

// Sentinel errors for the pricing core
var (
	// ErrMissingLength is returned when a cut-length item has no usable length
	ErrMissingLength = errors.New("cut length is required for necklace/bracelet items")
	// ErrInvalidPrice is returned for a bad manual price override
	ErrInvalidPrice = errors.New("buying and selling prices must be non-negative")
	// ErrInvalidFeedResponse is returned when the feed payload matches no known shape
	ErrInvalidFeedResponse = errors.New("unrecognized gold price feed response")
	// ErrPriceUnavailable is returned only when no live, cached or fallback price exists
	ErrPriceUnavailable = errors.New("gold price unavailable")
)

type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return e.Field + ": " + e.Message
}

// ErrNotFound reports a missing entity, e.g. a catalog lookup that resolved nothing
type ErrNotFound struct {
	Entity string
	Key    string
}

func (e *ErrNotFound) Error() string {
	if e.Key == "" {
		return e.Entity + " not found"
	}
	return e.Entity + " not found: " + e.Key
}

// IsNotFound reports whether err is an ErrNotFound
func IsNotFound(err error) bool {
	var nf *ErrNotFound
	return errors.As(err, &nf)
}

// IsValidation reports whether err is an ErrValidation
func IsValidation(err error) bool {
	var v *ErrValidation
	return errors.As(err, &v)
}
