package pricing

import (
	"errors"

	"phonelister/internal/domain"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnknownPlatform   = domain.ErrUnknownPlatform
	ErrMalformedOverride = errors.New("malformed override price")
)
