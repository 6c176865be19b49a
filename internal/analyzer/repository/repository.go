package repository

import "errors"

var (
	// ErrNoData is returned when the provider answers but has nothing for the symbol.
	ErrNoData = errors.New("no data")
	// ErrSymbolNotFound is returned when the provider does not know the symbol.
	ErrSymbolNotFound = errors.New("symbol not found")
)
