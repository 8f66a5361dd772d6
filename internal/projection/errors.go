package projection

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is returned for row indices outside [0, RowCount())
	ErrOutOfRange = errors.New("row index out of range")
	// ErrUnsupportedConfiguration is returned by New for option combinations
	// the view cannot honour
	ErrUnsupportedConfiguration = errors.New("unsupported configuration")
	ErrNoResult                 = errors.New("no result attached")
	ErrNotContainer             = errors.New("row is not a container")
	ErrUnknownColumn            = errors.New("unknown column")
)

func outOfRange(row, count int) error {
	return fmt.Errorf("row %d of %d: %w", row, count, ErrOutOfRange)
}
