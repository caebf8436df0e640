package model

import (
	"github.com/oneconcern/filemon/pkg/errors"
)

var (
	// ErrVersionFormat indicates a version string which is not `<major>.<minor>`
	ErrVersionFormat = errors.New("invalid version format")

	// ErrVersionOutOfOrder indicates a version which does not sort after its predecessor
	ErrVersionOutOfOrder = errors.New("version out of order")
)
