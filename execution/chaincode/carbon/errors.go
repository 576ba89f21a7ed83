// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package carbon

import (
	"errors"
	"fmt"
)

// error kinds, wrapped with the offending identifier
var (
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrPreconditionFailed = errors.New("precondition failed")
	ErrUnavailable        = errors.New("unavailable")
	ErrInvalidState       = errors.New("invalid state")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrMethodNotFound     = errors.New("method not found")
)

func errorf(kind error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}

func requireID(name, id string) error {
	if id == "" {
		return errorf(ErrInvalidArgument, "%s is required", name)
	}
	return nil
}
