package repository

import "errors"

// ErrDuplicateKey is returned by stores when a unique constraint (e.g. doctor email) is violated
var ErrDuplicateKey = errors.New("duplicate key")
