package model

import "errors"

var (
	ErrDuplicateName = errors.New("bookmark name already exists")
	ErrNotFound      = errors.New("bookmark not found")
	ErrValidation    = errors.New("invalid bookmark")
)
