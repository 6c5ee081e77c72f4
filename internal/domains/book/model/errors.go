package model

import "errors"

var (
	ErrBookNotFound     = errors.New("book not found")
	ErrBookNotAvailable = errors.New("book is not available")
	ErrMetadataNotFound = errors.New("book not found in catalog")
)
