package postgres

import "errors"

var (
	ErrFieldsNotAllowedToUpdate = errors.New("fields not allowed to update")
	ErrInvalidFieldValue        = errors.New("invalid field value")
)
