package catalog

import "errors"

var (
	ErrValidation    = errors.New("validation failed")
	ErrRoomNotFound  = errors.New("room not found")
	ErrTypeNotFound  = errors.New("room type not found")
	ErrCodeTaken     = errors.New("room code already in use")
	ErrTypeNameTaken = errors.New("room type name already in use")
	ErrTypeInUse     = errors.New("room type still has rooms")
)
