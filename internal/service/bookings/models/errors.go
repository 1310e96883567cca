package models

import "errors"

// ErrInvalidStatus возвращается при некорректном статусе в фильтре
var ErrInvalidStatus = errors.New("invalid booking status")
