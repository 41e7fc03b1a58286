package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/d60-Lab/yatube/pkg/apperr"
)

// validateText is the single text rule on posts and comments: the body
// must be non-empty after trimming. Pure; callers invoke it before any
// persistence.
func validateText(field, text string) error {
	if strings.TrimSpace(text) == "" {
		return &apperr.ValidationError{Field: field, Message: "must not be blank"}
	}
	return nil
}

// asNotFound converts a gorm miss into the domain NotFound error.
func asNotFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(what)
	}
	return err
}
