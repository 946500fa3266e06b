package utils

import (
	"github.com/pkg/errors"
	goutils "go.viam.com/utils"
)

// NewConfigRangeError is used when a numeric config field lies outside its valid range.
func NewConfigRangeError(path, field string, value, lower, upper float32) error {
	return goutils.NewConfigValidationError(path,
		errors.Errorf("%q must be within [%v, %v], got %v", field, lower, upper, value))
}

// NewConfigPositiveError is used when a numeric config field must be strictly positive.
func NewConfigPositiveError(path, field string, value float32) error {
	return goutils.NewConfigValidationError(path,
		errors.Errorf("%q must be greater than 0, got %v", field, value))
}
