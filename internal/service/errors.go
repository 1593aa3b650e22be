package service

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
	ErrDiscountExpired = errors.New("discount expired or not yet active")
	ErrDiscountUsedUp  = errors.New("discount usage limit reached")
	ErrEmptyCart       = errors.New("cart is empty")
)
