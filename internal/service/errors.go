package service

import "errors"

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrNoLineItems        = errors.New("no line items to report")
	ErrOrderNotCancelable = errors.New("order is not pending cancelation")
)
