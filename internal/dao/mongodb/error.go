package mongodb

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrDuplicateInvoiceNum = errors.New("invoice number already exists")
)
