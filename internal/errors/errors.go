package gerr

import "errors"

var (
	ErrInvalidDateRange = errors.New("invalid date range")
	ErrBadRequest       = errors.New("bad request")

	ProductNotFound = errors.New("product not found")
	OrderNotFound   = errors.New("order not found")

	ErrAdReportUnavailable = errors.New("ad report unavailable")
	ErrBadAdReport         = errors.New("bad ad report")
)
