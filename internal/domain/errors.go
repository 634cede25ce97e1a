package domain

import "errors"

var (
	// ErrFetch is returned when the product page cannot be fetched
	ErrFetch = errors.New("product page fetch failed")

	// ErrExtraction is returned when the page carries no usable JSON-LD block
	ErrExtraction = errors.New("no embedded product data found")

	// ErrSchema is returned when the embedded data is not a product-group document
	ErrSchema = errors.New("embedded data does not match product-group shape")

	// ErrDispatch is returned when one outbound notification fails; it never
	// aborts sibling dispatches
	ErrDispatch = errors.New("notification dispatch failed")
)
