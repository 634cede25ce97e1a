package domain

import "context"

// ListingSource defines the interface for pulling candidate variants out of a
// product-listing page (fetch, extract, normalize).
type ListingSource interface {
	FetchVariants(ctx context.Context, pageURL string) ([]ProductVariant, error)
}

// NotificationAdapter defines the interface for a notification target. An
// adapter formats records into its own wire shape and dispatches them.
type NotificationAdapter interface {
	Name() string
	SendRecord(ctx context.Context, rec FilteredRecord) error
	SendFallback(ctx context.Context, productName string, grade Grade) error
}

// AlertSender is implemented by adapters that can deliver the extra
// target-price alert message mentioning a recipient handle.
type AlertSender interface {
	SendAlert(ctx context.Context, rec FilteredRecord, handle string) error
}
