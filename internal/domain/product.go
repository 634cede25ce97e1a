package domain

// ProductGroup mirrors the product-group document embedded in the listing
// page's JSON-LD script block. Only the fields this system reads carry tags.
type ProductGroup struct {
	Context     string           `json:"@context"`
	Type        string           `json:"@type"`
	Name        string           `json:"name"`
	Image       string           `json:"image"`
	URL         string           `json:"url"`
	Description string           `json:"description"`
	Variants    []ProductVariant `json:"hasVariant"`
}

// ProductVariant is one candidate item inside a product group.
type ProductVariant struct {
	Type        string `json:"@type"`
	SKU         string `json:"sku"`
	Image       string `json:"image"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Grade       string `json:"grade"`
	Offer       Offer  `json:"offers"`
}

// Offer holds the purchasable side of a variant. SalePrice is kept as the raw
// string the page emits; it is never parsed as a number.
type Offer struct {
	Type                 string      `json:"@type"`
	URL                  string      `json:"url"`
	PriceCurrency        string      `json:"priceCurrency"`
	Price                string      `json:"price"`
	SalePrice            string      `json:"Sale_price"`
	Availability         string      `json:"availability"`
	ShippingDetails      DocumentRef `json:"shippingDetails"`
	MerchantReturnPolicy DocumentRef `json:"hasMerchantReturnPolicy"`
}

// DocumentRef is a JSON-LD cross-reference to a sibling document.
type DocumentRef struct {
	ID string `json:"@id"`
}

// Grade is a seller-assigned quality tier. Variant grades are free text on the
// wire; unknown values simply never match a criteria grade.
type Grade string

const (
	GradeSuperb Grade = "Superb"
	GradeGood   Grade = "Good"
	GradeFair   Grade = "Fair"
)

// Availability is the schema.org stock-status enumeration, carried in its URL
// form by the upstream data.
type Availability string

const (
	AvailabilityInStock    Availability = "https://schema.org/InStock"
	AvailabilityOutOfStock Availability = "https://schema.org/OutOfStock"
)

// FilteredRecord is the projection of a ProductVariant that notification
// adapters consume. It lives for one pipeline run only.
type FilteredRecord struct {
	Image       string
	Name        string
	Description string
	Color       string
	Grade       string
	Offer       OfferSummary
}

// OfferSummary is the offer subset a notification needs.
type OfferSummary struct {
	URL       string
	SalePrice string
}

// DispatchResult records the outcome of one outbound notification call.
type DispatchResult struct {
	Adapter string
	Kind    DispatchKind
	Err     error
}

// DispatchKind labels what a dispatched message carried.
type DispatchKind string

const (
	DispatchRecord   DispatchKind = "record"
	DispatchAlert    DispatchKind = "alert"
	DispatchFallback DispatchKind = "fallback"
)
