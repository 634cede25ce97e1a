package listing

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/gradewatch/watcher/internal/domain"
)

// productGroupType is the JSON-LD discriminator a listing's first document
// must carry. Position alone is never taken as proof of type.
const productGroupType = "ProductGroup"

// Normalize asserts the first extracted document is a product group and pulls
// out its variant list. Variants missing the identity fields downstream
// templates rely on (name, offer URL) are dropped with a logged skip rather
// than propagated.
func Normalize(docs []json.RawMessage) ([]domain.ProductVariant, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: empty document list", domain.ErrSchema)
	}

	var group domain.ProductGroup
	if err := json.Unmarshal(docs[0], &group); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSchema, err)
	}
	if group.Type != productGroupType {
		return nil, fmt.Errorf("%w: first document is %q, want %q", domain.ErrSchema, group.Type, productGroupType)
	}
	if len(group.Variants) == 0 {
		return nil, fmt.Errorf("%w: product group %q has no variants", domain.ErrSchema, group.Name)
	}

	variants := make([]domain.ProductVariant, 0, len(group.Variants))
	for _, v := range group.Variants {
		if v.Name == "" || v.Offer.URL == "" {
			log.Printf("[listing] skipping variant sku=%q: missing name or offer url", v.SKU)
			continue
		}
		variants = append(variants, v)
	}

	log.Printf("[listing] normalized %d of %d variants from %q", len(variants), len(group.Variants), group.Name)
	return variants, nil
}
