package listing

import (
	"encoding/json"
	"testing"

	"github.com/gradewatch/watcher/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawDocs(t *testing.T, payloads ...string) []json.RawMessage {
	t.Helper()
	docs := make([]json.RawMessage, 0, len(payloads))
	for _, p := range payloads {
		docs = append(docs, json.RawMessage(p))
	}
	return docs
}

func TestNormalize_SchemaErrors(t *testing.T) {
	tests := []struct {
		name string
		docs []json.RawMessage
	}{
		{"nil document list", nil},
		{"first document is not a product group", rawDocs(t, `{"@type":"MerchantReturnPolicy"}`)},
		{"missing type discriminator", rawDocs(t, `{"name":"Phone"}`)},
		{"product group without variants", rawDocs(t, `{"@type":"ProductGroup","name":"Phone"}`)},
		{"first document is not an object", rawDocs(t, `"just a string"`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			variants, err := Normalize(tt.docs)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrSchema)
			assert.Nil(t, variants)
		})
	}
}

func TestNormalize_ExtractsVariants(t *testing.T) {
	docs := rawDocs(t, `{
		"@type": "ProductGroup",
		"name": "Apple iPhone 13 -Refurbished",
		"hasVariant": [
			{
				"@type": "Product",
				"sku": "SKU-1",
				"name": "Apple iPhone 13 -128 GB",
				"grade": "Superb",
				"color": "Midnight",
				"offers": {"url": "https://shop.example.com/p/1", "Sale_price": "31999", "availability": "https://schema.org/InStock"}
			},
			{
				"@type": "Product",
				"sku": "SKU-2",
				"name": "Apple iPhone 13 -256 GB",
				"grade": "Good",
				"offers": {"url": "https://shop.example.com/p/2", "Sale_price": "34999", "availability": "https://schema.org/OutOfStock"}
			}
		]
	}`)

	variants, err := Normalize(docs)
	require.NoError(t, err)
	require.Len(t, variants, 2)
	assert.Equal(t, "SKU-1", variants[0].SKU)
	assert.Equal(t, "Superb", variants[0].Grade)
	assert.Equal(t, "31999", variants[0].Offer.SalePrice)
	assert.Equal(t, "https://schema.org/OutOfStock", variants[1].Offer.Availability)
}

func TestNormalize_DropsVariantsMissingIdentityFields(t *testing.T) {
	docs := rawDocs(t, `{
		"@type": "ProductGroup",
		"hasVariant": [
			{"sku": "NO-NAME", "offers": {"url": "https://shop.example.com/p/1"}},
			{"sku": "NO-URL", "name": "Apple iPhone 13", "offers": {}},
			{"sku": "OK", "name": "Apple iPhone 13", "offers": {"url": "https://shop.example.com/p/3"}}
		]
	}`)

	variants, err := Normalize(docs)
	require.NoError(t, err)
	require.Len(t, variants, 1)
	assert.Equal(t, "OK", variants[0].SKU)
}

func TestNormalize_IgnoresTrailingDocuments(t *testing.T) {
	docs := rawDocs(t,
		`{"@type":"ProductGroup","hasVariant":[{"name":"Phone","offers":{"url":"https://shop.example.com/p/1"}}]}`,
		`{"@type":"MerchantReturnPolicy","merchantReturnDays":"15"}`,
	)

	variants, err := Normalize(docs)
	require.NoError(t, err)
	assert.Len(t, variants, 1)
}
