package listing

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gradewatch/watcher/internal/domain"
)

// ExtractDocuments locates the first JSON-LD script block in the page and
// parses it into an ordered list of untyped documents. The page embeds an
// array of heterogeneous documents (product group, return policy, ...); a
// bare object payload is accepted and wrapped into a one-element list.
func ExtractDocuments(html string) ([]json.RawMessage, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExtraction, err)
	}

	block := doc.Find(`script[type="application/ld+json"]`).First()
	if block.Length() == 0 {
		return nil, fmt.Errorf("%w: page has no ld+json script block", domain.ErrExtraction)
	}

	raw := strings.TrimSpace(block.Text())
	if raw == "" {
		return nil, fmt.Errorf("%w: ld+json script block is empty", domain.ErrExtraction)
	}

	var docs []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &docs); err != nil {
		var single json.RawMessage
		if err := json.Unmarshal([]byte(raw), &single); err != nil {
			return nil, fmt.Errorf("%w: invalid JSON: %v", domain.ErrExtraction, err)
		}
		docs = []json.RawMessage{single}
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: ld+json block holds an empty document list", domain.ErrExtraction)
	}
	return docs, nil
}
