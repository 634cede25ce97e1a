package usecase

import (
	"log"

	"github.com/gradewatch/watcher/internal/domain"
)

// FilterCriteria holds the selection rules for one run
type FilterCriteria struct {
	Grade        domain.Grade
	Availability domain.Availability
	// TargetPrice, when non-empty, selects the highlighted-alert subset by
	// exact string equality against the sale price. This mirrors the upstream
	// data contract: prices arrive unformatted, and a currency-symbol
	// mismatch is deliberately a non-match until upstream confirms otherwise.
	TargetPrice string
}

// FilterService applies the business-rule predicates and projects matching
// variants into the shape notifications need
type FilterService struct {
	criteria FilterCriteria
}

// NewFilterService creates a new filter service
func NewFilterService(criteria FilterCriteria) *FilterService {
	return &FilterService{criteria: criteria}
}

// Criteria returns the rules this service was built with
func (s *FilterService) Criteria() FilterCriteria {
	return s.criteria
}

// FilterAndProject keeps variants whose grade and availability both match the
// criteria, in input order, projected down to the notification field set.
// Unrecognized grade or availability values never match and never fault.
func (s *FilterService) FilterAndProject(variants []domain.ProductVariant) []domain.FilteredRecord {
	records := make([]domain.FilteredRecord, 0, len(variants))
	for _, v := range variants {
		if domain.Grade(v.Grade) != s.criteria.Grade {
			continue
		}
		if domain.Availability(v.Offer.Availability) != s.criteria.Availability {
			continue
		}
		records = append(records, domain.FilteredRecord{
			Image:       v.Image,
			Name:        v.Name,
			Description: v.Description,
			Color:       v.Color,
			Grade:       v.Grade,
			Offer: domain.OfferSummary{
				URL:       v.Offer.URL,
				SalePrice: v.Offer.SalePrice,
			},
		})
	}

	log.Printf("[filter] %d of %d variants match grade=%q availability=%q",
		len(records), len(variants), s.criteria.Grade, s.criteria.Availability)
	return records
}

// TargetPriceMatches selects, from an already-projected set, the records whose
// sale price equals the configured target price. The result is always a
// subset of the input; with no target price configured it is empty.
func (s *FilterService) TargetPriceMatches(records []domain.FilteredRecord) []domain.FilteredRecord {
	if s.criteria.TargetPrice == "" {
		return nil
	}

	var hits []domain.FilteredRecord
	for _, r := range records {
		if r.Offer.SalePrice == s.criteria.TargetPrice {
			hits = append(hits, r)
		}
	}
	return hits
}
