package domain

import "strings"

// The listing's own text fields carry positional contracts inherited from the
// upstream formatting: variant names read "Short Name - Storage - Condition"
// and descriptions are comma-joined attribute segments with the headline in
// third position. The accessors below pin those contracts down in one place.

// ShortName returns everything before the first hyphen of a variant name, or
// the whole name when no hyphen is present.
func ShortName(name string) string {
	if i := strings.Index(name, "-"); i >= 0 {
		return name[:i]
	}
	return name
}

// DescriptionHighlight returns the third comma-separated segment of a variant
// description. When fewer than three segments exist it returns an empty
// string rather than faulting.
func DescriptionHighlight(description string) string {
	parts := strings.Split(description, ",")
	if len(parts) < 3 {
		return ""
	}
	return parts[2]
}
