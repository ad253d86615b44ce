package core

import "strings"

// =============================================================================
// MatchQuality
// =============================================================================

// MatchQuality grades how closely two item descriptors match.
// Values are totally ordered; a higher value is a closer match.
type MatchQuality int

// Match qualities from weakest to strongest.
const (
	// QualityDifferent means the descriptors denote unrelated items.
	QualityDifferent MatchQuality = iota
	// QualitySameMaterial means the base material matches but the data does not.
	QualitySameMaterial
	// QualitySameItem means the items are compatible but one carries more detail.
	QualitySameItem
	// QualityExact means both descriptors denote the same physical item.
	QualityExact
	// QualityIdentical means both sides are the very same descriptor.
	QualityIdentical
)

// IsAtLeast reports whether q is equal to or better than other.
func (q MatchQuality) IsAtLeast(other MatchQuality) bool {
	return q >= other
}

// IsBetter reports whether q is strictly better than other.
func (q MatchQuality) IsBetter(other MatchQuality) bool {
	return q > other
}

// String returns the string representation of the match quality.
func (q MatchQuality) String() string {
	switch q {
	case QualityDifferent:
		return "different"
	case QualitySameMaterial:
		return "same_material"
	case QualitySameItem:
		return "same_item"
	case QualityExact:
		return "exact"
	case QualityIdentical:
		return "identical"
	default:
		return "unknown"
	}
}

// ParseMatchQuality converts a string to a MatchQuality value.
// Returns the quality and true if valid, or QualityDifferent and false if invalid.
func ParseMatchQuality(s string) (MatchQuality, bool) {
	switch strings.ToLower(s) {
	case "different":
		return QualityDifferent, true
	case "same_material":
		return QualitySameMaterial, true
	case "same_item":
		return QualitySameItem, true
	case "exact":
		return QualityExact, true
	case "identical":
		return QualityIdentical, true
	default:
		return QualityDifferent, false
	}
}

// minQuality returns the weaker of two qualities.
func minQuality(a, b MatchQuality) MatchQuality {
	if a < b {
		return a
	}
	return b
}
