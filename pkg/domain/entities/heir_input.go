package entities

import (
	"fmt"
	"strings"
)

// UncertaintyStatus marks a heir whose existence or sex is not yet known.
// The allocation pipeline ignores it; scenario drivers expand it.
type UncertaintyStatus int

const (
	Certain  UncertaintyStatus = iota
	Missing                    // mafqud
	Intersex                   // khuntsa
	Unborn                     // haml
)

// String method for UncertaintyStatus enum
func (s UncertaintyStatus) String() string {
	switch s {
	case Certain:
		return ""
	case Missing:
		return "mafqud"
	case Intersex:
		return "khuntsa"
	case Unborn:
		return "haml"
	default:
		return "Unknown"
	}
}

// ParseUncertaintyStatus converts a request status string into a status value
func ParseUncertaintyStatus(s string) (UncertaintyStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return Certain, nil
	case "mafqud", "missing":
		return Missing, nil
	case "khuntsa", "intersex":
		return Intersex, nil
	case "haml", "unborn":
		return Unborn, nil
	default:
		return Certain, fmt.Errorf("unknown heir status: %q", s)
	}
}

// HeirInput represents one request line: a category and how many heirs of it exist
type HeirInput struct {
	Category       HeirCategory
	Quantity       int
	BlockingReason string
	Status         UncertaintyStatus
}

// NewHeirInput creates a validated HeirInput
func NewHeirInput(category HeirCategory, quantity int, blockingReason string) (*HeirInput, error) {
	if !category.Valid() {
		return nil, NewDomainError(ErrorUnknownCategory, "category_id", fmt.Sprintf("unknown heir category %d", int(category)))
	}
	if quantity < 1 {
		return nil, NewDomainError(ErrorInvalidQuantity, "quantity", fmt.Sprintf("quantity must be at least 1, got %d", quantity))
	}
	return &HeirInput{
		Category:       category,
		Quantity:       quantity,
		BlockingReason: strings.TrimSpace(blockingReason),
	}, nil
}

// IsDisqualified reports whether the heir carries an explicit blocking attribute
func (h HeirInput) IsDisqualified() bool {
	return h.BlockingReason != ""
}

// HeirCategoryInfo is the directory record for a category
type HeirCategoryInfo struct {
	Category    HeirCategory
	DisplayName string
	ArabicName  string
	Sex         Sex
	Weight      int64
}

// NewHeirCategoryInfo builds the directory record for a known category
func NewHeirCategoryInfo(category HeirCategory, arabicName string) (*HeirCategoryInfo, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("unknown heir category %d", int(category))
	}
	return &HeirCategoryInfo{
		Category:    category,
		DisplayName: category.String(),
		ArabicName:  arabicName,
		Sex:         category.Sex(),
		Weight:      category.Weight(),
	}, nil
}
