package services

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/vsinha/faraid/pkg/domain/entities"
)

// RequestValidator checks a heir request before it reaches the allocation pipeline
type RequestValidator struct{}

// NewRequestValidator creates a new request validator
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{}
}

// maxQuantity caps categories that can only hold a fixed number of people
var maxQuantity = map[entities.HeirCategory]int{
	entities.Husband:             1,
	entities.Wife:                4,
	entities.Father:              1,
	entities.Mother:              1,
	entities.Grandfather:         1,
	entities.MaternalGrandmother: 1,
	entities.PaternalGrandmother: 1,
}

// ValidateEstate rejects non-positive estate values
func (v *RequestValidator) ValidateEstate(estate decimal.Decimal) error {
	if !estate.IsPositive() {
		return entities.NewDomainError(entities.ErrorInvalidEstate, "estate_value",
			fmt.Sprintf("estate value must be positive, got %s", estate.String()))
	}
	return nil
}

// ValidateHeirs checks quantities, duplicates and spouse consistency
func (v *RequestValidator) ValidateHeirs(heirs []entities.HeirInput) error {
	if len(heirs) == 0 {
		return entities.NewDomainError(entities.ErrorEmptyRequest, "heirs", "at least one heir is required")
	}

	seen := make(map[entities.HeirCategory]bool, len(heirs))
	for i, h := range heirs {
		field := fmt.Sprintf("heirs[%d]", i)
		if !h.Category.Valid() {
			return entities.NewDomainError(entities.ErrorUnknownCategory, field+".category_id",
				fmt.Sprintf("unknown heir category %d", int(h.Category)))
		}
		if h.Quantity < 1 {
			return entities.NewDomainError(entities.ErrorInvalidQuantity, field+".quantity",
				fmt.Sprintf("quantity must be at least 1, got %d", h.Quantity))
		}
		if limit, capped := maxQuantity[h.Category]; capped && h.Quantity > limit {
			return entities.NewDomainError(entities.ErrorInvalidQuantity, field+".quantity",
				fmt.Sprintf("%s allows at most %d, got %d", h.Category, limit, h.Quantity))
		}
		if seen[h.Category] {
			return entities.NewDomainError(entities.ErrorDuplicateCategory, field+".category_id",
				fmt.Sprintf("%s appears more than once", h.Category))
		}
		seen[h.Category] = true
	}

	if seen[entities.Husband] && seen[entities.Wife] {
		return entities.NewDomainError(entities.ErrorConflictingSpouse, "heirs",
			"husband and wife cannot both inherit from the same deceased")
	}
	return nil
}
