package dto

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vsinha/faraid/pkg/domain/entities"
)

// HeirLine is one heir line as it appears in request files
type HeirLine struct {
	CategoryID     int    `json:"category_id" yaml:"category_id"`
	Quantity       int    `json:"quantity" yaml:"quantity"`
	BlockingReason string `json:"blocking_reason,omitempty" yaml:"blocking_reason,omitempty"`
	Status         string `json:"status,omitempty" yaml:"status,omitempty"`
}

// CalculationRequest is a single estate with its heirs
type CalculationRequest struct {
	Name   string     `json:"name,omitempty" yaml:"name,omitempty"`
	Estate string     `json:"estate_value" yaml:"estate"`
	Heirs  []HeirLine `json:"heirs" yaml:"heirs"`
}

// ChainRequest describes a chained succession: an heir of the first
// deceased died before the estate was divided
type ChainRequest struct {
	Estate      string     `json:"estate_value" yaml:"estate"`
	FirstHeirs  []HeirLine `json:"first_heirs" yaml:"first_heirs"`
	SecondDeath int        `json:"second_deceased_category_id" yaml:"second_deceased"`
	SecondHeirs []HeirLine `json:"second_heirs" yaml:"second_heirs"`
}

// BatchRequest holds independent problems evaluated side by side
type BatchRequest struct {
	Problems []CalculationRequest `json:"problems" yaml:"problems"`
}

// ParseEstate converts the estate string into a decimal
func ParseEstate(estate string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(estate)
	if err != nil {
		return decimal.Zero, entities.NewDomainError(entities.ErrorInvalidEstate, "estate_value",
			fmt.Sprintf("estate value %q is not a number", estate))
	}
	return value, nil
}

// ToHeirInputs converts request lines into domain inputs. Only the status is
// checked here; quantities and categories are validated by the calculator.
func ToHeirInputs(lines []HeirLine) ([]entities.HeirInput, error) {
	heirs := make([]entities.HeirInput, 0, len(lines))
	for i, line := range lines {
		status, err := entities.ParseUncertaintyStatus(line.Status)
		if err != nil {
			return nil, fmt.Errorf("heirs[%d]: %w", i, err)
		}
		heirs = append(heirs, entities.HeirInput{
			Category:       entities.HeirCategory(line.CategoryID),
			Quantity:       line.Quantity,
			BlockingReason: line.BlockingReason,
			Status:         status,
		})
	}
	return heirs, nil
}

// ToDomain converts the request into the calculator's arguments
func (r CalculationRequest) ToDomain() (decimal.Decimal, []entities.HeirInput, error) {
	estate, err := ParseEstate(r.Estate)
	if err != nil {
		return decimal.Zero, nil, err
	}
	heirs, err := ToHeirInputs(r.Heirs)
	if err != nil {
		return decimal.Zero, nil, err
	}
	return estate, heirs, nil
}
