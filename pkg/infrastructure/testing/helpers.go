package testing

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/faraid/pkg/domain/entities"
	"github.com/vsinha/faraid/pkg/infrastructure/repositories/memory"
)

// Scenario is a named heir set with an estate value
type Scenario struct {
	Name   string
	Estate decimal.Decimal
	Heirs  []entities.HeirInput
}

// Heir builds a request line without a blocking attribute
func Heir(category entities.HeirCategory, quantity int) entities.HeirInput {
	return entities.HeirInput{Category: category, Quantity: quantity}
}

// DisqualifiedHeir builds a request line carrying a blocking attribute
func DisqualifiedHeir(category entities.HeirCategory, quantity int, reason string) entities.HeirInput {
	return entities.HeirInput{Category: category, Quantity: quantity, BlockingReason: reason}
}

// Heirs builds request lines of one heir each
func Heirs(categories ...entities.HeirCategory) []entities.HeirInput {
	heirs := make([]entities.HeirInput, 0, len(categories))
	for _, c := range categories {
		heirs = append(heirs, Heir(c, 1))
	}
	return heirs
}

// BuildStandardDirectory returns the directory with the 25 standard categories
func BuildStandardDirectory() *memory.HeirDirectory {
	return memory.NewStandardHeirDirectory()
}

// BuildClassicalScenarios returns the named classical cases used across test suites
func BuildClassicalScenarios() []Scenario {
	estate := decimal.NewFromInt(120_000_000)
	return []Scenario{
		{
			Name:   "gharrawain_husband",
			Estate: estate,
			Heirs:  Heirs(entities.Husband, entities.Mother, entities.Father),
		},
		{
			Name:   "gharrawain_wife",
			Estate: estate,
			Heirs:  Heirs(entities.Wife, entities.Mother, entities.Father),
		},
		{
			Name:   "musytarakah",
			Estate: estate,
			Heirs: []entities.HeirInput{
				Heir(entities.Husband, 1),
				Heir(entities.Mother, 1),
				Heir(entities.MaternalBrother, 2),
				Heir(entities.FullBrother, 1),
			},
		},
		{
			Name:   "akdariyyah",
			Estate: estate,
			Heirs:  Heirs(entities.Husband, entities.Mother, entities.Grandfather, entities.FullSister),
		},
		{
			Name:   "jadd_wal_ikhwah",
			Estate: estate,
			Heirs: []entities.HeirInput{
				Heir(entities.Husband, 1),
				Heir(entities.Mother, 1),
				Heir(entities.Grandfather, 1),
				Heir(entities.FullSister, 2),
			},
		},
		{
			Name:   "al_add",
			Estate: estate,
			Heirs: Heirs(entities.PaternalGrandmother, entities.Grandfather, entities.FullSister,
				entities.PaternalBrother, entities.PaternalSister),
		},
		{
			Name:   "aul_husband_two_sisters",
			Estate: estate,
			Heirs:  []entities.HeirInput{Heir(entities.Husband, 1), Heir(entities.FullSister, 2)},
		},
		{
			Name:   "radd_mother_daughter",
			Estate: estate,
			Heirs:  Heirs(entities.Mother, entities.Daughter),
		},
		{
			Name:   "inkisar_mother_six_uncles",
			Estate: estate,
			Heirs:  []entities.HeirInput{Heir(entities.Mother, 1), Heir(entities.FullUncle, 6)},
		},
	}
}
