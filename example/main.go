package main

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vsinha/faraid/pkg/faraid"
)

func main() {
	ctx := context.Background()
	engine := faraid.NewEngine()

	// Husband, mother and two full sisters: the fixed shares exceed the estate
	estate := decimal.NewFromInt(120_000_000)
	heirs := []faraid.Heir{
		faraid.NewHeir(faraid.Husband, 1),
		faraid.NewHeir(faraid.Mother, 1),
		faraid.NewHeir(faraid.FullSister, 2),
	}

	fmt.Println("Dividing an estate of", estate.StringFixed(2))
	result, err := engine.Calculate(ctx, estate, heirs...)
	if err != nil {
		fmt.Printf("calculation failed: %v\n", err)
		return
	}

	fmt.Printf("Base number: %d -> %d (%s)\n", result.Base.Initial, result.Base.Final, result.Status)
	for _, h := range result.Heirs {
		fmt.Printf("  %-22s x%d  %-6s %2d shares  %16s\n",
			h.Category, h.Quantity, h.FractionLabel, h.Share, h.Amount.StringFixed(2))
	}
	fmt.Println()
	for i, note := range result.Notes {
		fmt.Printf("  %d. %s\n", i+1, note)
	}
	fmt.Println()

	// The same family with an unborn child: pay the certain heirs what they
	// are owed in every outcome and hold back the rest
	unborn := faraid.NewHeir(faraid.Son, 1)
	unborn.Status = faraid.Unborn
	comparison, err := engine.CompareScenarios(ctx, estate, append(heirs, unborn)...)
	if err != nil {
		fmt.Printf("scenario comparison failed: %v\n", err)
		return
	}

	fmt.Println("With an unborn child:")
	for _, c := range comparison.Certain {
		fmt.Printf("  %-22s paid now %16s\n", c.Category, c.Minimum.StringFixed(2))
	}
	fmt.Printf("  %-22s          %16s\n", "suspended", comparison.Suspended.StringFixed(2))
}
