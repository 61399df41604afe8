package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vsinha/faraid/pkg/application/dto"
	"github.com/vsinha/faraid/pkg/application/services/orchestration"
	"github.com/vsinha/faraid/pkg/domain/entities"
	"github.com/vsinha/faraid/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/faraid/pkg/infrastructure/repositories/yamlfile"
	"github.com/vsinha/faraid/pkg/interfaces/cli/output"
)

func (a *app) newMauqufCommand() *cobra.Command {
	var flags requestFlags

	cmd := &cobra.Command{
		Use:   "mauquf",
		Short: "Divide an estate while one heir is uncertain",
		Long: `Mauquf handles one heir whose existence or sex is not yet known: a missing
person (status mafqud), an intersex heir (khuntsa) or an unborn child (haml).
Every possible resolution is calculated; each certain heir is paid the smallest
amount it receives in any of them and the rest of the estate is suspended.

Examples:
  faraid mauquf --estate 2400 --heir 4:1 --heir 18:1 --heir 1:1::haml
  faraid mauquf --estate 1200 --heir 3:1 --heir 12:1 --heir 1:1::mafqud`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.load()
			if err != nil {
				return err
			}
			estate, heirs, err := req.ToDomain()
			if err != nil {
				return err
			}

			comparison, err := a.orchestrator().CompareScenarios(cmd.Context(), estate, heirs)
			if err != nil {
				return fmt.Errorf("scenario comparison failed: %w", err)
			}
			return output.Comparison(dto.FromComparison(comparison, a.cfg.Currency, a.cfg.Precision), a.outputConfig(cmd))
		},
	}
	flags.register(cmd)
	return cmd
}

func (a *app) newMunasakhotCommand() *cobra.Command {
	var estate string

	cmd := &cobra.Command{
		Use:   "munasakhot <chain.yaml>",
		Short: "Divide an estate where an heir died before the division",
		Long: `Munasakhot solves the first estate, hands the share of the heir who died second
to that heir's own heirs and merges both problems onto one combined base.

The chain file names the estate, the first heirs, the category id of the second
deceased and the second deceased's heirs:

  estate: "4800"
  first_heirs:
    - {category_id: 4, quantity: 1}
    - {category_id: 1, quantity: 2}
  second_deceased: 1
  second_heirs:
    - {category_id: 18, quantity: 1}
    - {category_id: 7, quantity: 1}`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := yamlfile.NewLoader().LoadChain(args[0])
			if err != nil {
				return err
			}
			if estate != "" {
				req.Estate = estate
			}

			value, err := dto.ParseEstate(req.Estate)
			if err != nil {
				return err
			}
			first, err := dto.ToHeirInputs(req.FirstHeirs)
			if err != nil {
				return fmt.Errorf("first_heirs: %w", err)
			}
			second, err := dto.ToHeirInputs(req.SecondHeirs)
			if err != nil {
				return fmt.Errorf("second_heirs: %w", err)
			}

			result, err := a.orchestrator().RunChain(cmd.Context(), value, first, entities.HeirCategory(req.SecondDeath), second)
			if err != nil {
				return fmt.Errorf("chained succession failed: %w", err)
			}
			return output.Chain(dto.FromChain(result, a.cfg.Currency, a.cfg.Precision), a.outputConfig(cmd))
		},
	}
	cmd.Flags().StringVar(&estate, "estate", "", "estate value (overrides the chain file)")
	return cmd
}

func (a *app) newGharqaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gharqa <problems.yaml|problems.csv>",
		Short: "Divide the estates of people who died together",
		Long: `Gharqa treats relatives who died in the same event, with no known order of
death, as not inheriting from each other. Each estate is divided independently
between the remaining heirs. Problems are read from a YAML batch file or a CSV
file with the header problem,estate,category_id,quantity,blocking_reason,status.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := loadBatch(args[0])
			if err != nil {
				return err
			}

			problems := make([]orchestration.Problem, 0, len(req.Problems))
			for i, p := range req.Problems {
				estate, heirs, err := p.ToDomain()
				if err != nil {
					return fmt.Errorf("problem %d (%s): %w", i+1, p.Name, err)
				}
				problems = append(problems, orchestration.Problem{Name: p.Name, Estate: estate, Heirs: heirs})
			}

			results, err := a.orchestrator().RunBatch(cmd.Context(), problems)
			if err != nil {
				return fmt.Errorf("batch failed: %w", err)
			}

			batch := dto.BatchResult{Problems: make([]dto.NamedResult, 0, len(results))}
			for i, r := range results {
				batch.Problems = append(batch.Problems, dto.NamedResult{
					Name:   problems[i].Name,
					Result: dto.FromResult(r, a.cfg.Currency, a.cfg.Precision),
				})
			}
			return output.Batch(batch, a.outputConfig(cmd))
		},
	}
	return cmd
}

func loadBatch(filename string) (*dto.BatchRequest, error) {
	if isCSV(filename) {
		return csv.NewLoader().LoadBatch(filename)
	}
	return yamlfile.NewLoader().LoadBatch(filename)
}

func isCSV(filename string) bool {
	return len(filename) > 4 && filename[len(filename)-4:] == ".csv"
}
