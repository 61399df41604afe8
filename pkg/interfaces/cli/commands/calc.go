package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vsinha/faraid/pkg/application/dto"
	"github.com/vsinha/faraid/pkg/application/services/faraid"
	"github.com/vsinha/faraid/pkg/domain/entities"
	"github.com/vsinha/faraid/pkg/infrastructure/events"
	"github.com/vsinha/faraid/pkg/interfaces/cli/output"
)

func (a *app) newCalcCommand() *cobra.Command {
	var (
		flags requestFlags
		audit bool
	)

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Divide an estate between its heirs",
		Long: `Calc runs the full allocation for one estate and prints every heir's fraction,
share count and amount together with the steps taken.

Examples:
  faraid calc --estate 90000 --heir 18:1 --heir 12:3
  faraid calc --request estate.yaml --format json
  faraid calc --estate 1200 --heirs heirs.csv --audit`,
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
			for _, h := range heirs {
				if h.Status != entities.Certain {
					return fmt.Errorf("%s is marked %s: use 'faraid mauquf' for uncertain heirs", h.Category, h.Status)
				}
			}

			if !audit {
				result, err := a.calculator().Calculate(cmd.Context(), estate, heirs)
				if err != nil {
					return fmt.Errorf("calculation failed: %w", err)
				}
				return output.Calculation(dto.FromResult(result, a.cfg.Currency, a.cfg.Precision), a.outputConfig(cmd))
			}

			store := events.NewInMemoryEventStore(a.logger)
			service := faraid.NewEventDrivenCalculatorServiceWithConfig(a.directory, a.engineConfig(), store)
			result, streamID, calcErr := service.Calculate(cmd.Context(), estate, heirs)
			store.Wait()

			if calcErr == nil {
				if err := output.Calculation(dto.FromResult(result, a.cfg.Currency, a.cfg.Precision), a.outputConfig(cmd)); err != nil {
					return err
				}
			}
			stream, err := store.ReadEvents(streamID, 0)
			if err != nil {
				return fmt.Errorf("failed to read audit trail: %w", err)
			}
			a.logger.Debug("audit trail recorded", zap.String("stream_id", streamID), zap.Int("events", len(stream)))
			if err := output.Audit(stream, a.outputConfig(cmd)); err != nil {
				return err
			}
			if calcErr != nil {
				return fmt.Errorf("calculation failed: %w", calcErr)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&audit, "audit", false, "print the audit trail of the calculation")
	return cmd
}

func (a *app) newHeirsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "heirs",
		Short: "List the heir categories and their ids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, err := a.directory.GetAllCategories()
			if err != nil {
				return err
			}
			return output.HeirDirectory(categories, a.outputConfig(cmd))
		},
	}
}
