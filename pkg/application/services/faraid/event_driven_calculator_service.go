package faraid

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vsinha/faraid/pkg/domain/entities"
	"github.com/vsinha/faraid/pkg/domain/repositories"
	"github.com/vsinha/faraid/pkg/infrastructure/events"
)

// EventDrivenCalculatorService publishes an audit stream for every calculation
type EventDrivenCalculatorService struct {
	calculator *CalculatorService
	eventStore events.EventStore
	logger     *zap.Logger
}

func NewEventDrivenCalculatorService(
	directory repositories.HeirDirectory,
	eventStore events.EventStore,
) *EventDrivenCalculatorService {
	return NewEventDrivenCalculatorServiceWithConfig(directory, EngineConfig{}, eventStore)
}

func NewEventDrivenCalculatorServiceWithConfig(
	directory repositories.HeirDirectory,
	config EngineConfig,
	eventStore events.EventStore,
) *EventDrivenCalculatorService {
	svc := NewCalculatorServiceWithConfig(directory, config)
	return &EventDrivenCalculatorService{
		calculator: svc,
		eventStore: eventStore,
		logger:     svc.logger,
	}
}

// Calculate runs the calculation and records it as one event stream.
// The stream id is returned alongside the result so callers can read the audit trail back.
func (s *EventDrivenCalculatorService) Calculate(
	ctx context.Context,
	estate decimal.Decimal,
	heirs []entities.HeirInput,
) (*entities.CalculationResult, string, error) {
	streamID := uuid.NewString()
	s.publish(events.NewCalculationStartedEvent(streamID, estate.String(), heirs))

	result, err := s.calculator.Calculate(ctx, estate, heirs)
	if err != nil {
		s.publish(events.NewCalculationFailedEvent(streamID, err))
		return nil, streamID, err
	}

	for i, note := range result.Notes {
		s.publish(events.NewCalculationStageEvent(streamID, i+1, note))
	}
	s.publish(events.NewCalculationCompletedEvent(streamID, result))

	return result, streamID, nil
}

func (s *EventDrivenCalculatorService) publish(event events.Event) {
	if err := s.eventStore.AppendEvent(event.StreamID(), event); err != nil {
		s.logger.Warn("failed to publish event",
			zap.String("event_type", event.Type()),
			zap.Error(err),
		)
	}
}
