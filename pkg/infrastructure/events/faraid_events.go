package events

import (
	"errors"

	"github.com/vsinha/faraid/pkg/domain/entities"
)

const (
	CalculationStartedEvent   = "calculation.started"
	CalculationStageEvent     = "calculation.stage"
	CalculationCompletedEvent = "calculation.completed"
	CalculationFailedEvent    = "calculation.failed"
)

// AllCalculationEvents lists every event type published for a calculation
var AllCalculationEvents = []string{
	CalculationStartedEvent,
	CalculationStageEvent,
	CalculationCompletedEvent,
	CalculationFailedEvent,
}

type CalculationStarted struct {
	Estate string               `json:"estate"`
	Heirs  []entities.HeirInput `json:"heirs"`
}

type CalculationStage struct {
	Index int    `json:"index"`
	Note  string `json:"note"`
}

type CalculationCompleted struct {
	CalculationID string `json:"calculation_id"`
	BaseInitial   int64  `json:"base_number_initial"`
	BaseFinal     int64  `json:"base_number_final"`
	Status        string `json:"status"`
	SpecialCase   string `json:"special_case,omitempty"`
}

type CalculationFailed struct {
	Code  string `json:"code,omitempty"`
	Error string `json:"error"`
}

func NewCalculationStartedEvent(streamID, estate string, heirs []entities.HeirInput) Event {
	return NewEvent(CalculationStartedEvent, streamID, CalculationStarted{
		Estate: estate,
		Heirs:  append([]entities.HeirInput(nil), heirs...),
	})
}

func NewCalculationStageEvent(streamID string, index int, note string) Event {
	return NewEvent(CalculationStageEvent, streamID, CalculationStage{Index: index, Note: note})
}

func NewCalculationCompletedEvent(streamID string, result *entities.CalculationResult) Event {
	data := CalculationCompleted{
		CalculationID: result.ID,
		BaseInitial:   result.Base.Initial,
		BaseFinal:     result.Base.Final,
		Status:        result.Status.String(),
	}
	if result.SpecialCase != entities.NoSpecialCase {
		data.SpecialCase = result.SpecialCase.String()
	}
	return NewEvent(CalculationCompletedEvent, streamID, data)
}

func NewCalculationFailedEvent(streamID string, err error) Event {
	data := CalculationFailed{Error: err.Error()}
	var domainErr entities.DomainError
	if errors.As(err, &domainErr) {
		data.Code = string(domainErr.Code)
	}
	return NewEvent(CalculationFailedEvent, streamID, data)
}
