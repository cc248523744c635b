package intake

import (
	"context"
	"errors"

	"github.com/Dhoini/olio-backoffice/internal/domain"
	"github.com/Dhoini/olio-backoffice/internal/metrics"
	"github.com/Dhoini/olio-backoffice/pkg/logger"
	"github.com/google/uuid"
)

// Шаги приема заявки
const (
	StepValidate       = "validate"
	StepCrossValidate  = "cross_validate"
	StepPersist        = "persist"
	StepUpsertCustomer = "upsert_customer"
	StepNotify         = "notify"
	StepPublishEvent   = "publish_event"
)

// StepResult итог одного шага. Сбой критичного шага останавливает прием,
// сбой необязательного только записывается.
type StepResult struct {
	Name     string `json:"name"`
	Critical bool   `json:"critical"`
	Err      error  `json:"-"`
}

// OK сообщает, завершился ли шаг без ошибки
func (r StepResult) OK() bool {
	return r.Err == nil
}

// Receipt результат приема: ID основной записи и итоги всех выполненных шагов
type Receipt struct {
	ID    uuid.UUID    `json:"id"`
	Steps []StepResult `json:"steps"`
}

// Failed возвращает шаги, завершившиеся ошибкой
func (r Receipt) Failed() []StepResult {
	var failed []StepResult
	for _, s := range r.Steps {
		if !s.OK() {
			failed = append(failed, s)
		}
	}
	return failed
}

// pipeline выполняет шаги по порядку и решает, какие сбои прерывают прием
type pipeline struct {
	kind    string
	log     *logger.Logger
	metrics metrics.IntakeMetrics
	results []StepResult
}

func newPipeline(kind string, log *logger.Logger, m metrics.IntakeMetrics) *pipeline {
	return &pipeline{kind: kind, log: log, metrics: m}
}

// critical выполняет шаг, ошибка которого возвращается вызывающему
func (p *pipeline) critical(ctx context.Context, name string, fn func(context.Context) error) error {
	err := fn(ctx)
	p.results = append(p.results, StepResult{Name: name, Critical: true, Err: err})
	if err != nil {
		p.log.Debugw("Intake halted", "kind", p.kind, "step", name, "error", err)
	}
	return err
}

// bestEffort выполняет шаг, ошибка которого логируется и не влияет на результат
func (p *pipeline) bestEffort(ctx context.Context, name string, fn func(context.Context) error) {
	err := fn(ctx)
	p.results = append(p.results, StepResult{Name: name, Err: err})
	if err == nil {
		return
	}

	p.metrics.IncStepFailure(p.kind, name)
	if errors.Is(err, domain.ErrNotConfigured) {
		p.log.Warnw("Intake step skipped", "kind", p.kind, "step", name, "reason", err)
		return
	}
	p.log.Errorw("Intake step failed", "kind", p.kind, "step", name, "error", err)
}

func (p *pipeline) receipt(id uuid.UUID) Receipt {
	return Receipt{ID: id, Steps: p.results}
}

// outcome метка результата для метрик
func outcome(err error) string {
	switch {
	case err == nil:
		return "accepted"
	case errors.Is(err, domain.ErrInvalidInput):
		return "rejected"
	default:
		return "failed"
	}
}
