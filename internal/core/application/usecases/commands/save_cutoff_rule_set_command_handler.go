package commands

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
)

// SaveCutoffRuleSetCommandHandler stores the rule set of a location,
// replacing any previous one. Promise evaluations read it on the next request.
type SaveCutoffRuleSetCommandHandler struct {
	uowFactory RulesUoWFactory
}

func NewSaveCutoffRuleSetCommandHandler(uowFactory RulesUoWFactory) SaveCutoffRuleSetCommandHandler {
	return SaveCutoffRuleSetCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *SaveCutoffRuleSetCommandHandler) Handle(ctx context.Context, cmd SaveCutoffRuleSetCommand) (err error) {
	if err = cmd.Validate(); err != nil {
		return err
	}

	ctx, span := tracer.Start(ctx, "SaveCutoffRuleSet")
	span.SetAttributes(attribute.String("location.id", cmd.RuleSet().LocationID()))
	defer func() { endSpan(span, err) }()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.CutoffRuleRepository().Save(ctx, cmd.RuleSet()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
