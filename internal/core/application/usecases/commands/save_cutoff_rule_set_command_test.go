package commands_test

import (
	"errors"
	"testing"

	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/application/usecases/commands"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/rules"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func jacksonDivisions() []commands.DivisionRuleInput {
	return []commands.DivisionRuleInput{
		{Code: "METALS", Cutoff: "15:00", NextDayEnabled: true, ShipDays: []int{1, 2, 3, 4, 5}},
		{Code: "PLASTICS", Cutoff: "13:30", NextDayEnabled: true, ShipDays: []int{1, 3, 5}, PickupSameDayEnabled: true},
	}
}

func TestNewSaveCutoffRuleSetCommand(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cmd, err := commands.NewSaveCutoffRuleSetCommand("JACKSON", "America/Chicago", jacksonDivisions(),
			[]commands.BlackoutInput{{Start: "2024-12-24", End: "2024-12-26", Reason: "Holiday"}})

		require.NoError(t, err)
		rs := cmd.RuleSet()
		assert.Equal(t, "JACKSON", rs.LocationID())
		assert.Equal(t, "America/Chicago", rs.Timezone())
		assert.Len(t, rs.DivisionRules(), 2)
		require.Len(t, rs.Blackouts(), 1)
		assert.Equal(t, "Holiday", rs.Blackouts()[0].Reason())

		rule, defaulted := rs.ResolveDivision("plastics", rules.BuiltinDefaultRule())
		assert.False(t, defaulted)
		assert.Equal(t, "13:30", rule.Cutoff().String())
		assert.True(t, rule.ShipDays().Contains(3))
		assert.False(t, rule.ShipDays().Contains(2))
	})

	t.Run("collects every malformed input", func(t *testing.T) {
		divisions := []commands.DivisionRuleInput{
			{Code: "METALS", Cutoff: "25:00", ShipDays: []int{1}},
			{Code: "", Cutoff: "15:00", ShipDays: []int{1}},
			{Code: "BAR", Cutoff: "15:00", ShipDays: []int{9}},
		}
		blackouts := []commands.BlackoutInput{{Start: "2024-12-26", End: "2024-12-24"}}

		_, err := commands.NewSaveCutoffRuleSetCommand("JACKSON", "America/Chicago", divisions, blackouts)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "divisions[0]")
		assert.Contains(t, err.Error(), "divisions[1].code")
		assert.Contains(t, err.Error(), "divisions[2]")
		assert.Contains(t, err.Error(), "blackouts[0]")
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("duplicate division", func(t *testing.T) {
		divisions := append(jacksonDivisions(), commands.DivisionRuleInput{Code: "METALS", Cutoff: "12:00", ShipDays: []int{1}})

		_, err := commands.NewSaveCutoffRuleSetCommand("JACKSON", "America/Chicago", divisions, nil)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "division METALS is listed more than once")
	})

	t.Run("unknown time zone", func(t *testing.T) {
		_, err := commands.NewSaveCutoffRuleSetCommand("JACKSON", "Mars/Olympus", jacksonDivisions(), nil)

		require.Error(t, err)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		require.ErrorIs(t, commands.SaveCutoffRuleSetCommand{}.Validate(),
			commands.ErrSaveCutoffRuleSetCommandIsNotConstructed)
	})
}

func TestSaveCutoffRuleSetCommandHandler_Handle(t *testing.T) {
	cmd, err := commands.NewSaveCutoffRuleSetCommand("JACKSON", "America/Chicago", jacksonDivisions(), nil)
	require.NoError(t, err)

	t.Run("saves and commits", func(t *testing.T) {
		repo := new(MockCutoffRuleRepository)
		uow := new(MockUoW)
		mock.InOrder(
			uow.On("Begin", mock.Anything).Return(nil).Once(),
			uow.On("CutoffRuleRepository").Return(repo).Once(),
			repo.On("Save", mock.Anything, cmd.RuleSet()).Return(nil).Once(),
			uow.On("Commit", mock.Anything).Return(nil).Once(),
			uow.On("Rollback", mock.Anything).Return(nil).Once(),
		)
		factory := new(MockRulesUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewSaveCutoffRuleSetCommandHandler(factory)
		require.NoError(t, h.Handle(t.Context(), cmd))
		repo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("save error rolls back", func(t *testing.T) {
		repo := new(MockCutoffRuleRepository)
		uow := new(MockUoW)
		uow.On("Begin", mock.Anything).Return(nil).Once()
		uow.On("CutoffRuleRepository").Return(repo).Once()
		repo.On("Save", mock.Anything, mock.Anything).Return(errors.New("save error")).Once()
		uow.On("Rollback", mock.Anything).Return(nil).Once()
		factory := new(MockRulesUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewSaveCutoffRuleSetCommandHandler(factory)
		err := h.Handle(t.Context(), cmd)

		require.EqualError(t, err, "save error")
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("not constructed", func(t *testing.T) {
		factory := new(MockRulesUoWFactory)
		h := commands.NewSaveCutoffRuleSetCommandHandler(factory)

		require.ErrorIs(t, h.Handle(t.Context(), commands.SaveCutoffRuleSetCommand{}),
			commands.ErrSaveCutoffRuleSetCommandIsNotConstructed)
	})
}

