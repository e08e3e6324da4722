package core_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/booklending/core"
)

func Test_SuccessDecision_WithoutEvents_IsIdempotent(t *testing.T) {
	skipped := core.SkippedTitle{Title: "Nope", Reason: core.ErrNotFound}

	result := core.SuccessDecision(nil, skipped)

	assert.True(t, result.IsIdempotent())
	assert.False(t, result.HasEventsToAppend())
	assert.Equal(t, []core.SkippedTitle{skipped}, result.Skipped)
}

func Test_SuccessDecision_WithEvents(t *testing.T) {
	event := core.BuildBookAddedToCatalog(uuid.New(), "T", "A", "S", time.Now())

	result := core.SuccessDecision(core.DomainEvents{event})

	assert.True(t, result.HasEventsToAppend())
	assert.NoError(t, result.HasError())
	assert.Len(t, result.Events, 1)
}

func Test_ErrorDecision_HasError(t *testing.T) {
	err := errors.New("boom")

	result := core.ErrorDecision(err)

	assert.False(t, result.HasEventsToAppend())
	assert.ErrorIs(t, result.HasError(), err)
}
