package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOutcome(t *testing.T) {
	outcome, err := ParseOutcome("No_Link")
	require.NoError(t, err)
	assert.Equal(t, OutcomeNoLink, outcome)
	assert.True(t, outcome.IsValid())
	assert.Equal(t, "no_link", outcome.String())

	_, err = ParseOutcome("retried")
	assert.ErrorIs(t, err, ErrInvalidOutcome)

	assert.Equal(t, []string{"invalid", "duplicate", "no_link", "delivered", "failed"}, OutcomeNames())
}
