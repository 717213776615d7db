package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 90*time.Minute, ParseDuration("1h30m", time.Hour))
	assert.Equal(t, time.Hour, ParseDuration("nonsense", time.Hour))
	assert.Equal(t, time.Hour, ParseDuration("", time.Hour))
}

func TestParseDateAcceptsBothFormats(t *testing.T) {
	date, err := ParseDate("2026-03-12")
	require.NoError(t, err)
	assert.Equal(t, 2026, date.Year())
	assert.Equal(t, time.March, date.Month())

	date, err = ParseDate("2026-03-12T10:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 10, date.Hour())

	_, err = ParseDate("12/03/2026")
	assert.Error(t, err)
}
