package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockLogger_DerivedLoggersShareEntries(t *testing.T) {
	mock := NewMockLogger()
	derived := mock.WithField(FieldOperation, "save").WithError(errors.New("boom"))

	derived.Warn("write degraded", F(FieldKey, "k"))
	mock.Info("plain")

	entries := mock.GetEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, "WARN", entries[0].Level)
	assert.EqualError(t, entries[0].Error, "boom")
	assert.Equal(t, []Field{{Key: FieldOperation, Value: "save"}, {Key: FieldKey, Value: "k"}}, entries[0].Fields)
	assert.True(t, mock.HasEntry("INFO", "plain"))
	assert.Len(t, mock.GetEntriesByLevel("WARN"), 1)

	mock.Clear()
	assert.Empty(t, mock.GetEntries())
}

func TestMockLogger_ZeroValueUsable(t *testing.T) {
	var mock MockLogger
	mock.Debug("x")
	assert.True(t, mock.HasEntry("DEBUG", "x"))
}
