package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntakeSelection_Adjust(t *testing.T) {
	s := NewIntakeSelection(DefaultFoods())
	require.Len(t, s, 10)

	up, err := s.IncrementFrequency(2)
	require.NoError(t, err)
	assert.Equal(t, 1, up[2])
	assert.Equal(t, 0, s[2], "original selection must not change")

	up, err = up.IncrementFrequency(2)
	require.NoError(t, err)
	down, err := up.DecrementFrequency(2)
	require.NoError(t, err)
	assert.Equal(t, 1, down[2])
}

func TestIntakeSelection_DecrementClampsAtZero(t *testing.T) {
	s := NewIntakeSelection(DefaultFoods())

	got, err := s.DecrementFrequency(0)
	require.NoError(t, err)
	assert.Equal(t, 0, got[0])
}

func TestActivitySelection_Adjust(t *testing.T) {
	s := NewActivitySelection(DefaultActivities())

	got, err := s.IncrementDuration(0)
	require.NoError(t, err)
	got, err = got.IncrementDuration(0)
	require.NoError(t, err)
	assert.Equal(t, 20, got[0])

	got, err = got.DecrementDuration(0)
	require.NoError(t, err)
	assert.Equal(t, 10, got[0])
}

func TestActivitySelection_DecrementClampsAtZero(t *testing.T) {
	s := ActivitySelection{5, 0, 0, 0, 0, 0, 0, 0, 0, 0}

	got, err := s.DecrementDuration(0)
	require.NoError(t, err)
	assert.Equal(t, 0, got[0])

	got, err = got.DecrementDuration(0)
	require.NoError(t, err)
	assert.Equal(t, 0, got[0])
}

func TestSelection_IndexOutOfRange(t *testing.T) {
	intake := NewIntakeSelection(DefaultFoods())
	_, err := intake.IncrementFrequency(10)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
	_, err = intake.DecrementFrequency(-1)
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	activity := NewActivitySelection(DefaultActivities())
	_, err = activity.IncrementDuration(42)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}
