package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMultiplier_Range(t *testing.T) {
	for _, value := range []float64{1, 1.5, 2, 5} {
		m, err := NewMultiplier(value)
		require.NoError(t, err)
		assert.True(t, m.IsSet())
		got, ok := m.Float()
		assert.True(t, ok)
		assert.Equal(t, value, got)
	}

	for _, value := range []float64{0, 0.99, 5.01, -1} {
		_, err := NewMultiplier(value)
		assert.ErrorIs(t, err, ErrInvalidMultiplier)
	}
}

func TestMultiplier_ZeroValueIsNoOvertime(t *testing.T) {
	var m Multiplier
	assert.False(t, m.IsSet())
	assert.Equal(t, 1.5, m.Or(1.5))
	assert.Equal(t, NoOvertime(), m)
}

func TestMultiplier_JSONRoundTrip(t *testing.T) {
	m, err := NewMultiplier(2.5)
	require.NoError(t, err)

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, "2.5", string(data))

	var decoded Multiplier
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, m, decoded)

	var unset Multiplier
	require.NoError(t, json.Unmarshal([]byte("null"), &unset))
	assert.False(t, unset.IsSet())

	assert.ErrorIs(t, json.Unmarshal([]byte("9"), &decoded), ErrInvalidMultiplier)
}

func TestMultiplier_ScanNull(t *testing.T) {
	var m Multiplier
	require.NoError(t, m.Scan(nil))
	assert.False(t, m.IsSet())

	require.NoError(t, m.Scan(float64(1.5)))
	assert.Equal(t, "1.5", m.String())

	assert.Error(t, m.Scan(float64(7)))
}

func TestTimesheet_Validate_MultiplierPairing(t *testing.T) {
	base := Timesheet{
		RegularHours: 8,
		SalaryRate:   20,
		OrgRate:      35,
	}

	assert.NoError(t, base.Validate())

	withOvertime := base
	withOvertime.OvertimeHours = 2
	assert.ErrorIs(t, withOvertime.Validate(), ErrInvalidMultiplier)

	m, err := NewMultiplier(1.5)
	require.NoError(t, err)
	withOvertime.Multiplier = m
	assert.NoError(t, withOvertime.Validate())

	orphaned := base
	orphaned.Multiplier = m
	assert.ErrorIs(t, orphaned.Validate(), ErrInvalidMultiplier)

	negative := base
	negative.RegularHours = -1
	assert.ErrorIs(t, negative.Validate(), ErrInvalidHours)

	freeWork := base
	freeWork.OrgRate = 0
	assert.ErrorIs(t, freeWork.Validate(), ErrInvalidOrgRate)
}
