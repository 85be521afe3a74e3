package types

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTime_Unmarshal(t *testing.T) {
	t.Parallel()
	var ts Time

	require.NoError(t, json.Unmarshal([]byte(`"1722030653718"`), &ts))
	assert.Equal(t, time.UnixMilli(1722030653718), ts.Time)

	require.NoError(t, json.Unmarshal([]byte(`1722030653718`), &ts))
	assert.Equal(t, time.UnixMilli(1722030653718), ts.Time)

	require.NoError(t, json.Unmarshal([]byte(`"1722030653"`), &ts))
	assert.Equal(t, time.Unix(1722030653, 0), ts.Time)

	for _, zero := range []string{`""`, `null`, `"0"`, `0`} {
		require.NoError(t, json.Unmarshal([]byte(zero), &ts), zero)
		assert.True(t, ts.IsZero(), zero)
	}
}

func TestTime_UnmarshalErrors(t *testing.T) {
	t.Parallel()
	var ts Time
	err := ts.UnmarshalJSON([]byte(`"2024-01-01"`))
	assert.True(t, errors.Is(err, ErrInvalidNumericString))

	err = ts.UnmarshalJSON([]byte(`true`))
	assert.True(t, errors.Is(err, ErrInvalidFieldType))

	err = ts.UnmarshalJSON([]byte(`12345`))
	assert.True(t, errors.Is(err, ErrInvalidFieldType))
}

func TestTime_Marshal(t *testing.T) {
	t.Parallel()
	b, err := json.Marshal(UnixMilli(1722030653718))
	require.NoError(t, err)
	assert.Equal(t, `"1722030653718"`, string(b))

	b, err = json.Marshal(Time{})
	require.NoError(t, err)
	assert.Equal(t, `""`, string(b))
}
