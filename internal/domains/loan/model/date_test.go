package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateUnmarshalAcceptsCommonFormats(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"iso", `"2023-05-10"`},
		{"day first", `"10-05-2023"`},
		{"slashes", `"2023/05/10"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			require.NoError(t, json.Unmarshal([]byte(tt.in), &d))

			y, m, day := d.Date()
			assert.Equal(t, 2023, y)
			assert.Equal(t, 5, int(m))
			assert.Equal(t, 10, day)
		})
	}
}

func TestDateUnmarshalRejectsGarbage(t *testing.T) {
	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"not-a-date"`), &d))
}

func TestDateMarshalRendersISO(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"10-05-2023"`), &d))

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2023-05-10"`, string(out))
}

func TestTodayIsLocalCalendarDay(t *testing.T) {
	now := time.Now()
	today := Today()

	y, m, d := now.Date()
	ty, tm, td := today.Date()
	assert.Equal(t, y, ty)
	assert.Equal(t, m, tm)
	assert.Equal(t, d, td)

	assert.Equal(t, 0, today.Hour())
	assert.Equal(t, 0, today.Minute())
	assert.Equal(t, now.Location(), today.Location())
}

func TestDateMarshalZeroIsNull(t *testing.T) {
	out, err := json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, `null`, string(out))
}
