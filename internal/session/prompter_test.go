package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		input   string
		start   int
		end     int
		wantErr bool
	}{
		{input: "1-5", start: 1, end: 5},
		{input: " 2 - 4 ", start: 2, end: 4},
		{input: "3", start: 3, end: 3},
		{input: "5-1", start: 5, end: 1}, // inverted parses; the session treats it as empty
		{input: "", wantErr: true},
		{input: "a-b", wantErr: true},
		{input: "1-", wantErr: true},
		{input: "one", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			start, end, err := parseRange(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
		})
	}
}

func TestRangeValidator(t *testing.T) {
	validate := rangeValidator(10)

	assert.NoError(t, validate("1-5"))
	assert.NoError(t, validate("10"))
	assert.NoError(t, validate("7-3")) // inverted is allowed, summarizes nothing
	assert.Error(t, validate("0-5"))
	assert.Error(t, validate("1-11"))
	assert.Error(t, validate("nope"))
	assert.Error(t, validate(42))
}
