package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapError(t *testing.T) {
	tests := []struct {
		name            string
		originalError   error
		message         string
		expectedMessage string
	}{
		{
			name:            "wrap simple error",
			originalError:   errors.New("original error"),
			message:         "wrapper message",
			expectedMessage: "wrapper message: original error",
		},
		{
			name:            "empty wrapper message",
			originalError:   errors.New("original error"),
			message:         "",
			expectedMessage: ": original error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrappedError := WrapError(tt.originalError, tt.message)
			assert.Error(t, wrappedError)
			assert.Equal(t, tt.expectedMessage, wrappedError.Error())
			assert.ErrorIs(t, wrappedError, tt.originalError)
		})
	}

	assert.NoError(t, WrapError(nil, "ignored"))
	assert.NoError(t, WrapErrorf(nil, "ignored %d", 1))
}

func TestConfigurationError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ConfigurationError
		expected string
	}{
		{
			name:     "section and field",
			err:      NewConfigurationError("gallery", "interval", "must be one of: 1, 2, 5"),
			expected: "configuration error in section 'gallery', field 'interval': must be one of: 1, 2, 5",
		},
		{
			name:     "section only",
			err:      NewConfigurationError("gallery", "", "bad window"),
			expected: "configuration error in section 'gallery': bad window",
		},
		{
			name:     "reason only",
			err:      NewConfigurationError("", "", "broken"),
			expected: "configuration error: broken",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
			assert.ErrorIs(t, tt.err, ErrInvalidConfiguration)
			assert.True(t, IsConfigurationError(WrapError(tt.err, "request failed")))
		})
	}

	assert.False(t, IsConfigurationError(errors.New("plain")))
}

func TestCombineErrors(t *testing.T) {
	first := errors.New("first")

	assert.NoError(t, CombineErrors(nil))
	assert.NoError(t, CombineErrors([]error{nil, nil}))
	assert.Same(t, first, CombineErrors([]error{nil, first}))
	assert.EqualError(t, CombineErrors([]error{first, errors.New("second")}), "multiple errors occurred: [first; second]")
}

func TestJoinInts(t *testing.T) {
	assert.Equal(t, "1, 2, 5, 10, 15", JoinInts([]int{1, 2, 5, 10, 15}))
	assert.Equal(t, "", JoinInts(nil))
}
