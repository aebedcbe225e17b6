package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrEmptyInput", ErrEmptyInput},
		{"ErrTransport", ErrTransport},
		{"ErrStorage", ErrStorage},
		{"ErrNotReplayable", ErrNotReplayable},
		{"ErrNoAnswer", ErrNoAnswer},
		{"ErrServiceUnavailable", ErrServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrEmptyInput(t *testing.T) {
	assert.Equal(t, "question is empty", ErrEmptyInput.Error())
	assert.False(t, errors.Is(ErrEmptyInput, ErrTransport))
}

func TestTransportError_StatusCode(t *testing.T) {
	err := &TransportError{StatusCode: 500}

	assert.Equal(t, "HTTP error: 500", err.Error())
	assert.True(t, errors.Is(err, ErrTransport))
	assert.False(t, errors.Is(err, ErrStorage))
}

func TestTransportError_Network(t *testing.T) {
	cause := errors.New("connection refused")
	err := &TransportError{Err: cause}

	assert.Contains(t, err.Error(), "connection refused")
	assert.True(t, errors.Is(err, ErrTransport))
	assert.True(t, errors.Is(err, cause))
}

func TestTransportError_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("consult: %w", &TransportError{StatusCode: 503})

	var te *TransportError
	require.True(t, errors.As(wrapped, &te))
	assert.Equal(t, 503, te.StatusCode)
	assert.True(t, errors.Is(wrapped, ErrTransport))
}

func TestTransportError_Empty(t *testing.T) {
	err := &TransportError{}
	assert.Equal(t, ErrTransport.Error(), err.Error())
}
