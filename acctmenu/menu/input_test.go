package menu

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLine(t *testing.T) {
	s, out := newTestSession(nil, " bob \r\nlast")

	line, err := s.readLine("Name: ")
	require.NoError(t, err)
	assert.Equal(t, " bob ", line)
	assert.Equal(t, "Name: ", out.String())

	line, err = s.readLine("Again: ")
	require.NoError(t, err)
	assert.Equal(t, "last", line)

	_, err = s.readLine("More: ")
	assert.ErrorIs(t, err, io.EOF)
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"  y\t\n", true},
		{"Y\n", false},
		{"yes\n", false},
		{"\n", false},
		{"n\n", false},
	}

	for _, tt := range tests {
		s, out := newTestSession(nil, tt.input)
		got, err := s.confirm("Proceed?")
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
		assert.Equal(t, "Proceed? [y/N]: ", out.String())
	}
}
