package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  LogLevel
	}{
		{"debug", Debug},
		{"DEBUG", Debug},
		{" info ", Info},
		{"warn", Warn},
		{"warning", Warn},
		{"error", Error},
		{"fatal", Fatal},
		{"", Info},
		{"nonsense", Info},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Parse(tt.input), "input %q", tt.input)
	}
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", Debug.String())
	assert.Equal(t, "WARN", Warn.String())
	assert.Equal(t, "FATAL", Fatal.String())
	assert.Equal(t, Debug, Parse(Debug.String()))
}
