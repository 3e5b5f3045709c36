package lib

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewDefaultLogger(t *testing.T) {
	// pre-define expected
	expected := NewLogger(LoggerConfig{
		Level: DebugLevel,
		Out:   os.Stdout,
	})
	// execute the function call
	got := NewDefaultLogger()
	// compare got vs expected
	require.Equal(t, got, expected)
}

func TestNewNullLogger(t *testing.T) {
	// pre-define expected
	expected := NewLogger(LoggerConfig{
		Level: DebugLevel,
		Out:   io.Discard,
	})
	// execute the function call
	got := NewNullLogger()
	// compare got vs expected
	require.Equal(t, got, expected)
}

func TestLoggerLevels(t *testing.T) {
	tests := []struct {
		name     string
		detail   string
		level    int32
		log      func(l LoggerI)
		expected string
		silent   bool
	}{
		{
			name:     "debug at debug level",
			detail:   "a debug message is written when the level is debug",
			level:    DebugLevel,
			log:      func(l LoggerI) { l.Debugf("nonce %d", 1) },
			expected: "DEBUG: nonce 1",
		},
		{
			name:   "debug at info level",
			detail: "a debug message is filtered when the level is info",
			level:  InfoLevel,
			log:    func(l LoggerI) { l.Debug("filtered") },
			silent: true,
		},
		{
			name:     "error at warn level",
			detail:   "an error message passes a warn level filter",
			level:    WarnLevel,
			log:      func(l LoggerI) { l.Error("stored payload") },
			expected: "ERROR: stored payload",
		},
		{
			name:     "literal percent",
			detail:   "an unformatted message is printed verbatim",
			level:    InfoLevel,
			log:      func(l LoggerI) { l.Info("100% relayed") },
			expected: "INFO: 100% relayed",
		},
		{
			name:     "tagged",
			detail:   "a tagged logger prefixes the message with the tag",
			level:    InfoLevel,
			log:      func(l LoggerI) { l.WithTag("chain-2").Info("delivered") },
			expected: "[chain-2]",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			buf := new(bytes.Buffer)
			l := NewLogger(LoggerConfig{Level: test.level, Out: buf})
			test.log(l)
			if test.silent {
				require.Zero(t, buf.Len())
				return
			}
			require.Contains(t, buf.String(), test.expected)
		})
	}
}
