package lib

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	// calculate expected
	expected := Config{
		MainConfig:       DefaultMainConfig(),
		RPCConfig:        DefaultRPCConfig(),
		EndpointConfig:   DefaultEndpointConfig(),
		StoreConfig:      DefaultStoreConfig(),
		MetricsConfig:    DefaultMetricsConfig(),
		SimulationConfig: DefaultSimulationConfig(),
	}
	// execute the function call
	got := DefaultConfig()
	// compare got vs expected
	require.Equal(t, expected, got)
	require.Equal(t, ResumePolicyDrain, got.ResumePolicy)
	require.Equal(t, []uint64{SrcChainId, DstChainId}, got.ChainIds)
}

func TestFileConfig(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), ConfigFilePath)
	// define a variable to test upon
	config := DefaultConfig()
	config.ChainFeeMultiplierBps[DstChainId] = 15_000
	config.ResumePolicy = ResumePolicyPromote
	// write to file
	require.NoError(t, config.WriteToFile(filePath))
	// read from file
	got, err := NewConfigFromFile(filePath)
	require.NoError(t, err)
	// compare got vs expected
	require.Equal(t, config, got)
}

func TestFileConfigFillsBlanks(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), ConfigFilePath)
	// a partial file only overrides the log level
	require.NoError(t, os.WriteFile(filePath, []byte(`{"logLevel":"error"}`), os.ModePerm))
	got, err := NewConfigFromFile(filePath)
	require.NoError(t, err)
	require.Equal(t, ErrorLevel, got.GetLogLevel())
	// everything else is the default
	require.Equal(t, DefaultEndpointConfig(), got.EndpointConfig)
}

func TestGetLogLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected int32
	}{
		{"debug", DebugLevel},
		{"INFO", InfoLevel},
		{"warning", WarnLevel},
		{"error", ErrorLevel},
		{"unknown", DebugLevel},
	}
	for _, test := range tests {
		t.Run(test.level, func(t *testing.T) {
			m := MainConfig{LogLevel: test.level}
			require.Equal(t, test.expected, m.GetLogLevel())
		})
	}
}
