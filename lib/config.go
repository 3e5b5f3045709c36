package lib

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/units"
)

/* This file implements logic for 'user controlled' configurations of each module of the simulator */

const (
	// GLOBAL CONSTANTS
	UnknownChainId = uint64(0) // the default 'unknown' chain id
	SrcChainId     = uint64(1) // the default 'source' chain of the simulation
	DstChainId     = uint64(2) // the default 'destination' chain of the simulation
)

const (
	// FILE NAMES in the 'data directory'
	ConfigFilePath = "config.json" // the file path for the simulator configuration
)

// resume policies for the inbound queue after a forced clear
const (
	ResumePolicyDrain   = "drain"   // apply queued messages head-first until one fails
	ResumePolicyPromote = "promote" // move the queue head into the stored payload slot without applying it
)

// Config is the structure of the user configuration options for the simulator
type Config struct {
	MainConfig       // main options spanning over all modules
	RPCConfig        // operator rpc options
	EndpointConfig   // messaging endpoint options
	StoreConfig      // persistence options
	MetricsConfig    // telemetry options
	SimulationConfig // simulated network options
}

// DefaultConfig() returns a Config with developer set options
func DefaultConfig() Config {
	return Config{
		MainConfig:       DefaultMainConfig(),
		RPCConfig:        DefaultRPCConfig(),
		EndpointConfig:   DefaultEndpointConfig(),
		StoreConfig:      DefaultStoreConfig(),
		MetricsConfig:    DefaultMetricsConfig(),
		SimulationConfig: DefaultSimulationConfig(),
	}
}

// MAIN CONFIG BELOW

type MainConfig struct {
	LogLevel string `json:"logLevel"` // any level includes the levels above it: debug < info < warning < error
}

// DefaultMainConfig() sets log level to 'info'
func DefaultMainConfig() MainConfig {
	return MainConfig{
		LogLevel: "info", // everything but debug is the default
	}
}

// GetLogLevel() parses the log string in the config file into a LogLevel Enum
func (m *MainConfig) GetLogLevel() int32 {
	switch {
	case strings.Contains(strings.ToLower(m.LogLevel), "deb"):
		return DebugLevel
	case strings.Contains(strings.ToLower(m.LogLevel), "inf"):
		return InfoLevel
	case strings.Contains(strings.ToLower(m.LogLevel), "war"):
		return WarnLevel
	case strings.Contains(strings.ToLower(m.LogLevel), "err"):
		return ErrorLevel
	default:
		return DebugLevel
	}
}

// RPC CONFIG BELOW

type RPCConfig struct {
	AdminPort   string `json:"adminPort"`   // the port where the operator rpc server is hosted
	AdminRPCUrl string `json:"adminRPCUrl"` // the url where the operator rpc server is hosted
	TimeoutS    int    `json:"timeoutS"`    // the rpc request timeout in seconds
}

// DefaultRPCConfig() serves the operator rpc on localhost:50003
func DefaultRPCConfig() RPCConfig {
	return RPCConfig{
		AdminPort:   "50003",                  // the admin rpc is served on localhost:50003
		AdminRPCUrl: "http://localhost:50003", // use a local admin rpc by default
		TimeoutS:    3,                        // the rpc timeout is 3 seconds
	}
}

// ENDPOINT CONFIG BELOW

// EndpointConfig defines the deterministic fee model and the delivery limits of a messaging endpoint
// NOTES:
// - nativeFee = (BaseFee + FeePerByte*len(payload) + GasPrice*gas) * multiplier(dstChain) + nativeForDst [+ ProtocolFee]
// - ProtocolFee is paid in the alternate token when the sender opts into it (useZro)
type EndpointConfig struct {
	BaseFee               uint64            `json:"baseFee"`               // flat fee charged per message
	FeePerByte            uint64            `json:"feePerByte"`            // fee charged per payload byte
	GasPrice              uint64            `json:"gasPrice"`              // price of a unit of destination gas
	ProtocolFee           uint64            `json:"protocolFee"`           // protocol fee (native unless paid in the alternate token)
	DefaultGas            uint64            `json:"defaultGas"`            // the gas assumed when adapter params are empty
	ChainFeeMultiplierBps map[uint64]uint64 `json:"chainFeeMultiplierBps"` // per destination chain multiplier in basis points
	MaxPayloadBytes       uint64            `json:"maxPayloadBytes"`       // the largest payload an endpoint will send
	ResumePolicy          string            `json:"resumePolicy"`          // what happens to the inbound queue after a forced clear
}

// DefaultEndpointConfig() returns the developer recommended endpoint configuration
func DefaultEndpointConfig() EndpointConfig {
	return EndpointConfig{
		BaseFee:               10_000,                 // flat 10k wei per message
		FeePerByte:            100,                    // 100 wei per payload byte
		GasPrice:              1,                      // 1 wei per unit of gas
		ProtocolFee:           1_000,                  // 1k wei protocol fee
		DefaultGas:            200_000,                // receive default gas
		ChainFeeMultiplierBps: map[uint64]uint64{},    // no chain specific pricing by default
		MaxPayloadBytes:       uint64(10 * units.KiB), // 10 KB max payload
		ResumePolicy:          ResumePolicyDrain,      // deliver the backlog after a forced clear
	}
}

// STORE CONFIG BELOW

// StoreConfig is user configurations for the key value database
type StoreConfig struct {
	DataDirPath string `json:"dataDirPath"` // path of the designated folder where the simulator stores its data
	DBName      string `json:"dbName"`      // name of the database
	InMemory    bool   `json:"inMemory"`    // non-disk database
}

// DefaultDataDirPath() is $USERHOME/.omnichain
func DefaultDataDirPath() string {
	// get the user home
	home, err := os.UserHomeDir()
	// if unable to get the user home
	if err != nil {
		// fatal error
		panic(err)
	}
	// exit with full default data directory path
	return filepath.Join(home, ".omnichain")
}

// DefaultStoreConfig() returns the developer recommended store configuration
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		DataDirPath: DefaultDataDirPath(), // use the default data dir path
		DBName:      "omnichain",          // 'omnichain' database name
		InMemory:    true,                 // simulated chains live in process memory
	}
}

// METRICS CONFIG BELOW

// MetricsConfig represents the configuration for the metrics server
type MetricsConfig struct {
	Enabled           bool   `json:"enabled"`           // if the metrics are enabled
	PrometheusAddress string `json:"prometheusAddress"` // the address of the server
}

// DefaultMetricsConfig() returns the default metrics configuration
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Enabled:           true,           // enabled by default
		PrometheusAddress: "0.0.0.0:9090", // the default prometheus address
	}
}

// SIMULATION CONFIG BELOW

// SimulationConfig describes the simulated network the 'start' command builds
type SimulationConfig struct {
	ChainIds        []uint64 `json:"chainIds"`        // the simulated chains; every pair is wired both ways
	TokenName       string   `json:"tokenName"`       // the name of the omnichain token
	TokenSymbol     string   `json:"tokenSymbol"`     // the symbol of the omnichain token
	Owner           string   `json:"owner"`           // hex address that receives the initial supply
	GlobalSupply    string   `json:"globalSupply"`    // base 10 initial supply minted on the first chain (18 decimals)
	MinDstGas       uint64   `json:"minDstGas"`       // minimum destination gas for a token transfer
	RelayerPollMS   uint64   `json:"relayerPollMS"`   // how often the relayer scans for blocked paths
	RelayerRetries  uint64   `json:"relayerRetries"`  // how many backoff attempts the relayer makes per stuck payload
	RelayerDisabled bool     `json:"relayerDisabled"` // don't run the relayer
}

// DefaultSimulationConfig() mirrors the canonical two chain bridge setup
func DefaultSimulationConfig() SimulationConfig {
	return SimulationConfig{
		ChainIds:        []uint64{SrcChainId, DstChainId},
		TokenName:       "OmniChainFungibleTokens",
		TokenSymbol:     "OFT",
		Owner:           "0x00000000000000000000000000000000000000a1",
		GlobalSupply:    "1000000000000000000000000", // 1,000,000 tokens
		MinDstGas:       220_000,
		RelayerPollMS:   1000,
		RelayerRetries:  5,
		RelayerDisabled: true, // stuck payloads wait for an operator by default
	}
}

// WriteToFile() saves the Config object to a JSON file
func (c Config) WriteToFile(filepath string) error {
	// convert the config to indented 'pretty' json bytes
	jsonBytes, err := json.MarshalIndent(c, "", "  ")
	// if an error occurred during the conversion
	if err != nil {
		// exit with error
		return err
	}
	// write the config.json file to the data directory
	return os.WriteFile(filepath, jsonBytes, os.ModePerm)
}

// NewConfigFromFile() populates a Config object from a JSON file
func NewConfigFromFile(filepath string) (Config, error) {
	// read the file into bytes using
	fileBytes, err := os.ReadFile(filepath)
	// if an error occurred
	if err != nil {
		// exit with error
		return Config{}, err
	}
	// define the default config to fill in any blanks in the file
	c := DefaultConfig()
	// populate the default config with the file bytes
	if err = json.Unmarshal(fileBytes, &c); err != nil {
		// exit with error
		return Config{}, err
	}
	// exit
	return c, nil
}
