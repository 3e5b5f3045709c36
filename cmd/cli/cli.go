package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/canopy-network/omnichain/cmd/rpc"
	"github.com/canopy-network/omnichain/lib"
	"github.com/canopy-network/omnichain/relayer"
	"github.com/canopy-network/omnichain/simulator"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var rootCmd = &cobra.Command{
	Use:   "omnichain",
	Short: "the omnichain messaging endpoint simulator",
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(rpc.SoftwareVersion)
	},
}

var (
	client, config, l = &rpc.Client{}, lib.Config{}, lib.LoggerI(nil)
	DataDir           = ""
)

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(adminCmd)
	rootCmd.PersistentFlags().StringVar(&DataDir, "data-dir", lib.DefaultDataDirPath(), "custom data directory location")
	cobra.OnInitialize(initialize)
}

// initialize() loads the configuration once the flags are parsed
func initialize() {
	config = InitializeDataDirectory(DataDir, lib.NewDefaultLogger())
	l = lib.NewLogger(lib.LoggerConfig{Level: config.GetLogLevel()}, config.DataDirPath)
	client = rpc.NewClient(config.AdminRPCUrl, time.Duration(config.TimeoutS)*time.Second)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "start the simulated network",
	Run: func(cmd *cobra.Command, args []string) {
		Start()
	},
}

// Start() is the entrypoint of the simulator
func Start() {
	// initialize the metrics server
	metrics := lib.NewMetricsServer(config.MetricsConfig, l)
	// build the simulated chains
	sim, err := simulator.New(config, metrics, l)
	if err != nil {
		l.Fatal(err.Error())
	}
	l.Infof("Simulating chains %v with owner %s", sim.ChainIds(), sim.Owner())
	// the relayer always backs the relay route; the background loop is optional
	r := relayer.New(sim.Topology(), config.SimulationConfig, metrics, l)
	rpcServer := rpc.NewServer(sim, r, config, l)
	// start the metrics server
	metrics.Start()
	// cancel on a kill signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM, syscall.SIGABRT)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)
	g.Go(rpcServer.Start)
	if !config.RelayerDisabled {
		g.Go(func() error { return r.Start(ctx) })
	}
	// block until a kill signal is received or a service fails
	g.Go(func() error {
		<-ctx.Done()
		l.Info("Exit command received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return rpcServer.Stop(shutdownCtx)
	})
	if e := g.Wait(); e != nil {
		l.Error(e.Error())
	}
	// gracefully stop the metrics server
	metrics.Stop()
	// close the chain stores
	sim.Close()
	os.Exit(0)
}

// InitializeDataDirectory() creates the data directory and its config.json file if missing and loads the config
func InitializeDataDirectory(dataDirPath string, log lib.LoggerI) (c lib.Config) {
	// make the data dir if missing
	if err := os.MkdirAll(dataDirPath, os.ModePerm); err != nil {
		log.Fatal(err.Error())
	}
	// make the config.json file if missing
	configFilePath := filepath.Join(dataDirPath, lib.ConfigFilePath)
	if _, err := os.Stat(configFilePath); errors.Is(err, os.ErrNotExist) {
		log.Infof("Creating %s file", lib.ConfigFilePath)
		if err = lib.DefaultConfig().WriteToFile(configFilePath); err != nil {
			log.Fatal(err.Error())
		}
	}
	// load the config object
	c, err := lib.NewConfigFromFile(configFilePath)
	if err != nil {
		log.Fatal(err.Error())
	}
	// set the data-directory
	c.DataDirPath = dataDirPath
	return
}

func writeToConsole(a any, err error) {
	if err != nil {
		l.Fatal(err.Error())
	}
	switch v := a.(type) {
	case int, uint32, uint64:
		p := message.NewPrinter(language.English)
		if _, err = p.Printf("%d\n", a); err != nil {
			l.Fatal(err.Error())
		}
	case *uint64:
		writeToConsole(*v, nil)
	case string, *string:
		fmt.Println(a)
	default:
		s, e := lib.MarshalJSONIndentString(a)
		if e != nil {
			l.Fatal(e.Error())
		}
		fmt.Println(s)
	}
}
