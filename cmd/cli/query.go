package cli

import (
	"strconv"

	"github.com/canopy-network/omnichain/lib"
	"github.com/canopy-network/omnichain/lib/crypto"
	"github.com/spf13/cobra"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "query the simulator rpc",
}

var (
	path, adapterParams = "", ""
	since               = uint64(0)
	useZro              = false
)

func init() {
	queryCmd.PersistentFlags().StringVar(&path, "path", "", "hex encoded inbound path, empty is the token path between the chains")
	queryCmd.PersistentFlags().Uint64Var(&since, "since", 0, "first event index for the events query")
	queryCmd.PersistentFlags().BoolVar(&useZro, "use-zro", false, "pay the protocol fee in the alternate token")
	queryCmd.PersistentFlags().StringVar(&adapterParams, "adapter-params", "", "hex encoded adapter params for fee estimation")
	queryCmd.AddCommand(chainsCmd)
	queryCmd.AddCommand(hasStoredPayloadCmd)
	queryCmd.AddCommand(storedPayloadCmd)
	queryCmd.AddCommand(queueLengthCmd)
	queryCmd.AddCommand(queueCmd)
	queryCmd.AddCommand(pathStateCmd)
	queryCmd.AddCommand(noncesCmd)
	queryCmd.AddCommand(blockedPathsCmd)
	queryCmd.AddCommand(eventsCmd)
	queryCmd.AddCommand(balanceCmd)
	queryCmd.AddCommand(supplyCmd)
	queryCmd.AddCommand(estimateFeesCmd)
}

var (
	chainsCmd = &cobra.Command{
		Use:   "chains",
		Short: "query the simulated chain ids",
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.Chains())
		},
	}

	hasStoredPayloadCmd = &cobra.Command{
		Use:   "has-stored-payload <src_chain_id> <dst_chain_id> --path=<hex>",
		Short: "query whether an inbound path is blocked by a stored payload",
		Args:  cobra.MinimumNArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.HasStoredPayload(getPathArgs(args)))
		},
	}

	storedPayloadCmd = &cobra.Command{
		Use:   "stored-payload <src_chain_id> <dst_chain_id> --path=<hex>",
		Short: "query the stored payload of an inbound path",
		Args:  cobra.MinimumNArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.StoredPayload(getPathArgs(args)))
		},
	}

	queueLengthCmd = &cobra.Command{
		Use:   "queue-length <src_chain_id> <dst_chain_id> --path=<hex>",
		Short: "query the number of messages queued behind a stored payload",
		Args:  cobra.MinimumNArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.QueueLength(getPathArgs(args)))
		},
	}

	queueCmd = &cobra.Command{
		Use:   "queue <src_chain_id> <dst_chain_id> --path=<hex>",
		Short: "query the messages queued behind a stored payload",
		Args:  cobra.MinimumNArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.Queue(getPathArgs(args)))
		},
	}

	pathStateCmd = &cobra.Command{
		Use:   "path-state <src_chain_id> <dst_chain_id> --path=<hex>",
		Short: "query whether an inbound path is idle or blocked",
		Args:  cobra.MinimumNArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.PathState(getPathArgs(args)))
		},
	}

	noncesCmd = &cobra.Command{
		Use:   "nonces <src_chain_id> <dst_chain_id> --path=<hex>",
		Short: "query the inbound and outbound nonce of a path",
		Args:  cobra.MinimumNArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.Nonces(getPathArgs(args)))
		},
	}

	blockedPathsCmd = &cobra.Command{
		Use:   "blocked-paths <chain_id>",
		Short: "query every blocked inbound path of a chain",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.BlockedPaths(argToChainId(args[0])))
		},
	}

	eventsCmd = &cobra.Command{
		Use:   "events <chain_id> --since=0",
		Short: "query the endpoint events of a chain",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.Events(argToChainId(args[0]), since))
		},
	}

	balanceCmd = &cobra.Command{
		Use:   "balance <chain_id> <address>",
		Short: "query the token balance of an address on a chain",
		Args:  cobra.MinimumNArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.Balance(argToChainId(args[0]), argToAddress(args[1])))
		},
	}

	supplyCmd = &cobra.Command{
		Use:   "supply <chain_id>",
		Short: "query the token supply that lives on a chain",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.Supply(argToChainId(args[0])))
		},
	}

	estimateFeesCmd = &cobra.Command{
		Use:   "estimate-fees <src_chain_id> <dst_chain_id> <to_address> <amount> --use-zro --adapter-params=<hex>",
		Short: "query the fee of a token transfer",
		Args:  cobra.MinimumNArgs(4),
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.EstimateFees(argToChainId(args[0]), argToChainId(args[1]), argToAddress(args[2]), args[3],
				useZro, argToBytes(adapterParams)))
		},
	}
)

func getPathArgs(args []string) (srcChainId, dstChainId uint64, p []byte) {
	return argToChainId(args[0]), argToChainId(args[1]), argToBytes(path)
}

func argToChainId(arg string) uint64 {
	i, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		l.Fatal(err.Error())
	}
	return i
}

func argToAddress(arg string) crypto.Address {
	a, err := crypto.NewAddressFromString(arg)
	if err != nil {
		l.Fatal(err.Error())
	}
	return a
}

func argToBytes(arg string) []byte {
	if arg == "" {
		return nil
	}
	bz, err := lib.NewHexBytesFromString(arg)
	if err != nil {
		l.Fatal(err.Error())
	}
	return bz
}
