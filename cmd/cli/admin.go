package cli

import (
	"github.com/spf13/cobra"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "operator only operations for the simulator",
}

var payload string

func init() {
	adminCmd.PersistentFlags().StringVar(&path, "path", "", "hex encoded inbound path, empty is the token path between the chains")
	adminCmd.PersistentFlags().StringVar(&payload, "payload", "", "hex encoded payload to retry, empty is the stored payload")
	adminCmd.AddCommand(sendCmd)
	adminCmd.AddCommand(retryPayloadCmd)
	adminCmd.AddCommand(forceResumeCmd)
	adminCmd.AddCommand(blockNextCmd)
	adminCmd.AddCommand(relayCmd)
	adminCmd.AddCommand(configCmd)
}

var (
	sendCmd = &cobra.Command{
		Use:   "send <src_chain_id> <dst_chain_id> <from> <to> <amount>",
		Short: "transfer tokens between two chains, paying the estimated fee",
		Args:  cobra.MinimumNArgs(5),
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.Send(argToChainId(args[0]), argToChainId(args[1]), argToAddress(args[2]), argToAddress(args[3]), args[4]))
		},
	}

	retryPayloadCmd = &cobra.Command{
		Use:   "retry-payload <src_chain_id> <dst_chain_id> --path=<hex> --payload=<hex>",
		Short: "re-apply the stored payload of an inbound path",
		Args:  cobra.MinimumNArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			src, dst, p := getPathArgs(args)
			writeToConsole(client.RetryPayload(src, dst, p, argToBytes(payload)))
		},
	}

	forceResumeCmd = &cobra.Command{
		Use:   "force-resume <src_chain_id> <dst_chain_id> --path=<hex>",
		Short: "discard the stored payload of an inbound path and resume it",
		Args:  cobra.MinimumNArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.ForceResume(getPathArgs(args)))
		},
	}

	blockNextCmd = &cobra.Command{
		Use:   "block-next <chain_id>",
		Short: "fail the next delivery on a chain",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.BlockNext(argToChainId(args[0])))
		},
	}

	relayCmd = &cobra.Command{
		Use:   "relay",
		Short: "run one relayer pass over every blocked path",
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.Relay())
		},
	}

	configCmd = &cobra.Command{
		Use:   "config",
		Short: "query the simulator configuration",
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.Config())
		},
	}
)
