package main

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/canopy-network/omnichain/cmd/rpc"
	"github.com/canopy-network/omnichain/endpoint"
	"github.com/canopy-network/omnichain/lib"
	"github.com/canopy-network/omnichain/lib/crypto"
	"golang.org/x/sync/errgroup"
)

const concurrency, totalTransfers, amount = 16, 10_000, "1"
const adminRPCURL = "http://localhost:50003"

// sends token transfers between every pair of simulated chains and reports the throughput
func main() {
	fmt.Println("Creating new rpc client")
	client := rpc.NewClient(adminRPCURL, 10*time.Second)
	chains, err := client.Chains()
	if err != nil {
		panic(err)
	}
	config, err := client.Config()
	if err != nil {
		panic(err)
	}
	owner, err := crypto.NewAddressFromString(config.Owner)
	if err != nil {
		panic(err)
	}
	pairs, err := transferPairs(chains)
	if err != nil {
		panic(err)
	}
	fmt.Println("Sending", totalTransfers, "transfers over", len(pairs), "paths")
	var applied, blocked, failed atomic.Uint64
	g := new(errgroup.Group)
	g.SetLimit(concurrency)
	start := time.Now()
	for i := 0; i < totalTransfers; i++ {
		pair := pairs[i%len(pairs)]
		g.Go(func() error {
			receipt, e := client.Send(pair[0], pair[1], owner, owner, amount)
			switch {
			case e != nil:
				failed.Add(1)
				return e
			case receipt.Status == endpoint.StatusApplied:
				applied.Add(1)
			default:
				blocked.Add(1)
			}
			return nil
		})
	}
	// every transfer runs; Wait() reports the first failure
	waitErr := g.Wait()
	elapsed := time.Since(start)
	if waitErr != nil {
		fmt.Println("First failed transfer:", waitErr.Error())
	}
	fmt.Printf("Done in %s: %d applied, %d stored or queued, %d failed (%.0f transfers/s)\n",
		elapsed, applied.Load(), blocked.Load(), failed.Load(), float64(totalTransfers)/elapsed.Seconds())
}

// transferPairs() returns every ordered pair of distinct chains that starts at the funded chain
func transferPairs(chains []uint64) (pairs [][2]uint64, err lib.ErrorI) {
	if len(chains) < 2 {
		return nil, lib.ErrInvalidArgument()
	}
	for _, dst := range chains[1:] {
		pairs = append(pairs, [2]uint64{chains[0], dst})
	}
	return
}
