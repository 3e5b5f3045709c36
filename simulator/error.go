package simulator

import (
	"fmt"

	"github.com/canopy-network/omnichain/lib"
)

func ErrNotEnoughChains(count int) lib.ErrorI {
	return lib.NewError(lib.CodeNotEnoughChains, lib.SimulatorModule, fmt.Sprintf("a simulation needs at least 2 chains but %d were configured", count))
}

func ErrSameChain(chainId uint64) lib.ErrorI {
	return lib.NewError(lib.CodeSameChain, lib.SimulatorModule, fmt.Sprintf("source and destination are both chain %d", chainId))
}
