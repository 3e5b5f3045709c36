package relayer

import (
	"fmt"

	"github.com/canopy-network/omnichain/lib"
)

func ErrRetryExhausted(chainId, nonce uint64, err error) lib.ErrorI {
	return lib.NewError(lib.CodeRetryExhausted, lib.RelayerModule, fmt.Sprintf("retrying nonce %d on chain %d gave up with err: %s", nonce, chainId, err.Error()))
}
