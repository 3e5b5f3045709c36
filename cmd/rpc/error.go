package rpc

import (
	"fmt"

	"github.com/canopy-network/omnichain/lib"
)

func ErrInvalidParams(err error) lib.ErrorI {
	return lib.NewError(lib.CodeInvalidParams, lib.RPCModule, fmt.Sprintf("invalid params: %s", err.Error()))
}

func ErrRelayerDisabled() lib.ErrorI {
	return lib.NewError(lib.CodeRelayerDisabled, lib.RPCModule, "relayer is disabled")
}
