package oft

import (
	"errors"
	"math/big"
	"testing"

	"github.com/canopy-network/omnichain/endpoint"
	"github.com/canopy-network/omnichain/lib"
	"github.com/canopy-network/omnichain/lib/crypto"
	"github.com/canopy-network/omnichain/store"
	"github.com/stretchr/testify/require"
)

var (
	owner        = crypto.Address{0xa1}
	srcOFTAddr   = crypto.Address{0x0a}
	dstOFTAddr   = crypto.Address{0x0b}
	globalSupply = new(big.Int).Mul(big.NewInt(1_000_000), big.NewInt(1e18))
	sendQty      = big.NewInt(1e18)
)

func TestMintAndBalances(t *testing.T) {
	b := newTestBridge(t, lib.DefaultEndpointConfig())
	got, err := b.srcOFT.BalanceOf(owner)
	require.NoError(t, err)
	require.Zero(t, globalSupply.Cmp(got))
	got, err = b.srcOFT.TotalSupply()
	require.NoError(t, err)
	require.Zero(t, globalSupply.Cmp(got))
	got, err = b.dstOFT.BalanceOf(owner)
	require.NoError(t, err)
	require.Zero(t, got.Sign())
	// minting nothing is rejected
	require.ErrorIs(t, b.srcOFT.Mint(owner, big.NewInt(0)), ErrInvalidAmount())
	require.ErrorIs(t, b.srcOFT.Mint(owner, nil), ErrInvalidAmount())
	require.Equal(t, Decimals, 18)
	require.Equal(t, "OFT", b.dstOFT.Symbol())
}

func TestSendFrom(t *testing.T) {
	b := newTestBridge(t, lib.DefaultEndpointConfig())
	receipt := b.send(t)
	require.Equal(t, endpoint.StatusApplied, receipt.Status)
	require.Equal(t, uint64(1), receipt.Nonce)
	require.Zero(t, receipt.Refund.Sign())
	// the supply moved from the source chain to the destination chain
	requireBalance(t, b.srcOFT, new(big.Int).Sub(globalSupply, sendQty))
	requireBalance(t, b.dstOFT, sendQty)
	got, err := b.dstOFT.TotalSupply()
	require.NoError(t, err)
	require.Zero(t, sendQty.Cmp(got))
	// and back again
	fee, err := b.dstOFT.EstimateSendFees(lib.SrcChainId, owner.Bytes(), sendQty, false, nil)
	require.NoError(t, err)
	receipt, err = b.dstOFT.SendFrom(owner, lib.SrcChainId, owner.Bytes(), sendQty, owner, crypto.Address{}, nil, fee.NativeFee)
	require.NoError(t, err)
	require.Equal(t, endpoint.StatusApplied, receipt.Status)
	requireBalance(t, b.srcOFT, globalSupply)
}

func TestSendFromValidation(t *testing.T) {
	adapterParams := endpoint.NewAdapterParamsV1(225_000)
	tests := []struct {
		name          string
		detail        string
		amount        *big.Int
		adapterParams []byte
		fee           *big.Int
		expected      lib.ErrorI
	}{
		{
			name:          "zero amount",
			detail:        "nothing to send",
			amount:        big.NewInt(0),
			adapterParams: adapterParams,
			expected:      ErrInvalidAmount(),
		},
		{
			name:          "insufficient balance",
			detail:        "the sender can't burn more than it holds",
			amount:        new(big.Int).Add(globalSupply, big.NewInt(1)),
			adapterParams: adapterParams,
			expected:      ErrInsufficientBalance(nil, nil),
		},
		{
			name:          "gas below the minimum",
			detail:        "the adapter gas must reach the configured minimum destination gas",
			amount:        sendQty,
			adapterParams: endpoint.NewAdapterParamsV1(219_999),
			expected:      endpoint.ErrMinGasNotMet(0),
		},
		{
			name:          "insufficient fee",
			detail:        "the burn is reverted when the endpoint rejects the message",
			amount:        sendQty,
			adapterParams: adapterParams,
			fee:           big.NewInt(1),
			expected:      endpoint.ErrInsufficientFee(nil, nil),
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			b := newTestBridge(t, lib.DefaultEndpointConfig())
			_, err := b.srcOFT.SendFrom(owner, lib.DstChainId, owner.Bytes(), test.amount, owner, crypto.Address{}, test.adapterParams, test.fee)
			require.ErrorIs(t, err, test.expected)
			// no balance moved and no message was sent
			got, e := b.srcOFT.BalanceOf(owner)
			require.NoError(t, e)
			require.Zero(t, globalSupply.Cmp(got))
			got, e = b.srcOFT.TotalSupply()
			require.NoError(t, e)
			require.Zero(t, globalSupply.Cmp(got))
			require.Empty(t, b.src.Events().Events())
		})
	}
}

func TestApplyPayload(t *testing.T) {
	b := newTestBridge(t, lib.DefaultEndpointConfig())
	// an unknown packet type fails
	bz, err := transferArgs.Pack(uint16(1), owner.Bytes(), sendQty)
	require.NoError(t, err)
	require.ErrorIs(t, b.dstOFT.ApplyPayload(lib.SrcChainId, b.srcPath, 1, bz), ErrUnknownPacketType(0))
	// a recipient that is not an address fails
	bz, e := EncodeTransfer([]byte{1, 2, 3}, sendQty)
	require.NoError(t, e)
	require.ErrorIs(t, b.dstOFT.ApplyPayload(lib.SrcChainId, b.srcPath, 1, bz), ErrInvalidRecipient(0))
	// garbage fails
	require.ErrorIs(t, b.dstOFT.ApplyPayload(lib.SrcChainId, b.srcPath, 1, []byte("garbage")), ErrInvalidTransferPayload(errors.New("")))
	// a transfer credits
	bz, e = EncodeTransfer(owner.Bytes(), sendQty)
	require.NoError(t, e)
	require.NoError(t, b.dstOFT.ApplyPayload(lib.SrcChainId, b.srcPath, 1, bz))
	got, e := b.dstOFT.BalanceOf(owner)
	require.NoError(t, e)
	require.Zero(t, sendQty.Cmp(got))
}

func TestTransferPayload(t *testing.T) {
	bz, err := EncodeTransfer(owner.Bytes(), sendQty)
	require.NoError(t, err)
	// abi.encode(uint16, bytes, uint256): 3 head words, the bytes length word and one padded data word
	require.Len(t, bz, 5*32)
	transfer, err := DecodeTransfer(bz)
	require.NoError(t, err)
	require.Equal(t, &Transfer{PacketType: PTSend, ToAddress: owner.Bytes(), Amount: sendQty}, transfer)
}

// TestBlockedTransfer walks the blocked delivery of a token transfer and its recovery
func TestBlockedTransfer(t *testing.T) {
	tests := []struct {
		name   string
		detail string
		run    func(t *testing.T, b *testBridge)
	}{
		{
			name:   "stores the payload",
			detail: "a blocked transfer is stored on the destination endpoint",
			run: func(t *testing.T, b *testBridge) {
				has, err := b.dst.HasStoredPayload(lib.SrcChainId, b.srcPath)
				require.NoError(t, err)
				require.True(t, has)
			},
		},
		{
			name:   "queues the next transfer",
			detail: "a transfer behind a stored payload waits in the inbound queue",
			run: func(t *testing.T, b *testBridge) {
				requireQueueLength(t, b, 0)
				receipt := b.send(t)
				require.Equal(t, endpoint.StatusQueued, receipt.Status)
				requireQueueLength(t, b, 1)
				requireBalance(t, b.dstOFT, big.NewInt(0))
			},
		},
		{
			name:   "retry delivers the stuck transfer",
			detail: "retrying with the stored payload credits the recipient",
			run: func(t *testing.T, b *testBridge) {
				payload, err := EncodeTransfer(owner.Bytes(), sendQty)
				require.NoError(t, err)
				require.NoError(t, b.dstOFT.RetryPayload(lib.SrcChainId, b.srcPath, payload))
				require.Len(t, b.dst.Events().Events().OfType(lib.EventTypePayloadCleared), 1)
				requireBalance(t, b.dstOFT, sendQty)
				has, err := b.dst.HasStoredPayload(lib.SrcChainId, b.srcPath)
				require.NoError(t, err)
				require.False(t, has)
			},
		},
		{
			name:   "force resume removes the transfer",
			detail: "the stuck transfer is discarded and never credited",
			run: func(t *testing.T, b *testBridge) {
				requireBalance(t, b.dstOFT, big.NewInt(0))
				require.NoError(t, b.dstOFT.ForceResumeReceive(lib.SrcChainId, b.srcPath))
				require.Len(t, b.dst.Events().Events().OfType(lib.EventTypeUaForceResumeReceive), 1)
				has, err := b.dst.HasStoredPayload(lib.SrcChainId, b.srcPath)
				require.NoError(t, err)
				require.False(t, has)
				requireBalance(t, b.dstOFT, big.NewInt(0))
			},
		},
		{
			name:   "force resume delivers the queue",
			detail: "the queued transfers are delivered after the stuck one is removed",
			run: func(t *testing.T, b *testBridge) {
				b.send(t)
				b.send(t)
				requireQueueLength(t, b, 2)
				require.NoError(t, b.dstOFT.ForceResumeReceive(lib.SrcChainId, b.srcPath))
				requireBalance(t, b.dstOFT, new(big.Int).Mul(sendQty, big.NewInt(2)))
				state, err := b.dst.PathState(lib.SrcChainId, b.srcPath)
				require.NoError(t, err)
				require.Equal(t, endpoint.PathStateIdle, state)
			},
		},
		{
			name:   "emptied queue is not double counted",
			detail: "after the drain the queue is empty and new transfers apply directly",
			run: func(t *testing.T, b *testBridge) {
				b.send(t)
				require.NoError(t, b.dstOFT.ForceResumeReceive(lib.SrcChainId, b.srcPath))
				requireQueueLength(t, b, 0)
				receipt := b.send(t)
				require.Equal(t, endpoint.StatusApplied, receipt.Status)
				requireQueueLength(t, b, 0)
				requireBalance(t, b.dstOFT, new(big.Int).Mul(sendQty, big.NewInt(2)))
				nonce, err := b.dst.InboundNonce(lib.SrcChainId, b.srcPath)
				require.NoError(t, err)
				require.Equal(t, uint64(3), nonce)
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			b := newTestBridge(t, lib.DefaultEndpointConfig())
			requireBalance(t, b.srcOFT, globalSupply)
			requireBalance(t, b.dstOFT, big.NewInt(0))
			b.dst.BlockNextMessage()
			receipt := b.send(t)
			require.Equal(t, endpoint.StatusStored, receipt.Status)
			require.Len(t, b.dst.Events().Events().OfType(lib.EventTypePayloadStored), 1)
			requireBalance(t, b.dstOFT, big.NewInt(0))
			test.run(t, b)
		})
	}
}

func TestForceResumeUnauthorized(t *testing.T) {
	b := newTestBridge(t, lib.DefaultEndpointConfig())
	b.dst.BlockNextMessage()
	b.send(t)
	// another application on the destination chain can't clear the token's path
	require.ErrorIs(t, b.dst.ForceResumeReceive(crypto.Address{0xff}, lib.SrcChainId, b.srcPath), endpoint.ErrUnauthorizedResume())
	has, err := b.dst.HasStoredPayload(lib.SrcChainId, b.srcPath)
	require.NoError(t, err)
	require.True(t, has)
}

// testBridge is a token deployed on two chains that trust each other
type testBridge struct {
	src, dst       *endpoint.Endpoint
	srcOFT, dstOFT *OFT
	srcPath        []byte // the inbound path on the destination chain
}

func newTestBridge(t *testing.T, config lib.EndpointConfig) *testBridge {
	topology := endpoint.NewNetworkTopology()
	b := &testBridge{
		src: newTestEndpoint(t, lib.SrcChainId, config),
		dst: newTestEndpoint(t, lib.DstChainId, config),
	}
	require.NoError(t, topology.Attach(b.src))
	require.NoError(t, topology.Attach(b.dst))
	b.srcOFT = New("OmniChainFungibleTokens", "OFT", srcOFTAddr, b.src, newTestStore(t), lib.NewNullLogger())
	b.dstOFT = New("OmniChainFungibleTokens", "OFT", dstOFTAddr, b.dst, newTestStore(t), lib.NewNullLogger())
	require.NoError(t, b.srcOFT.SetTrustedRemote(lib.DstChainId, dstOFTAddr))
	require.NoError(t, b.dstOFT.SetTrustedRemote(lib.SrcChainId, srcOFTAddr))
	require.NoError(t, b.srcOFT.SetMinDstGas(lib.DstChainId, PTSend, 220_000))
	require.NoError(t, b.srcOFT.SetUseCustomAdapterParams(true))
	require.NoError(t, b.srcOFT.Mint(owner, globalSupply))
	b.srcPath = endpoint.NewPath(lib.SrcChainId, srcOFTAddr, lib.DstChainId, dstOFTAddr).Bytes()
	return b
}

// send() sends one token from the owner on the source chain to the owner on the destination chain
func (b *testBridge) send(t *testing.T) *endpoint.Receipt {
	adapterParams := endpoint.NewAdapterParamsV1(225_000)
	fee, err := b.srcOFT.EstimateSendFees(lib.DstChainId, owner.Bytes(), sendQty, false, adapterParams)
	require.NoError(t, err)
	receipt, err := b.srcOFT.SendFrom(owner, lib.DstChainId, owner.Bytes(), sendQty, owner, crypto.Address{}, adapterParams, fee.NativeFee)
	require.NoError(t, err)
	return receipt
}

func requireBalance(t *testing.T, o *OFT, expected *big.Int) {
	got, err := o.BalanceOf(owner)
	require.NoError(t, err)
	require.Zero(t, expected.Cmp(got), "expected %s got %s", expected, got)
}

func requireQueueLength(t *testing.T, b *testBridge, expected uint64) {
	got, err := b.dst.GetQueueLength(lib.SrcChainId, b.srcPath)
	require.NoError(t, err)
	require.Equal(t, expected, got)
}

func newTestEndpoint(t *testing.T, chainId uint64, config lib.EndpointConfig) *endpoint.Endpoint {
	e, err := endpoint.New(chainId, config, newTestStore(t), nil, lib.NewNullLogger())
	require.NoError(t, err)
	return e
}

func newTestStore(t *testing.T) lib.StoreI {
	db, err := store.NewStoreInMemory(lib.NewNullLogger())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}
