package rpc

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/canopy-network/omnichain/endpoint"
	"github.com/canopy-network/omnichain/lib"
	"github.com/canopy-network/omnichain/lib/crypto"
	"github.com/canopy-network/omnichain/relayer"
)

type Client struct {
	rpcURL string
	client http.Client
}

func NewClient(rpcURL string, timeout time.Duration) *Client {
	return &Client{rpcURL: rpcURL, client: http.Client{Timeout: timeout}}
}

func (c *Client) Version() (version *string, err lib.ErrorI) {
	version = new(string)
	err = c.get(VersionRouteName, version)
	return
}

func (c *Client) Chains() (p []uint64, err lib.ErrorI) {
	err = c.post(ChainsRouteName, nil, &p)
	return
}

func (c *Client) HasStoredPayload(srcChainId, dstChainId uint64, path []byte) (p *bool, err lib.ErrorI) {
	p = new(bool)
	err = c.pathRequest(HasStoredPayloadRouteName, srcChainId, dstChainId, path, p)
	return
}

func (c *Client) StoredPayload(srcChainId, dstChainId uint64, path []byte) (p *endpoint.StoredPayload, err lib.ErrorI) {
	err = c.pathRequest(StoredPayloadRouteName, srcChainId, dstChainId, path, &p)
	return
}

func (c *Client) QueueLength(srcChainId, dstChainId uint64, path []byte) (p *uint64, err lib.ErrorI) {
	p = new(uint64)
	err = c.pathRequest(QueueLengthRouteName, srcChainId, dstChainId, path, p)
	return
}

func (c *Client) Queue(srcChainId, dstChainId uint64, path []byte) (p []*endpoint.QueueEntry, err lib.ErrorI) {
	err = c.pathRequest(QueueRouteName, srcChainId, dstChainId, path, &p)
	return
}

func (c *Client) PathState(srcChainId, dstChainId uint64, path []byte) (p *endpoint.PathState, err lib.ErrorI) {
	p = new(endpoint.PathState)
	err = c.pathRequest(PathStateRouteName, srcChainId, dstChainId, path, p)
	return
}

func (c *Client) Nonces(srcChainId, dstChainId uint64, path []byte) (p *noncesResponse, err lib.ErrorI) {
	p = new(noncesResponse)
	err = c.pathRequest(NoncesRouteName, srcChainId, dstChainId, path, p)
	return
}

func (c *Client) BlockedPaths(chainId uint64) (p []*endpoint.BlockedPath, err lib.ErrorI) {
	err = c.chainRequest(BlockedPathsRouteName, chainId, &p)
	return
}

func (c *Client) Events(chainId, since uint64) (p lib.Events, err lib.ErrorI) {
	bz, err := lib.MarshalJSON(eventsRequest{chainRequest: chainRequest{ChainId: chainId}, Since: since})
	if err != nil {
		return nil, err
	}
	err = c.post(EventsRouteName, bz, &p)
	return
}

func (c *Client) Balance(chainId uint64, address crypto.Address) (p *amountResponse, err lib.ErrorI) {
	p = new(amountResponse)
	bz, err := lib.MarshalJSON(balanceRequest{chainRequest: chainRequest{ChainId: chainId}, Address: address})
	if err != nil {
		return nil, err
	}
	err = c.post(BalanceRouteName, bz, p)
	return
}

func (c *Client) Supply(chainId uint64) (p *amountResponse, err lib.ErrorI) {
	p = new(amountResponse)
	err = c.chainRequest(SupplyRouteName, chainId, p)
	return
}

func (c *Client) EstimateFees(srcChainId, dstChainId uint64, to crypto.Address, amount string, useZro bool, adapterParams []byte) (p *endpoint.Fee, err lib.ErrorI) {
	p = new(endpoint.Fee)
	bz, err := lib.MarshalJSON(feesRequest{
		transferRequest: transferRequest{SrcChainId: srcChainId, DstChainId: dstChainId, To: to, Amount: amount},
		UseZro:          useZro,
		AdapterParams:   adapterParams,
	})
	if err != nil {
		return nil, err
	}
	err = c.post(EstimateFeesRouteName, bz, p)
	return
}

func (c *Client) Send(srcChainId, dstChainId uint64, from, to crypto.Address, amount string) (p *endpoint.Receipt, err lib.ErrorI) {
	p = new(endpoint.Receipt)
	bz, err := lib.MarshalJSON(transferRequest{SrcChainId: srcChainId, DstChainId: dstChainId, From: from, To: to, Amount: amount})
	if err != nil {
		return nil, err
	}
	err = c.post(SendRouteName, bz, p)
	return
}

func (c *Client) RetryPayload(srcChainId, dstChainId uint64, path, payload []byte) (p *endpoint.PathState, err lib.ErrorI) {
	p = new(endpoint.PathState)
	bz, err := lib.MarshalJSON(retryRequest{
		pathRequest: pathRequest{SrcChainId: srcChainId, DstChainId: dstChainId, Path: path},
		Payload:     payload,
	})
	if err != nil {
		return nil, err
	}
	err = c.post(RetryPayloadRouteName, bz, p)
	return
}

func (c *Client) ForceResume(srcChainId, dstChainId uint64, path []byte) (p *endpoint.PathState, err lib.ErrorI) {
	p = new(endpoint.PathState)
	err = c.pathRequest(ForceResumeRouteName, srcChainId, dstChainId, path, p)
	return
}

func (c *Client) BlockNext(chainId uint64) (p *bool, err lib.ErrorI) {
	p = new(bool)
	err = c.chainRequest(BlockNextRouteName, chainId, p)
	return
}

func (c *Client) Relay() (p *relayer.Result, err lib.ErrorI) {
	p = new(relayer.Result)
	err = c.post(RelayRouteName, nil, p)
	return
}

func (c *Client) Config() (p *lib.Config, err lib.ErrorI) {
	p = new(lib.Config)
	err = c.get(ConfigRouteName, p)
	return
}

func (c *Client) chainRequest(routeName string, chainId uint64, ptr any) lib.ErrorI {
	bz, err := lib.MarshalJSON(chainRequest{ChainId: chainId})
	if err != nil {
		return err
	}
	return c.post(routeName, bz, ptr)
}

func (c *Client) pathRequest(routeName string, srcChainId, dstChainId uint64, path []byte, ptr any) lib.ErrorI {
	bz, err := lib.MarshalJSON(pathRequest{SrcChainId: srcChainId, DstChainId: dstChainId, Path: path})
	if err != nil {
		return err
	}
	return c.post(routeName, bz, ptr)
}

func (c *Client) url(routeName string) string {
	return c.rpcURL + routePaths[routeName].Path
}

func (c *Client) post(routeName string, json []byte, ptr any) lib.ErrorI {
	resp, err := c.client.Post(c.url(routeName), ApplicationJSON, bytes.NewBuffer(json))
	if err != nil {
		return lib.ErrPostRequest(err)
	}
	return c.unmarshal(resp, ptr)
}

func (c *Client) get(routeName string, ptr any) lib.ErrorI {
	resp, err := c.client.Get(c.url(routeName))
	if err != nil {
		return lib.ErrGetRequest(err)
	}
	return c.unmarshal(resp, ptr)
}

func (c *Client) unmarshal(resp *http.Response, ptr any) lib.ErrorI {
	defer func() { _ = resp.Body.Close() }()
	bz, err := io.ReadAll(resp.Body)
	if err != nil {
		return lib.ErrReadBody(err)
	}
	if resp.StatusCode != http.StatusOK {
		// the server writes module errors as json; surface them as is
		e := new(lib.Error)
		if lib.UnmarshalJSON(bz, e) == nil && e.EModule != "" {
			return e
		}
		return lib.ErrHttpStatus(resp.Status, resp.StatusCode, bz)
	}
	return lib.UnmarshalJSON(bz, ptr)
}
