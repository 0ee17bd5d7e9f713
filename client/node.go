package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io/ioutil"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/xerrors"
)

type Method string

const GetBalance Method = "veil_getBalance"

type nodeClient struct {
	rpcAddr string
	JsonRpc string      `json:"jsonrpc"` // "2.0"
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
	Id      int         `json:"id"`
}

type Response struct {
	Jsonrpc string      `json:"jsonrpc"`
	Result  interface{} `json:"result"`
	Id      int         `json:"id"`
	Error   interface{} `json:"error"`
}

func NewNodeClient(rpcAddr string, method Method, params interface{}) *nodeClient {
	rand.Seed(time.Now().UnixNano())
	id := rand.Intn(100)
	return &nodeClient{
		rpcAddr: rpcAddr,
		JsonRpc: "2.0",
		Method:  string(method),
		Params:  params,
		Id:      id,
	}
}

func (c *nodeClient) Call(ctx context.Context) ([]byte, error) {
	dataByte, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.rpcAddr, bytes.NewBuffer(dataByte))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, xerrors.New(resp.Status)
	}

	return ioutil.ReadAll(resp.Body)
}

// Balance queries the node for an address's native-token balance.
func Balance(ctx context.Context, rpcAddr, addr string) (uint64, error) {
	result, err := NewNodeClient(rpcAddr, GetBalance, []string{addr}).Call(ctx)
	if err != nil {
		return 0, err
	}

	r := Response{}
	if err := json.Unmarshal(result, &r); err != nil {
		return 0, err
	}
	if r.Error != nil {
		return 0, xerrors.Errorf("node error: %v", r.Error)
	}

	s, ok := r.Result.(string)
	if !ok {
		return 0, xerrors.Errorf("unexpected balance result: %v", r.Result)
	}

	return strconv.ParseUint(s, 10, 64)
}
