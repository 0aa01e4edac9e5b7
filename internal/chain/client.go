package chain

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/uederson-ferreira/social-fi-credit/internal/platform/retry"
)

const (
	requestTimeout = 15 * time.Second

	gasPrice         = 1_000_000_000
	gasLimitContract = 500_000
	txVersion        = 1
)

// Client is a thin MultiversX gateway client covering the three calls the
// engine needs: account lookup, view queries, and transaction submission.
type Client struct {
	httpClient  *http.Client
	gatewayURL  string
	chainID     string
	retryPolicy retry.Policy
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

func WithClock(clock clockwork.Clock) Option {
	return func(c *Client) { c.retryPolicy.Clock = clock }
}

func NewClient(gatewayURL, chainID string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		gatewayURL: gatewayURL,
		chainID:    chainID,
		retryPolicy: retry.Policy{
			MaxAttempts:      3,
			InitialBackoff:   time.Second,
			RateLimitBackoff: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// gatewayResponse is the envelope every gateway endpoint wraps its payload in.
type gatewayResponse struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
	Code  string          `json:"code"`
}

type statusError struct {
	StatusCode int
	Body       string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("gateway returned %d: %s", e.StatusCode, e.Body)
}

func classifyStatus(err error) retry.Action {
	var se *statusError
	if !errors.As(err, &se) {
		return retry.Retry
	}
	switch {
	case se.StatusCode == http.StatusTooManyRequests:
		return retry.After
	case se.StatusCode >= 500:
		return retry.Retry
	default:
		return retry.Stop
	}
}

func (c *Client) do(ctx context.Context, method, url string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &statusError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var envelope gatewayResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("failed to decode gateway response: %w", err)
	}
	if envelope.Code != "successful" {
		return fmt.Errorf("gateway call unsuccessful: %s", envelope.Error)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("failed to decode gateway payload: %w", err)
	}
	return nil
}

func (c *Client) doWithRetry(ctx context.Context, method, url string, payload, out any) error {
	var encoded []byte
	if payload != nil {
		var err error
		encoded, err = json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
	}

	return retry.DoVoid(ctx, c.retryPolicy, classifyStatus, func() error {
		var body io.Reader
		if encoded != nil {
			body = bytes.NewReader(encoded)
		}
		return c.do(ctx, method, url, body, out)
	})
}

type accountData struct {
	Account struct {
		Address string `json:"address"`
		Nonce   uint64 `json:"nonce"`
		Balance string `json:"balance"`
	} `json:"account"`
}

// AccountNonce fetches the current nonce for an address.
func (c *Client) AccountNonce(ctx context.Context, address string) (uint64, error) {
	var data accountData
	url := fmt.Sprintf("%s/address/%s", c.gatewayURL, address)
	if err := c.doWithRetry(ctx, http.MethodGet, url, nil, &data); err != nil {
		return 0, fmt.Errorf("failed to fetch account %s: %w", address, err)
	}
	return data.Account.Nonce, nil
}

type vmQueryRequest struct {
	SCAddress string   `json:"scAddress"`
	FuncName  string   `json:"funcName"`
	Args      []string `json:"args"`
}

type vmQueryData struct {
	Data struct {
		ReturnData []string `json:"returnData"`
		ReturnCode string   `json:"returnCode"`
	} `json:"data"`
}

// QueryContract runs a read-only view function and returns the decoded
// return values. Arguments must already be hex-encoded.
func (c *Client) QueryContract(ctx context.Context, contract, function string, args []string) ([][]byte, error) {
	if args == nil {
		args = []string{}
	}
	payload := vmQueryRequest{SCAddress: contract, FuncName: function, Args: args}

	var data vmQueryData
	url := c.gatewayURL + "/vm-values/query"
	if err := c.doWithRetry(ctx, http.MethodPost, url, payload, &data); err != nil {
		return nil, fmt.Errorf("failed to query %s on %s: %w", function, contract, err)
	}
	if data.Data.ReturnCode != "ok" {
		return nil, fmt.Errorf("contract query %s returned %q", function, data.Data.ReturnCode)
	}

	decoded := make([][]byte, 0, len(data.Data.ReturnData))
	for _, item := range data.Data.ReturnData {
		raw, err := base64.StdEncoding.DecodeString(item)
		if err != nil {
			return nil, fmt.Errorf("failed to decode return data: %w", err)
		}
		decoded = append(decoded, raw)
	}
	return decoded, nil
}

type transaction struct {
	Nonce    uint64 `json:"nonce"`
	Value    string `json:"value"`
	Receiver string `json:"receiver"`
	Sender   string `json:"sender"`
	GasPrice uint64 `json:"gasPrice"`
	GasLimit uint64 `json:"gasLimit"`
	Data     string `json:"data"`
	ChainID  string `json:"chainID"`
	Version  int    `json:"version"`
}

type sendTxData struct {
	TxHash string `json:"txHash"`
}

// CallContract builds and submits a contract-call transaction from the
// sender to the contract. Arguments must already be hex-encoded; the call
// data is the hex of "function@arg@arg...".
func (c *Client) CallContract(ctx context.Context, sender, contract, function string, args []string) (string, error) {
	nonce, err := c.AccountNonce(ctx, sender)
	if err != nil {
		return "", err
	}

	call := function
	for _, arg := range args {
		call += "@" + arg
	}

	tx := transaction{
		Nonce:    nonce,
		Value:    "0",
		Receiver: contract,
		Sender:   sender,
		GasPrice: gasPrice,
		GasLimit: gasLimitContract,
		Data:     fmt.Sprintf("%x", call),
		ChainID:  c.chainID,
		Version:  txVersion,
	}

	var data sendTxData
	url := c.gatewayURL + "/transaction/send"
	if err := c.doWithRetry(ctx, http.MethodPost, url, tx, &data); err != nil {
		return "", fmt.Errorf("failed to send transaction: %w", err)
	}
	return data.TxHash, nil
}
