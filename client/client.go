// Package client is a typed HTTP client for the keyguess REST API.
package client

import (
	"context"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/guileen/keyguess/codec"
	"github.com/guileen/keyguess/errors"
	"github.com/guileen/keyguess/inspect"
	"github.com/guileen/keyguess/protocol/api"
)

const (
	healthEndpoint        = "/api/v1/health"
	memEncodeEndpoint     = "/api/v1/memcomparable/encode"
	memDecodeEndpoint     = "/api/v1/memcomparable/decode"
	varintEncodeEndpoint  = "/api/v1/varint/encode"
	varintDecodeEndpoint  = "/api/v1/varint/decode"
	endianEncodeEndpoint  = "/api/v1/endian/encode"
	endianDecodeEndpoint  = "/api/v1/endian/decode"
	recordParseEndpoint   = "/api/v1/record/parse"
	recordEncodeEndpoint  = "/api/v1/record/encode"
	writeParseEndpoint    = "/api/v1/write/parse"
	writeEncodeEndpoint   = "/api/v1/write/encode"
	guessEndpoint         = "/api/v1/guess"
	storeScanEndpoint     = "/api/v1/store/scan"
	defaultRequestTimeout = 10 * time.Second
)

// Client talks to a keyguess server.
type Client struct {
	client *resty.Client
}

// New creates a client for the server at baseURL, e.g. http://127.0.0.1:8080.
func New(baseURL string) *Client {
	return &Client{
		client: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(defaultRequestTimeout).
			SetHeader("Content-Type", "application/json"),
	}
}

// post sends body and decodes the answer into result. Error responses come
// back as *errors.CodecError carrying the server's code.
func (c *Client) post(ctx context.Context, endpoint string, body, result any) error {
	var apiErr api.ErrorResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(result).
		SetError(&apiErr).
		Post(endpoint)
	return checkResponse(endpoint, resp, err, &apiErr)
}

// get is post for query-parameter endpoints.
func (c *Client) get(ctx context.Context, endpoint string, params map[string]string, result any) error {
	var apiErr api.ErrorResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(result).
		SetError(&apiErr).
		Get(endpoint)
	return checkResponse(endpoint, resp, err, &apiErr)
}

func checkResponse(endpoint string, resp *resty.Response, err error, apiErr *api.ErrorResponse) error {
	if err != nil {
		return err
	}
	if resp.IsError() {
		if apiErr.Code == "" {
			return errors.Errorf(errors.ErrCodeUnknown, "%s: unexpected status %s", endpoint, resp.Status())
		}
		return errors.New(apiErr.Code, apiErr.Error)
	}
	return nil
}

// Health reports the server status.
func (c *Client) Health(ctx context.Context) (string, error) {
	var out api.HealthResponse
	if err := c.get(ctx, healthEndpoint, nil, &out); err != nil {
		return "", err
	}
	return out.Status, nil
}

// EncodeMemcomparable encodes input (in any notation) as memcomparable bytes.
func (c *Client) EncodeMemcomparable(ctx context.Context, input string) (*api.BytesResponse, error) {
	var out api.BytesResponse
	if err := c.post(ctx, memEncodeEndpoint, api.InputRequest{Input: input}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DecodeMemcomparable decodes memcomparable bytes.
func (c *Client) DecodeMemcomparable(ctx context.Context, input string) (*api.BytesResponse, error) {
	var out api.BytesResponse
	if err := c.post(ctx, memDecodeEndpoint, api.InputRequest{Input: input}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) EncodeVarint(ctx context.Context, value uint64) (*api.BytesResponse, error) {
	var out api.BytesResponse
	if err := c.post(ctx, varintEncodeEndpoint, api.VarintEncodeRequest{Value: value}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DecodeVarint(ctx context.Context, input string) (*api.VarintDecodeResponse, error) {
	var out api.VarintDecodeResponse
	if err := c.post(ctx, varintDecodeEndpoint, api.InputRequest{Input: input}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) EncodeEndian(ctx context.Context, order codec.ByteOrder, value uint64) (*api.BytesResponse, error) {
	var out api.BytesResponse
	if err := c.post(ctx, endianEncodeEndpoint, api.EndianEncodeRequest{Value: value, Order: order}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DecodeEndian(ctx context.Context, order codec.ByteOrder, input string) (uint64, error) {
	var out api.EndianDecodeResponse
	if err := c.post(ctx, endianDecodeEndpoint, api.EndianDecodeRequest{Input: input, Order: order}, &out); err != nil {
		return 0, err
	}
	return out.Value, nil
}

func (c *Client) ParseRecord(ctx context.Context, input string) (*api.RecordResponse, error) {
	var out api.RecordResponse
	if err := c.post(ctx, recordParseEndpoint, api.InputRequest{Input: input}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) EncodeRecord(ctx context.Context, rec codec.Record) (*api.BytesResponse, error) {
	var out api.BytesResponse
	if err := c.post(ctx, recordEncodeEndpoint, rec, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ParseWrite decodes a write record, with field spans when trace is set.
func (c *Client) ParseWrite(ctx context.Context, input string, trace bool) (*api.WriteParseResponse, error) {
	endpoint := writeParseEndpoint
	if trace {
		endpoint += "?trace=true"
	}
	var out api.WriteParseResponse
	if err := c.post(ctx, endpoint, api.InputRequest{Input: input}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) EncodeWrite(ctx context.Context, req api.WriteEncodeRequest) (*api.BytesResponse, error) {
	var out api.BytesResponse
	if err := c.post(ctx, writeEncodeEndpoint, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Guess asks the server for every interpretation of input.
func (c *Client) Guess(ctx context.Context, input string) (*inspect.Report, error) {
	var out inspect.Report
	if err := c.post(ctx, guessEndpoint, api.InputRequest{Input: input}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ScanStore decodes up to limit stored pairs whose keys start with prefix
// (any input notation). An empty prefix scans from the first key; a limit
// of zero or less uses the server default. Servers without a store answer 404.
func (c *Client) ScanStore(ctx context.Context, prefix string, limit int) (*api.ScanResponse, error) {
	params := map[string]string{}
	if prefix != "" {
		params["prefix"] = prefix
	}
	if limit > 0 {
		params["limit"] = strconv.Itoa(limit)
	}
	var out api.ScanResponse
	if err := c.get(ctx, storeScanEndpoint, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
