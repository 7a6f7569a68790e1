package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/ValentinKolb/kvql/rpc/common"
	"github.com/ValentinKolb/kvql/rpc/serializer"
	"github.com/ValentinKolb/kvql/rpc/transport"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

func NewHttpClientTransport() transport.IRPCClientTransport {
	return &httpClientTransport{}
}

type httpClientTransport struct {
	serverURLs []*url.URL
	client     *http.Client
	counter    uint32
	retryCount int
	accept     string
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IRPCClientTransport)
// --------------------------------------------------------------------------

func (t *httpClientTransport) Connect(config common.ClientConfig) error {
	if len(config.Endpoints) == 0 {
		return fmt.Errorf("no endpoints configured")
	}

	// Parse each server URL
	parsedURLs := make([]*url.URL, len(config.Endpoints))
	for i, server := range config.Endpoints {
		parsedURL, err := url.Parse(strings.TrimSpace(server))
		if err != nil {
			return err
		}
		if parsedURL.Scheme == "" || parsedURL.Host == "" {
			return fmt.Errorf("invalid endpoint %q (expected e.g. http://localhost:8080)", server)
		}
		parsedURLs[i] = parsedURL.JoinPath("query")
	}

	// Pick the media type of the answers
	s, err := serializer.ForName(config.Format)
	if err != nil {
		return err
	}

	// Set the client and server URLs
	t.client = &http.Client{
		Timeout: time.Duration(config.TimeoutSecond) * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
	t.serverURLs = parsedURLs
	t.counter = 0
	t.retryCount = max(1, config.RetryCount)
	t.accept = s.ContentType()

	// No error
	return nil
}

func (t *httpClientTransport) Send(ctx context.Context, raw string) ([]byte, error) {
	// Check if the transport is initialized
	if t.client == nil {
		return nil, fmt.Errorf("http transport not initialized")
	}

	requestID := uuid.NewString()

	// Send the request (with retries). Each attempt goes to the next server.
	var (
		resp *http.Response
		err  error
	)
	for i := 0; i < t.retryCount; i++ {
		idx := atomic.AddUint32(&t.counter, 1) % uint32(len(t.serverURLs))
		resp, err = t.do(ctx, t.serverURLs[idx], raw, requestID)
		if err == nil || ctx.Err() != nil {
			break
		}
		Logger.Debugf("request %s to %s failed (attempt %d/%d): %v", requestID, t.serverURLs[idx], i+1, t.retryCount, err)
	}
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			Logger.Errorf("Failed to close response body: %v", err)
		}
	}()

	// Read the response body
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	// Check if the response status code is OK
	if resp.StatusCode != http.StatusOK {
		remote := &common.RemoteError{StatusCode: resp.StatusCode}
		// yaml is a superset of json, so this decodes both encodings
		if yaml.Unmarshal(body, &remote.Response) != nil || remote.Response.Error == "" {
			remote.Response = common.ErrorResponse{Error: strings.TrimSpace(string(body))}
		}
		return nil, remote
	}
	return body, nil
}

func (t *httpClientTransport) Close() error {
	// Close the client
	if t.client != nil {
		t.client.CloseIdleConnections()
	}

	// Reset the client and server URLs
	t.client = nil
	t.serverURLs = nil

	return nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// do sends one attempt. A fresh request is built for every attempt because
// the body reader is consumed.
func (t *httpClientTransport) do(ctx context.Context, target *url.URL, raw, requestID string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.String(), strings.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	req.Header.Set("Accept", t.accept)
	req.Header.Set(HeaderRequestID, requestID)
	return t.client.Do(req)
}
