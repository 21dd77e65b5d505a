// Copyright (C) 2024 Lumina Payments Limited
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package requester executes GraphQL queries and mutations over HTTPS and
// subscriptions over a persistent websocket, attaching authentication
// headers and, for fund-moving operations, a signature computed from the
// cached signing key.
package requester

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"code.luminapay.io/lumina/auth"
	"code.luminapay.io/lumina/keys"
	"code.luminapay.io/lumina/version"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	signingHeader     = "X-Lumina-Signing"
	signatureVersion  = 1
	signedRequestTTL  = time.Hour
	defaultBaseURL    = "https://api.luminapay.io/graphql/2024-04"
	defaultWSEndpoint = "wss://api.luminapay.io/graphql/subscriptions/2024-04"
	defaultRetries    = 3
)

// Config carries the endpoints the requester talks to. Endpoints are
// explicit configuration, never ambient globals; DefaultConfig supplies the
// production defaults at the composition root.
type Config struct {
	BaseURL     string
	WSEndpoint  string
	HTTPTimeout time.Duration
	// Retries bounds the Retrier wrapping the read-only operations.
	Retries uint64
}

func DefaultConfig() Config {
	return Config{
		BaseURL:     defaultBaseURL,
		WSEndpoint:  defaultWSEndpoint,
		HTTPTimeout: 30 * time.Second,
		Retries:     defaultRetries,
	}
}

// Request is a single GraphQL operation. SigningNodeID marks operations
// that move funds and must carry a signature from the cached key for that
// node. SkipAuthCheck is reserved for the few operations that establish
// authentication in the first place.
type Request struct {
	Name          string
	Query         string
	Variables     map[string]interface{}
	SigningNodeID string
	SkipAuthCheck bool
}

// Requester executes operations against the platform API.
type Requester struct {
	log        *zap.Logger
	cfg        Config
	httpClient *http.Client
	keyCache   *keys.Cache

	mu           sync.Mutex
	authProvider auth.Provider
	sock         *socket
}

// New builds a requester. A nil auth provider defaults to the stub, which
// fails closed; a nil key cache gets a fresh empty one; a nil logger is
// replaced with a no-op.
func New(log *zap.Logger, cfg Config, provider auth.Provider, cache *keys.Cache) *Requester {
	if log == nil {
		log = zap.NewNop()
	}
	if provider == nil {
		provider = auth.NewStubProvider()
	}
	if cache == nil {
		cache = keys.NewCache(nil)
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = DefaultConfig().HTTPTimeout
	}
	return &Requester{
		log:          log,
		cfg:          cfg,
		httpClient:   &http.Client{Timeout: cfg.HTTPTimeout},
		keyCache:     cache,
		authProvider: provider,
	}
}

// SetAuthProvider swaps the active auth provider, e.g. after a session
// expired and the caller re-authenticated.
func (r *Requester) SetAuthProvider(provider auth.Provider) {
	if provider == nil {
		provider = auth.NewStubProvider()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.authProvider = provider
}

// KeyCache exposes the cache signed requests draw from.
func (r *Requester) KeyCache() *keys.Cache {
	return r.keyCache
}

func (r *Requester) provider() auth.Provider {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.authProvider
}

type graphQLMessage struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data   map[string]interface{} `json:"data"`
	Errors []graphQLMessage       `json:"errors"`
}

// Execute runs a query or mutation and returns the response's data object.
// It fails fast, before any network I/O, when the active provider is not
// authorized or when a required signing key is not loaded. Failures are
// never retried at this layer: mutating operations are not proven
// idempotent, so retrying is the caller's decision.
func (r *Requester) Execute(ctx context.Context, req Request) (map[string]interface{}, error) {
	provider := r.provider()

	if !req.SkipAuthCheck && !provider.IsAuthorized() {
		return nil, ErrAuthRequired
	}
	if req.SigningNodeID != "" && !r.keyCache.Has(req.SigningNodeID) {
		return nil, fmt.Errorf("%w: no signing key is loaded for node %s", ErrAuthRequired, req.SigningNodeID)
	}

	body, signature, err := r.buildBody(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.BaseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("couldn't build the HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("User-Agent", version.UserAgent())
	provider.ApplyHeaders(httpReq.Header)
	if signature != "" {
		httpReq.Header.Set(signingHeader, signature)
	}

	r.log.Debug("executing GraphQL operation",
		zap.String("operation", req.Name),
		zap.String("host", r.cfg.BaseURL),
		zap.Bool("signed", signature != ""),
	)

	resp, err := r.httpClient.Do(httpReq)
	if err != nil {
		r.log.Error("the request transport failed",
			zap.String("operation", req.Name),
			zap.Error(err),
		)
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		r.log.Error("the server rejected the request",
			zap.String("operation", req.Name),
			zap.Int("status", resp.StatusCode),
		)
		return nil, &NetworkError{StatusCode: resp.StatusCode}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	var parsed graphQLResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("couldn't decode the response: %w", err)}
	}

	if len(parsed.Errors) > 0 {
		messages := make([]string, 0, len(parsed.Errors))
		for _, e := range parsed.Errors {
			messages = append(messages, e.Message)
		}
		r.log.Error("the server returned GraphQL errors",
			zap.String("operation", req.Name),
			zap.Strings("messages", messages),
		)
		return nil, &GraphQLError{Messages: messages}
	}

	return parsed.Data, nil
}

// buildBody serializes the operation and, for signed requests, extends it
// with a nonce and expiry before signing the exact bytes put on the wire.
func (r *Requester) buildBody(req Request) ([]byte, string, error) {
	payload := map[string]interface{}{
		"query":     req.Query,
		"variables": req.Variables,
	}
	if req.Variables == nil {
		payload["variables"] = map[string]interface{}{}
	}

	if req.SigningNodeID == "" {
		body, err := json.Marshal(payload)
		if err != nil {
			return nil, "", fmt.Errorf("couldn't serialize the request: %w", err)
		}
		return body, "", nil
	}

	payload["nonce"] = uuid.NewString()
	payload["expires_at"] = time.Now().Add(signedRequestTTL).UTC().Format(time.RFC3339)

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, "", fmt.Errorf("couldn't serialize the request: %w", err)
	}

	sig, err := r.keyCache.Sign(req.SigningNodeID, body)
	if err != nil {
		return nil, "", err
	}

	header, err := json.Marshal(map[string]interface{}{
		"v":               signatureVersion,
		"signature":       base64.StdEncoding.EncodeToString(sig),
		"signing_node_id": req.SigningNodeID,
	})
	if err != nil {
		return nil, "", fmt.Errorf("couldn't serialize the signature header: %w", err)
	}

	return body, string(header), nil
}
