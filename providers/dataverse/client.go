package dataverse

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/PartnerPortal/PartnerPortal-Backend/providers"
	dataversemodels "github.com/PartnerPortal/PartnerPortal-Backend/providers/dataverse/dataverse_models"
	"github.com/PartnerPortal/PartnerPortal-Backend/services/monitoring/logging"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

const tokenFlightKey = "access_token"

// D365Client talks to the Dataverse Web API on behalf of the portal using
// an application identity (client-credentials grant).
type D365Client struct {
	providers.BaseProvider
	config       D365Config
	cache        *TokenCache
	group        singleflight.Group
	tokenFetches atomic.Int64
}

type Option func(*D365Client)

func WithHTTPClient(c *http.Client) Option {
	return func(d *D365Client) { d.Client = c }
}

func WithTokenCache(c *TokenCache) Option {
	return func(d *D365Client) { d.cache = c }
}

func WithLogger(l *logging.Logger) Option {
	return func(d *D365Client) { d.Logger = l }
}

func NewD365Client(config D365Config, opts ...Option) (*D365Client, error) {
	config = config.withDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	d := &D365Client{
		BaseProvider: providers.BaseProvider{
			Name:    providers.Dataverse,
			BaseURL: config.BaseURL,
			Client: &http.Client{
				Timeout: config.Timeout,
			},
			Logger: logging.NewLoggerWithOutput(io.Discard),
		},
		config: config,
		cache:  NewTokenCache(DefaultExpiryBuffer, time.Now),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d, nil
}

func (d *D365Client) Config() D365Config {
	return d.config
}

// GetAccessToken returns a bearer token for the Web API, fetching a new one
// when the cached token is missing or expires within the buffer. Concurrent
// callers share a single in-flight fetch.
func (d *D365Client) GetAccessToken(ctx context.Context) (string, error) {
	if token, ok := d.cache.Get(); ok {
		return token, nil
	}

	// The shared fetch must not die with the first caller's context, the
	// http client timeout bounds it instead.
	fetchCtx := context.WithoutCancel(ctx)

	ch := d.group.DoChan(tokenFlightKey, func() (interface{}, error) {
		if token, ok := d.cache.Get(); ok {
			return token, nil
		}
		return d.fetchToken(fetchCtx)
	})

	// A caller that gives up stops waiting; the fetch carries on for the rest.
	select {
	case <-ctx.Done():
		return "", networkError("gave up waiting for the access token", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func (d *D365Client) fetchToken(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("client_id", d.config.ClientID)
	form.Set("client_secret", d.config.ClientSecret)
	form.Set("scope", d.config.Scope)
	form.Set("grant_type", "client_credentials")

	d.tokenFetches.Add(1)

	resp, err := d.MakeRequest(ctx, http.MethodPost, d.config.TokenURL(), form, nil)
	if err != nil {
		return "", networkError("could not reach the token endpoint", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", networkError("could not read the token response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		d.Logger.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"tenant": d.config.TenantID,
		}).Error("dataverse token request failed")
		return "", tokenError(resp.StatusCode, body)
	}

	var apiResponse dataversemodels.TokenApiResponse
	if err := json.Unmarshal(body, &apiResponse); err != nil {
		return "", responseError("error parsing token response", err)
	}
	if apiResponse.AccessToken == "" {
		return "", responseError("token response did not contain an access token", nil)
	}

	cached := d.cache.Set(apiResponse.AccessToken, time.Duration(apiResponse.ExpiresIn)*time.Second)
	d.Logger.WithField("expires_at", cached.ExpiresAt).Info("dataverse access token refreshed")

	return apiResponse.AccessToken, nil
}

// InvalidateToken forces the next call to fetch a new token.
func (d *D365Client) InvalidateToken() {
	d.cache.Invalidate()
}

// TokenExpiry reports when the cached token expires, if one is held.
func (d *D365Client) TokenExpiry() (time.Time, bool) {
	t, ok := d.cache.Peek()
	return t.ExpiresAt, ok
}

// TokenFetches counts round trips made to the token endpoint.
func (d *D365Client) TokenFetches() int64 {
	return d.tokenFetches.Load()
}

type apiResponse struct {
	status int
	header http.Header
	body   []byte
}

func (d *D365Client) send(ctx context.Context, method, path string, query *QueryOptions, body interface{}, headers map[string]string) (*apiResponse, error) {
	resp, err := d.sendOnce(ctx, method, path, query, body, headers)
	if err != nil {
		return nil, err
	}

	// The token may have been revoked upstream before its expiry, retry once
	if resp.status == http.StatusUnauthorized {
		d.Logger.WithField("path", path).Warn("dataverse rejected the cached token, refreshing")
		d.cache.Invalidate()
		resp, err = d.sendOnce(ctx, method, path, query, body, headers)
		if err != nil {
			return nil, err
		}
	}

	if resp.status < 200 || resp.status > 299 {
		d.Logger.WithFields(logrus.Fields{
			"method": method,
			"path":   path,
			"status": resp.status,
		}).Error("dataverse request failed")
		return nil, statusError(resp.status, resp.body)
	}

	return resp, nil
}

func (d *D365Client) sendOnce(ctx context.Context, method, path string, query *QueryOptions, body interface{}, headers map[string]string) (*apiResponse, error) {
	token, err := d.GetAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	requiredHeaders := map[string]string{
		"Authorization":    "Bearer " + token,
		"Accept":           "application/json",
		"OData-MaxVersion": "4.0",
		"OData-Version":    "4.0",
		"Prefer":           `odata.include-annotations="*"`,
	}
	if body != nil {
		requiredHeaders["Content-Type"] = "application/json; charset=utf-8"
	}
	for k, v := range headers {
		requiredHeaders[k] = v
	}

	resp, err := d.MakeRequest(ctx, method, d.buildURL(path, query), body, requiredHeaders)
	if errors.Is(err, providers.ErrEncodeBody) {
		return nil, requestError("could not encode the request body", err)
	}
	if err != nil {
		return nil, networkError("could not reach dataverse", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, networkError("could not read the dataverse response", err)
	}

	return &apiResponse{
		status: resp.StatusCode,
		header: resp.Header,
		body:   respBody,
	}, nil
}

func (d *D365Client) buildURL(path string, query *QueryOptions) string {
	u := d.config.APIURL() + "/" + strings.TrimLeft(path, "/")
	if q := query.Encode(); q != "" {
		u += "?" + q
	}
	return u
}

// Request performs an authenticated Web API call and returns the raw JSON
// body. A 204 No Content reply yields a nil body and no error.
func (d *D365Client) Request(ctx context.Context, method, path string, query *QueryOptions, body interface{}) (json.RawMessage, error) {
	resp, err := d.send(ctx, method, path, query, body, nil)
	if err != nil {
		return nil, err
	}

	if resp.status == http.StatusNoContent || len(bytes.TrimSpace(resp.body)) == 0 {
		return nil, nil
	}

	return json.RawMessage(resp.body), nil
}

// Fetch decodes the reply of a Web API call into a new T. The result is nil
// when the Web API answers 204 No Content.
func Fetch[T any](ctx context.Context, d *D365Client, method, path string, query *QueryOptions, body interface{}) (*T, error) {
	raw, err := d.Request(ctx, method, path, query, body)
	if err != nil || raw == nil {
		return nil, err
	}

	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, responseError("error parsing dataverse response", err)
	}
	return &out, nil
}

// Get decodes the reply into out, leaving it untouched on 204.
func (d *D365Client) Get(ctx context.Context, path string, query *QueryOptions, out interface{}) error {
	raw, err := d.Request(ctx, http.MethodGet, path, query, nil)
	if err != nil || raw == nil {
		return err
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return responseError("error parsing dataverse response", err)
	}
	return nil
}

// Create inserts a row and returns its id from the OData-EntityId header.
func (d *D365Client) Create(ctx context.Context, entitySet string, body interface{}) (string, error) {
	resp, err := d.send(ctx, http.MethodPost, entitySet, nil, body, nil)
	if err != nil {
		return "", err
	}
	return entityIDFromHeader(resp.header.Get("OData-EntityId")), nil
}

// Patch updates an existing row. If-Match stops the Web API from upserting.
func (d *D365Client) Patch(ctx context.Context, path string, body interface{}) error {
	_, err := d.send(ctx, http.MethodPatch, path, nil, body, map[string]string{"If-Match": "*"})
	return err
}

func (d *D365Client) Delete(ctx context.Context, path string) error {
	_, err := d.send(ctx, http.MethodDelete, path, nil, nil, nil)
	return err
}

func (d *D365Client) WhoAmI(ctx context.Context) (*dataversemodels.WhoAmIResponse, error) {
	return Fetch[dataversemodels.WhoAmIResponse](ctx, d, http.MethodGet, "WhoAmI", nil, nil)
}

// Ping implements providers.HealthChecker
func (d *D365Client) Ping(ctx context.Context) error {
	_, err := d.WhoAmI(ctx)
	return err
}
