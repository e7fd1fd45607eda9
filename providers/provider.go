package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/PartnerPortal/PartnerPortal-Backend/services/monitoring/logging"
	"github.com/sirupsen/logrus"
)

const (
	Dataverse = "DATAVERSE"
)

// ErrEncodeBody is wrapped by MakeRequest when the body cannot be encoded,
// so callers can tell it apart from transport failures.
var ErrEncodeBody = errors.New("could not encode request body")

// BaseProvider contains common fields and methods
type BaseProvider struct {
	Name    string
	BaseURL string
	Client  *http.Client
	Logger  *logging.Logger
}

// MakeRequest sends body as JSON, except url.Values (form encoded) and
// io.Reader (sent as is). extraHeaders overwrite the defaults.
func (p *BaseProvider) MakeRequest(ctx context.Context, method, url string, body interface{}, extraHeaders map[string]string) (*http.Response, error) {
	reader, contentType, err := encodeBody(body)
	if err != nil {
		return nil, err
	}

	if p.Logger != nil {
		// Never log the body, token requests carry the client secret
		p.Logger.WithFields(logrus.Fields{
			"provider": p.Name,
			"method":   method,
			"url":      url,
		}).Debug("External Request")
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	// Allows for overwriting pre-set keys
	for k, v := range extraHeaders {
		req.Header.Set(k, v)
	}

	return p.Client.Do(req)
}

func encodeBody(body interface{}) (io.Reader, string, error) {
	switch b := body.(type) {
	case nil:
		return nil, "", nil
	case url.Values:
		return strings.NewReader(b.Encode()), "application/x-www-form-urlencoded", nil
	case io.Reader:
		return b, "", nil
	default:
		jsonBody, err := json.Marshal(b)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrEncodeBody, err)
		}
		return bytes.NewBuffer(jsonBody), "application/json", nil
	}
}

// Provider is an interface that all specific providers must implement
type Provider interface {
	GetName() string
	GetBaseURL() string
	GetClient() *http.Client
}

// HealthChecker is implemented by providers that can verify their upstream
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// ProviderService manages multiple providers
type ProviderService struct {
	providers map[string]Provider
	mu        sync.RWMutex
}

// NewProviderService initializes a new ProviderService
func NewProviderService() *ProviderService {
	return &ProviderService{
		providers: make(map[string]Provider),
	}
}

// AddProvider adds a new provider to the service
func (s *ProviderService) AddProvider(provider Provider) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.providers[provider.GetName()] = provider
}

// GetProvider retrieves a provider by name
func (s *ProviderService) GetProvider(name string) (Provider, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	provider, exists := s.providers[name]
	return provider, exists
}

// Names lists registered providers in a stable order
func (s *ProviderService) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.providers))
	for n := range s.providers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Implement the Provider interface methods for BaseProvider
func (bp *BaseProvider) GetName() string         { return bp.Name }
func (bp *BaseProvider) GetBaseURL() string      { return bp.BaseURL }
func (bp *BaseProvider) GetClient() *http.Client { return bp.Client }
