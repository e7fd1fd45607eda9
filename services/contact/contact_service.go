package contact

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PartnerPortal/PartnerPortal-Backend/models"
	"github.com/PartnerPortal/PartnerPortal-Backend/providers/dataverse"
	dataversemodels "github.com/PartnerPortal/PartnerPortal-Backend/providers/dataverse/dataverse_models"
	"github.com/PartnerPortal/PartnerPortal-Backend/services/monitoring/logging"
	"github.com/google/uuid"
)

const (
	DefaultPageSize = 25
	MaxPageSize     = 100
)

// DataverseClient is the part of the Web API wrapper the service relies on
type DataverseClient interface {
	Get(ctx context.Context, path string, query *dataverse.QueryOptions, out interface{}) error
	Patch(ctx context.Context, path string, body interface{}) error
}

type ContactService struct {
	client DataverseClient
	cache  ProfileCache
	logger *logging.Logger
	ttl    time.Duration
}

func NewContactService(client DataverseClient, cache ProfileCache, logger *logging.Logger) *ContactService {
	return &ContactService{
		client: client,
		cache:  cache,
		logger: logger,
		ttl:    DefaultProfileTTL,
	}
}

func profileKey(email string) string {
	return "profile:" + email
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// GetProfileByEmail resolves the contact whose primary email matches.
func (c *ContactService) GetProfileByEmail(ctx context.Context, email string) (*Profile, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, NewContactError(ErrContactNotFound, email)
	}

	if c.cache != nil {
		cached, ok, err := c.cache.GetProfile(ctx, profileKey(email))
		if err != nil {
			c.logger.Warn(fmt.Sprintf("profile cache lookup failed: %v", err))
		} else if ok {
			return cached, nil
		}
	}

	var result dataversemodels.Collection[dataversemodels.Contact]
	err := c.client.Get(ctx, dataversemodels.ContactsEntity, &dataverse.QueryOptions{
		Select: dataversemodels.ContactSelect,
		Filter: "emailaddress1 eq " + dataverse.EscapeODataString(email),
		Top:    1,
	}, &result)
	if err != nil {
		return nil, err
	}

	if len(result.Value) == 0 {
		return nil, NewContactError(ErrContactNotFound, email)
	}

	profile := ToProfile(&result.Value[0])

	if c.cache != nil {
		if err := c.cache.SetProfile(ctx, profileKey(email), profile, c.ttl); err != nil {
			c.logger.Warn(fmt.Sprintf("profile cache store failed: %v", err))
		}
	}

	return profile, nil
}

func (c *ContactService) GetContact(ctx context.Context, id string) (*Profile, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, NewContactError(ErrInvalidContactID, id, err)
	}

	var row dataversemodels.Contact
	err := c.client.Get(ctx, dataverse.EntityPath(dataversemodels.ContactsEntity, id), &dataverse.QueryOptions{
		Select: dataversemodels.ContactSelect,
	}, &row)
	if isNotFound(err) {
		return nil, NewContactError(ErrContactNotFound, id, err)
	}
	if err != nil {
		return nil, err
	}
	if row.ContactID == "" {
		return nil, NewContactError(ErrContactNotFound, id)
	}

	return ToProfile(&row), nil
}

func (c *ContactService) ListContacts(ctx context.Context, params ListParams) (*ProfilePage, error) {
	top := params.Top
	if top <= 0 {
		top = DefaultPageSize
	}
	if top > MaxPageSize {
		top = MaxPageSize
	}

	query := &dataverse.QueryOptions{
		Select:  dataversemodels.ContactSelect,
		OrderBy: []string{"fullname asc"},
		Top:     top,
		Count:   true,
	}

	if search := strings.TrimSpace(params.Search); search != "" {
		term := dataverse.EscapeODataString(search)
		query.Filter = fmt.Sprintf("contains(fullname,%s) or contains(emailaddress1,%s)", term, term)
	}

	var result dataversemodels.Collection[dataversemodels.Contact]
	if err := c.client.Get(ctx, dataversemodels.ContactsEntity, query, &result); err != nil {
		return nil, err
	}

	total := len(result.Value)
	if result.Count != nil {
		total = *result.Count
	}

	return &ProfilePage{
		Profiles: ToProfileCollection(result.Value),
		Total:    total,
	}, nil
}

// UpdateProfile patches the contact and returns the fresh profile. email is
// the cache key of the profile being changed.
func (c *ContactService) UpdateProfile(ctx context.Context, id, email string, update ProfileUpdate) (*Profile, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, NewContactError(ErrInvalidContactID, id, err)
	}

	if !update.IsEmpty() {
		err := c.client.Patch(ctx, dataverse.EntityPath(dataversemodels.ContactsEntity, id), ToContactPatch(update))
		if isNotFound(err) {
			return nil, NewContactError(ErrContactNotFound, id, err)
		}
		if err != nil {
			return nil, err
		}
		c.logger.Info(fmt.Sprintf("contact %s updated", id))
	}

	if c.cache != nil && email != "" {
		if err := c.cache.DeleteProfile(ctx, profileKey(normalizeEmail(email))); err != nil {
			c.logger.Warn(fmt.Sprintf("profile cache invalidation failed: %v", err))
		}
	}

	return c.GetContact(ctx, id)
}

func (c *ContactService) GetAccount(ctx context.Context, id string) (*Company, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, NewContactError(ErrInvalidAccountID, id, err)
	}

	var row dataversemodels.Account
	err := c.client.Get(ctx, dataverse.EntityPath(dataversemodels.AccountsEntity, id), &dataverse.QueryOptions{
		Select: dataversemodels.AccountSelect,
	}, &row)
	if isNotFound(err) {
		return nil, NewContactError(ErrAccountNotFound, id, err)
	}
	if err != nil {
		return nil, err
	}
	if row.AccountID == "" {
		return nil, NewContactError(ErrAccountNotFound, id)
	}

	return ToCompany(&row), nil
}

func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	apiErr := models.AsAPIError(err)
	return apiErr.Kind == models.ErrorKindRequest && apiErr.Status == http.StatusNotFound
}
