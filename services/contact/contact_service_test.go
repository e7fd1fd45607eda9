package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/PartnerPortal/PartnerPortal-Backend/models"
	"github.com/PartnerPortal/PartnerPortal-Backend/providers/dataverse"
	dataversemodels "github.com/PartnerPortal/PartnerPortal-Backend/providers/dataverse/dataverse_models"
	"github.com/PartnerPortal/PartnerPortal-Backend/services/monitoring/logging"
	"github.com/PartnerPortal/PartnerPortal-Backend/services/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const contactID = "5b1f6c1e-7a0c-4c64-9a52-0f6a3c0b9b11"

type fakeClient struct {
	responses map[string]interface{}
	err       error
	gets      []string
	queries   []*dataverse.QueryOptions
	patches   map[string]interface{}
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		responses: map[string]interface{}{},
		patches:   map[string]interface{}{},
	}
}

func (f *fakeClient) Get(_ context.Context, path string, query *dataverse.QueryOptions, out interface{}) error {
	f.gets = append(f.gets, path)
	f.queries = append(f.queries, query)
	if f.err != nil {
		return f.err
	}
	resp, ok := f.responses[path]
	if !ok {
		// behaves like a 204, out is left untouched
		return nil
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func (f *fakeClient) Patch(_ context.Context, path string, body interface{}) error {
	if f.err != nil {
		return f.err
	}
	f.patches[path] = body
	return nil
}

func newTestService(client *fakeClient) *ContactService {
	cache := NewMemoryProfileCache(security.NewCache(time.Minute, time.Minute))
	return NewContactService(client, cache, logging.NewLoggerWithOutput(&bytes.Buffer{}))
}

func sampleContact() dataversemodels.Contact {
	return dataversemodels.Contact{
		ContactID:          contactID,
		FirstName:          "Ada",
		LastName:           "Lovelace",
		FullName:           "Ada Lovelace",
		Email:              "ada@example.com",
		JobTitle:           "Engineer",
		ParentCustomerID:   "a1",
		ParentCustomerName: "Analytical Engines Ltd",
	}
}

func TestGetProfileByEmail(t *testing.T) {
	client := newFakeClient()
	client.responses["contacts"] = dataversemodels.Collection[dataversemodels.Contact]{
		Value: []dataversemodels.Contact{sampleContact()},
	}
	service := newTestService(client)

	profile, err := service.GetProfileByEmail(context.Background(), "  Ada@Example.com ")
	require.NoError(t, err)
	assert.Equal(t, contactID, profile.ID)
	assert.Equal(t, "Ada Lovelace", profile.FullName)
	require.NotNil(t, profile.Company)
	assert.Equal(t, "Analytical Engines Ltd", profile.Company.Name)

	require.Len(t, client.queries, 1)
	assert.Equal(t, "emailaddress1 eq 'ada@example.com'", client.queries[0].Filter)
	assert.Equal(t, 1, client.queries[0].Top)

	// second lookup is served from the cache
	_, err = service.GetProfileByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.Len(t, client.gets, 1)
}

func TestGetProfileByEmailNotFound(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		responses map[string]interface{}
	}{
		{"Empty email", " ", nil},
		{"No matching contact", "nobody@example.com", map[string]interface{}{
			"contacts": dataversemodels.Collection[dataversemodels.Contact]{},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newFakeClient()
			for k, v := range tt.responses {
				client.responses[k] = v
			}

			_, err := newTestService(client).GetProfileByEmail(context.Background(), tt.email)
			assert.ErrorIs(t, err, ErrContactNotFound)
		})
	}
}

func TestGetProfileByEmailEscapesQuotes(t *testing.T) {
	client := newFakeClient()
	client.responses["contacts"] = dataversemodels.Collection[dataversemodels.Contact]{}

	_, _ = newTestService(client).GetProfileByEmail(context.Background(), "o'brien@example.com")
	require.Len(t, client.queries, 1)
	assert.Equal(t, "emailaddress1 eq 'o''brien@example.com'", client.queries[0].Filter)
}

func TestGetContact(t *testing.T) {
	client := newFakeClient()
	client.responses["contacts("+contactID+")"] = sampleContact()
	service := newTestService(client)

	profile, err := service.GetContact(context.Background(), contactID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", profile.Email)

	_, err = service.GetContact(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrInvalidContactID)

	// a 204 leaves the row empty
	_, err = service.GetContact(context.Background(), "0b6a1f5e-0000-4000-8000-000000000000")
	assert.ErrorIs(t, err, ErrContactNotFound)
}

func TestGetContactUpstreamNotFound(t *testing.T) {
	client := newFakeClient()
	client.err = models.NewAPIError(models.ErrorKindRequest, http.StatusNotFound, "Does Not Exist", nil, nil)

	_, err := newTestService(client).GetContact(context.Background(), contactID)
	assert.ErrorIs(t, err, ErrContactNotFound)
}

func TestGetContactUpstreamFailurePassesThrough(t *testing.T) {
	client := newFakeClient()
	client.err = models.NewAPIError(models.ErrorKindNetwork, 0, "could not reach dataverse", nil, errors.New("dial tcp"))

	_, err := newTestService(client).GetContact(context.Background(), contactID)
	assert.True(t, models.IsKind(err, models.ErrorKindNetwork))
}

func TestListContacts(t *testing.T) {
	count := 42
	c := sampleContact()

	tests := []struct {
		name       string
		params     ListParams
		wantTop    int
		wantFilter string
	}{
		{"Defaults", ListParams{}, DefaultPageSize, ""},
		{"Top is capped", ListParams{Top: 1000}, MaxPageSize, ""},
		{"Search filters name and email", ListParams{Search: "ada", Top: 10}, 10, "contains(fullname,'ada') or contains(emailaddress1,'ada')"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newFakeClient()
			client.responses["contacts"] = dataversemodels.Collection[dataversemodels.Contact]{
				Count: &count,
				Value: []dataversemodels.Contact{c},
			}

			page, err := newTestService(client).ListContacts(context.Background(), tt.params)
			require.NoError(t, err)
			assert.Equal(t, 42, page.Total)
			assert.Len(t, page.Profiles, 1)

			require.Len(t, client.queries, 1)
			assert.Equal(t, tt.wantTop, client.queries[0].Top)
			assert.Equal(t, tt.wantFilter, client.queries[0].Filter)
			assert.True(t, client.queries[0].Count)
		})
	}
}

func TestUpdateProfileInvalidatesCache(t *testing.T) {
	client := newFakeClient()
	client.responses["contacts"] = dataversemodels.Collection[dataversemodels.Contact]{
		Value: []dataversemodels.Contact{sampleContact()},
	}
	updated := sampleContact()
	updated.JobTitle = "CTO"
	client.responses["contacts("+contactID+")"] = updated
	service := newTestService(client)

	_, err := service.GetProfileByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)

	title := "  CTO "
	profile, err := service.UpdateProfile(context.Background(), contactID, "ada@example.com", ProfileUpdate{JobTitle: &title})
	require.NoError(t, err)
	assert.Equal(t, "CTO", profile.JobTitle)

	patch, ok := client.patches["contacts("+contactID+")"].(dataversemodels.ContactPatch)
	require.True(t, ok)
	require.NotNil(t, patch.JobTitle)
	assert.Equal(t, "CTO", *patch.JobTitle)
	assert.Nil(t, patch.FirstName)

	// the cached profile was dropped, next lookup goes upstream
	_, err = service.GetProfileByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"contacts", "contacts(" + contactID + ")", "contacts"}, client.gets)
}

func TestGetAccount(t *testing.T) {
	client := newFakeClient()
	accountID := "9c0d5d1a-1111-4222-8333-444455556666"
	client.responses["accounts("+accountID+")"] = json.RawMessage(`{"accountid":"` + accountID + `","name":"Analytical Engines Ltd","revenue":1250000.5}`)

	company, err := newTestService(client).GetAccount(context.Background(), accountID)
	require.NoError(t, err)
	assert.Equal(t, "Analytical Engines Ltd", company.Name)
	assert.Equal(t, "1250000.50", company.Revenue)

	_, err = newTestService(client).GetAccount(context.Background(), "bad")
	assert.ErrorIs(t, err, ErrInvalidAccountID)
}
