package dataversemodels

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	ContactsEntity = "contacts"
	AccountsEntity = "accounts"
)

const formattedValue = "@OData.Community.Display.V1.FormattedValue"

// TokenApiResponse is the body of a successful client-credentials exchange
type TokenApiResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// TokenErrorResponse is what the identity platform returns on failure
type TokenErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	ErrorCodes       []int  `json:"error_codes"`
	TraceID          string `json:"trace_id"`
	CorrelationID    string `json:"correlation_id"`
}

// ErrorResponse is the Web API error envelope
type ErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Collection is a page of entity rows
type Collection[T any] struct {
	Context  string `json:"@odata.context"`
	Count    *int   `json:"@odata.count,omitempty"`
	NextLink string `json:"@odata.nextLink,omitempty"`
	Value    []T    `json:"value"`
}

type WhoAmIResponse struct {
	BusinessUnitID string `json:"BusinessUnitId"`
	UserID         string `json:"UserId"`
	OrganizationID string `json:"OrganizationId"`
}

type Contact struct {
	ETag               string     `json:"@odata.etag,omitempty"`
	ContactID          string     `json:"contactid"`
	FirstName          string     `json:"firstname"`
	LastName           string     `json:"lastname"`
	FullName           string     `json:"fullname"`
	Email              string     `json:"emailaddress1"`
	Phone              string     `json:"telephone1"`
	JobTitle           string     `json:"jobtitle"`
	ParentCustomerID   string     `json:"_parentcustomerid_value"`
	ParentCustomerName string     `json:"_parentcustomerid_value@OData.Community.Display.V1.FormattedValue"`
	CreatedOn          *time.Time `json:"createdon"`
	ModifiedOn         *time.Time `json:"modifiedon"`
}

// ContactSelect is the column set requested for contacts
var ContactSelect = []string{
	"contactid",
	"firstname",
	"lastname",
	"fullname",
	"emailaddress1",
	"telephone1",
	"jobtitle",
	"_parentcustomerid_value",
	"createdon",
	"modifiedon",
}

// ContactPatch carries only the columns a portal user may change
type ContactPatch struct {
	FirstName *string `json:"firstname,omitempty"`
	LastName  *string `json:"lastname,omitempty"`
	Phone     *string `json:"telephone1,omitempty"`
	JobTitle  *string `json:"jobtitle,omitempty"`
}

type Account struct {
	ETag          string              `json:"@odata.etag,omitempty"`
	AccountID     string              `json:"accountid"`
	Name          string              `json:"name"`
	AccountNumber string              `json:"accountnumber"`
	Revenue       decimal.NullDecimal `json:"revenue"`
	Phone         string              `json:"telephone1"`
	Website       string              `json:"websiteurl"`
}

var AccountSelect = []string{
	"accountid",
	"name",
	"accountnumber",
	"revenue",
	"telephone1",
	"websiteurl",
}

// FormattedValueKey returns the annotation key holding the display value of a column.
func FormattedValueKey(column string) string {
	return column + formattedValue
}
