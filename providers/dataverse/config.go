package dataverse

import (
	"fmt"
	"strings"
	"time"

	"github.com/PartnerPortal/PartnerPortal-Backend/models"
	"github.com/PartnerPortal/PartnerPortal-Backend/utils"
	"github.com/go-playground/validator/v10"
)

const (
	DefaultAuthorityHost = "https://login.microsoftonline.com"
	DefaultAPIVersion    = "v9.2"
	DefaultTimeout       = 30 * time.Second
)

type D365Config struct {
	BaseURL       string        `mapstructure:"D365_BASE_URL" validate:"required,url"`
	ClientID      string        `mapstructure:"D365_CLIENT_ID" validate:"required"`
	ClientSecret  string        `mapstructure:"D365_CLIENT_SECRET" validate:"required"`
	TenantID      string        `mapstructure:"D365_TENANT_ID" validate:"required"`
	Scope         string        `mapstructure:"D365_SCOPE"`
	AuthorityHost string        `mapstructure:"D365_AUTHORITY_HOST" validate:"omitempty,url"`
	APIVersion    string        `mapstructure:"D365_API_VERSION"`
	Timeout       time.Duration `mapstructure:"D365_TIMEOUT"`
}

var configValidator = validator.New()

// LoadD365Config reads the Dataverse section from the .env file or the
// environment and validates it.
func LoadD365Config(path string) (D365Config, error) {
	var c D365Config
	if err := utils.LoadCustomConfig(path, &c); err != nil {
		return D365Config{}, models.NewAPIError(models.ErrorKindConfiguration, 0, "could not load dataverse config", nil, err)
	}
	c = c.withDefaults()
	if err := c.Validate(); err != nil {
		return D365Config{}, err
	}
	return c, nil
}

// Validate reports missing or malformed settings as a configuration error
// naming every offending field.
func (c D365Config) Validate() error {
	err := configValidator.Struct(c)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return models.NewAPIError(models.ErrorKindConfiguration, 0, "invalid dataverse config", nil, err)
	}

	fields := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fields = append(fields, fmt.Sprintf("%s failed on '%s'", fe.Field(), fe.Tag()))
	}
	return models.NewAPIError(models.ErrorKindConfiguration, 0, "invalid dataverse config", fields, err)
}

func (c D365Config) withDefaults() D365Config {
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.AuthorityHost == "" {
		c.AuthorityHost = DefaultAuthorityHost
	}
	c.AuthorityHost = strings.TrimRight(c.AuthorityHost, "/")
	if c.Scope == "" && c.BaseURL != "" {
		c.Scope = c.BaseURL + "/.default"
	}
	if c.APIVersion == "" {
		c.APIVersion = DefaultAPIVersion
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

// TokenURL is the v2 client-credentials endpoint of the tenant.
func (c D365Config) TokenURL() string {
	return fmt.Sprintf("%s/%s/oauth2/v2.0/token", c.AuthorityHost, c.TenantID)
}

// APIURL is the root of the Web API, without a trailing slash.
func (c D365Config) APIURL() string {
	return fmt.Sprintf("%s/api/data/%s", c.BaseURL, c.APIVersion)
}

// Redact masks the client secret for logging
func (c D365Config) Redact() D365Config {
	c.ClientSecret = "****"
	return c
}
