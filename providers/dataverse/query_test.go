package dataverse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryOptionsEncode(t *testing.T) {
	tests := []struct {
		name  string
		query *QueryOptions
		want  string
	}{
		{"Nil options", nil, ""},
		{"Empty options", &QueryOptions{}, ""},
		{
			"Select and top",
			&QueryOptions{Select: []string{"contactid", "fullname"}, Top: 5},
			"$select=contactid,fullname&$top=5",
		},
		{
			"Filter is escaped with %20",
			&QueryOptions{Filter: "emailaddress1 eq 'a@b.com'"},
			"$filter=emailaddress1%20eq%20%27a%40b.com%27",
		},
		{
			"Fixed option order",
			&QueryOptions{
				Count:   true,
				Expand:  []string{"parentcustomerid_account($select=name)"},
				Top:     10,
				OrderBy: []string{"fullname asc"},
				Filter:  "statecode eq 0",
				Select:  []string{"fullname"},
			},
			"$select=fullname&$filter=statecode%20eq%200&$orderby=fullname%20asc&$top=10&$expand=parentcustomerid_account%28%24select%3Dname%29&$count=true",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.query.Encode())
		})
	}
}

func TestEscapeODataString(t *testing.T) {
	assert.Equal(t, "'plain'", EscapeODataString("plain"))
	assert.Equal(t, "'O''Brien'", EscapeODataString("O'Brien"))
	assert.Equal(t, "''''", EscapeODataString("'"))
}

func TestEntityPaths(t *testing.T) {
	assert.Equal(t, "contacts(abc)", EntityPath("contacts", "abc"))
	assert.Equal(t, "abc", entityIDFromHeader("https://org.crm.dynamics.com/api/data/v9.2/contacts(abc)"))
	assert.Equal(t, "", entityIDFromHeader(""))
}

func TestConfigDefaults(t *testing.T) {
	c := D365Config{
		BaseURL:      "https://org.crm.dynamics.com/",
		ClientID:     "id",
		ClientSecret: "secret",
		TenantID:     "tenant",
	}.withDefaults()

	assert.NoError(t, c.Validate())
	assert.Equal(t, "https://org.crm.dynamics.com/.default", c.Scope)
	assert.Equal(t, "https://login.microsoftonline.com/tenant/oauth2/v2.0/token", c.TokenURL())
	assert.Equal(t, "https://org.crm.dynamics.com/api/data/v9.2", c.APIURL())
	assert.Equal(t, DefaultTimeout, c.Timeout)
	assert.Equal(t, "****", c.Redact().ClientSecret)
}
