package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		password string
		wantErr  string
	}{
		{"valid password", "Sup3rSecret!Pass", ""},
		{"too short", "Sh0rt!pw", "at least 12 characters"},
		{"too long", strings.Repeat("Aa1!", 33), "must not exceed 128"},
		{"no uppercase", "sup3rsecret!pass", "uppercase letter"},
		{"no lowercase", "SUP3RSECRET!PASS", "lowercase letter"},
		{"no digit", "SuperSecret!Pass", "digit"},
		{"no special character", "Sup3rSecretPass1", "special character"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidatePassword(tt.password)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"valid", "user@example.com", false},
		{"valid with plus", "user+tag@example.co.uk", false},
		{"missing at", "userexample.com", true},
		{"missing domain", "user@", true},
		{"missing tld", "user@example", true},
		{"spaces", "user name@example.com", true},
		{"too long", strings.Repeat("a", 250) + "@ex.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateCountry(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		code    string
		wantErr bool
	}{
		{"empty is optional", "", false},
		{"valid", "DE", false},
		{"lowercase", "de", true},
		{"too long", "DEU", true},
		{"digits", "D1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateCountry(tt.code)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
