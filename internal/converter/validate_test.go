package converter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zagvozdeen/coffeeshop/config"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		fields []string
	}{
		{name: "development", mutate: func(*config.Config) {}},
		{name: "empty api url", mutate: func(c *config.Config) { c.APIServerURL = "" }, fields: []string{"apiServerUrl"}},
		{name: "relative api url", mutate: func(c *config.Config) { c.APIServerURL = "/api" }, fields: []string{"apiServerUrl"}},
		{name: "ftp callback", mutate: func(c *config.Config) { c.Auth0.CallbackURL = "ftp://localhost" }, fields: []string{"auth0.callbackURL"}},
		{name: "domain with scheme", mutate: func(c *config.Config) { c.Auth0.URL = "https://tenant" }, fields: []string{"auth0.url"}},
		{name: "blank audience", mutate: func(c *config.Config) { c.Auth0.Audience = "  " }, fields: []string{"auth0.audience"}},
		{
			name: "partial",
			mutate: func(c *config.Config) {
				c.Auth0 = config.Auth0{}
			},
			fields: []string{"auth0.url", "auth0.audience", "auth0.clientId", "auth0.callbackURL"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Development()
			tt.mutate(&cfg)
			err := Validate(cfg)
			if len(tt.fields) == 0 {
				assert.NoError(t, err)
				return
			}
			var got []string
			for _, e := range err.(interface{ Unwrap() []error }).Unwrap() {
				var fe *FieldError
				if errors.As(e, &fe) {
					got = append(got, fe.Field)
				}
			}
			assert.Equal(t, tt.fields, got)
		})
	}
}

func TestValidateTargets(t *testing.T) {
	assert.NoError(t, Validate(config.Development()))
	assert.NoError(t, Validate(config.Production()))
}
