package converter

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/zagvozdeen/coffeeshop/config"
)

// FieldError reports a single field of the environment that cannot be emitted.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Validate checks that every field is populated and the URLs are absolute http(s) addresses.
// The returned error joins one *FieldError per bad field.
func Validate(cfg config.Config) error {
	var errs []error
	errs = append(errs, checkURL("apiServerUrl", cfg.APIServerURL))
	errs = append(errs, checkDomain("auth0.url", cfg.Auth0.URL))
	errs = append(errs, checkRequired("auth0.audience", cfg.Auth0.Audience))
	errs = append(errs, checkRequired("auth0.clientId", cfg.Auth0.ClientID))
	errs = append(errs, checkURL("auth0.callbackURL", cfg.Auth0.CallbackURL))
	return errors.Join(errs...)
}

func checkRequired(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &FieldError{Field: field, Reason: "must not be empty"}
	}
	return nil
}

func checkURL(field, value string) error {
	if err := checkRequired(field, value); err != nil {
		return err
	}
	u, err := url.Parse(value)
	if err != nil {
		return &FieldError{Field: field, Reason: err.Error()}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &FieldError{Field: field, Reason: fmt.Sprintf("unsupported scheme %q", u.Scheme)}
	}
	if u.Host == "" {
		return &FieldError{Field: field, Reason: "missing host"}
	}
	return nil
}

func checkDomain(field, value string) error {
	if err := checkRequired(field, value); err != nil {
		return err
	}
	if strings.Contains(value, "://") || strings.ContainsAny(value, "/?# ") {
		return &FieldError{Field: field, Reason: "must be a bare domain prefix"}
	}
	return nil
}
