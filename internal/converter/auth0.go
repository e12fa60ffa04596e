package converter

import (
	"net/url"

	"github.com/zagvozdeen/coffeeshop/config"
)

// AuthorizeURL builds the Auth0 login link the application redirects to.
func AuthorizeURL(cfg config.Config) string {
	u := url.URL{
		Scheme: "https",
		Host:   cfg.Auth0.URL + ".auth0.com",
		Path:   "/authorize",
		RawQuery: url.Values{
			"audience":      {cfg.Auth0.Audience},
			"response_type": {"token"},
			"client_id":     {cfg.Auth0.ClientID},
			"redirect_uri":  {cfg.Auth0.CallbackURL},
		}.Encode(),
	}
	return u.String()
}
