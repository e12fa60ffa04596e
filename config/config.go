package config

// Config is the environment the single-page application is built against.
type Config struct {
	IsProduction bool   `json:"production"`
	APIServerURL string `json:"apiServerUrl"`
	Auth0        Auth0  `json:"auth0"`
}

type Auth0 struct {
	// URL is the tenant domain prefix, e.g. "dev-dz95eudq.us" for dev-dz95eudq.us.auth0.com.
	URL         string `json:"url"`
	Audience    string `json:"audience"`
	ClientID    string `json:"clientId"`
	CallbackURL string `json:"callbackURL"`
}

const (
	auth0Domain   = "dev-dz95eudq.us"
	auth0Audience = "drinks"
	auth0ClientID = "i8bWjTj2ngl2q5wOVwvrH8KmG76Ur7hk"
)

// New returns the configuration of the compiled build target.
func New() Config {
	if isProduction {
		return Production()
	}
	return Development()
}

func Development() Config {
	return Config{
		IsProduction: false,
		APIServerURL: "http://127.0.0.1:5000",
		Auth0: Auth0{
			URL:         auth0Domain,
			Audience:    auth0Audience,
			ClientID:    auth0ClientID,
			CallbackURL: "http://localhost:8100",
		},
	}
}

func Production() Config {
	return Config{
		IsProduction: true,
		APIServerURL: "https://api.coffeeshop.app",
		Auth0: Auth0{
			URL:         auth0Domain,
			Audience:    auth0Audience,
			ClientID:    auth0ClientID,
			CallbackURL: "https://coffeeshop.app",
		},
	}
}

// Target names the compiled build target.
func Target() string {
	if isProduction {
		return "production"
	}
	return "development"
}

// ForTarget returns the configuration of the named target, ok is false for unknown names.
func ForTarget(name string) (Config, bool) {
	switch name {
	case "":
		return New(), true
	case "development", "dev":
		return Development(), true
	case "production", "prod":
		return Production(), true
	}
	return Config{}, false
}
