package converter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/template"

	"github.com/zagvozdeen/coffeeshop/config"
)

var environmentTemplate = template.Must(template.New("environment.ts").Funcs(template.FuncMap{
	"js": jsString,
}).Parse(`export const environment = {
  production: {{ .IsProduction }},
  apiServerUrl: {{ js .APIServerURL }}, // the running api server url
  auth0: {
    url: {{ js .Auth0.URL }}, // the auth0 domain prefix
    audience: {{ js .Auth0.Audience }}, // the audience set for the auth0 app
    clientId: {{ js .Auth0.ClientID }}, // the client id generated for the auth0 app
    callbackURL: {{ js .Auth0.CallbackURL }}, // the base url of the running ionic application.
  }
};
`))

// jsString quotes s as a JavaScript string literal.
func jsString(s string) (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// NewEnvironmentTS renders the environment module imported by the application build.
func NewEnvironmentTS(cfg config.Config) ([]byte, error) {
	var buf bytes.Buffer
	if err := environmentTemplate.Execute(&buf, cfg); err != nil {
		return nil, fmt.Errorf("failed to render environment.ts: %w", err)
	}
	return buf.Bytes(), nil
}

func NewEnvironmentJSON(cfg config.Config) ([]byte, error) {
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal env.json: %w", err)
	}
	return append(b, '\n'), nil
}
