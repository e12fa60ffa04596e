//go:build prod

package config

// Built with -tags prod.
const isProduction = true
