//go:build !prod

package config

const isProduction = false
