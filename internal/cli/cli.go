// Package cli holds the flag and environment wiring shared by the commands.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/zagvozdeen/coffeeshop/config"
)

const envPrefix = "COFFEESHOP"

// Bind registers the persistent --env and --dist flags on cmd and returns a viper
// instance that also reads them from COFFEESHOP_ENV and COFFEESHOP_DIST.
func Bind(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	cmd.PersistentFlags().StringP("env", "e", "", fmt.Sprintf("Environment to use [development, production] (default %s)", config.Target()))
	cmd.PersistentFlags().String("dist", "dist", "Directory holding the generated versions")
	_ = v.BindPFlag("env", cmd.PersistentFlags().Lookup("env"))
	_ = v.BindPFlag("dist", cmd.PersistentFlags().Lookup("dist"))
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Config resolves the --env value to the configuration of that target.
func Config(v *viper.Viper) (config.Config, error) {
	name := v.GetString("env")
	cfg, ok := config.ForTarget(name)
	if !ok {
		return config.Config{}, fmt.Errorf("unsupported environment %q, valid options include [development, production]", name)
	}
	return cfg, nil
}
