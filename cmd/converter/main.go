package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/zagvozdeen/coffeeshop/internal/cli"
	"github.com/zagvozdeen/coffeeshop/internal/converter"
)

func main() {
	cmd := &cobra.Command{
		Use:          "converter",
		Short:        "Generate the environment files for the application build",
		SilenceUsage: true,
	}
	v := cli.Bind(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := cli.Config(v)
		if err != nil {
			return err
		}
		return converter.New(cfg, v.GetString("dist")).Run()
	}
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
