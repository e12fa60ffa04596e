package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/zagvozdeen/coffeeshop/api"
	"github.com/zagvozdeen/coffeeshop/internal/cli"
)

func main() {
	cmd := &cobra.Command{
		Use:          "api",
		Short:        "Serve the application environment",
		SilenceUsage: true,
	}
	v := cli.Bind(cmd)
	cmd.Flags().String("addr", ":8080", "Address to listen on")
	_ = v.BindPFlag("addr", cmd.Flags().Lookup("addr"))
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := cli.Config(v)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return api.New(cfg, v.GetString("dist")).Run(ctx, v.GetString("addr"))
	}
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
