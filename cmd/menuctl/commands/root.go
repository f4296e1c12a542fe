// Package commands wires the menuctl CLI: a thin console over the manager
// aggregate, mainly used to poke a tenant's catalog during integration work.
package commands

import (
	"encoding/json"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"menuhub/internal/config"
	"menuhub/internal/gqlclient"
	"menuhub/internal/managers"
)

var (
	app *managers.Aggregate
	log *logrus.Logger

	brandID   string
	pointID   string
	orderType string
)

func Execute() error {
	root := &cobra.Command{
		Use:   "menuctl",
		Short: "Inspect a restaurant platform tenant through the data-access layer",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// A local .env is optional; deploy relies on real env vars.
			_ = godotenv.Load()

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			log = logrus.New()
			if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
				log.SetLevel(level)
			}

			client := gqlclient.New(cfg.Platform.APIURL, cfg.Platform.Token,
				gqlclient.WithLogger(log),
				gqlclient.WithRateLimit(cfg.Client.RateLimitRPS, cfg.Client.RateLimitBurst),
			)

			defaults := managers.Defaults{
				BrandID:    pick(brandID, cfg.Defaults.BrandID),
				PointID:    pick(pointID, cfg.Defaults.PointID),
				OrderType:  pick(orderType, cfg.Defaults.OrderType),
				CityID:     cfg.Defaults.CityID,
				AccountID:  cfg.Defaults.AccountID,
				EmployeeID: cfg.Defaults.EmployeeID,
			}
			app = managers.NewAggregate(client, managers.AggregateOptions{
				Defaults: defaults,
				Logger:   log,
			})
			return nil
		},
	}

	root.PersistentFlags().StringVar(&brandID, "brand", "", "brand id (overrides config default)")
	root.PersistentFlags().StringVar(&pointID, "point", "", "point id (overrides config default)")
	root.PersistentFlags().StringVar(&orderType, "order-type", "", "order type (overrides config default)")

	root.AddCommand(productsCmd(), categoriesCmd(), menuCmd())
	return root.Execute()
}

func pick(explicit, fallback string) string {
	if explicit != "" {
		return explicit
	}
	return fallback
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
