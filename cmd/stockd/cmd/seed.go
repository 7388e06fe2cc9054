package cmd

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jaksa-v/stock-tracker/internal/domain/stock"
	"github.com/jaksa-v/stock-tracker/internal/infra/database/postgres"
)

var seedStocksCmd = &cobra.Command{
	Use:   "seed-stocks",
	Short: "Seed the stock directory with the default symbols",
	RunE:  runSeedStocks,
}

func runSeedStocks(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	dbPool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return err
	}
	defer dbPool.Close()

	repo := postgres.NewStockRepository(dbPool)

	seeded := 0
	for _, s := range defaultStocks() {
		if err := repo.Create(ctx, &s); err != nil {
			if errors.Is(err, stock.ErrDuplicateSymbol) {
				log.Info().Str("symbol", s.Symbol).Msg("Symbol already seeded, skipping")
				continue
			}
			return err
		}
		seeded++
		log.Info().Str("symbol", s.Symbol).Msg("Seeded stock")
	}

	log.Info().Int("seeded", seeded).Msg("Stock directory seeding finished")
	return nil
}

func defaultStocks() []stock.Stock {
	return []stock.Stock{
		{
			Symbol:      "AAPL",
			Name:        "Apple Inc.",
			Description: strPtr("Apple Inc. designs, develops, and sells consumer electronics, computer software, and online services."),
		},
		{
			Symbol:      "MSFT",
			Name:        "Microsoft Corporation",
			Description: strPtr("Microsoft Corporation develops, licenses, and supports a range of software products, services, and devices."),
		},
		{
			Symbol:      "GOOGL",
			Name:        "Alphabet Inc.",
			Description: strPtr("Alphabet Inc. is a holding company with Google as its main subsidiary, which focuses on search, cloud computing, and advertising."),
		},
		{
			Symbol:      "AMZN",
			Name:        "Amazon.com, Inc.",
			Description: strPtr("Amazon.com Inc. is an online retailer and cloud computing company that provides a wide array of products and services."),
		},
		{
			Symbol:      "META",
			Name:        "Meta Platforms, Inc.",
			Description: strPtr("Meta Platforms Inc. (formerly Facebook) develops and operates social media platforms and technologies."),
		},
	}
}

func strPtr(s string) *string {
	return &s
}
