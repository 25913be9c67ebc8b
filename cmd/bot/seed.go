package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Upsert the configured universe into the ticker store",
	RunE: func(cmd *cobra.Command, args []string) error {
		rec := openRecorder(cfg)
		defer rec.Close()

		if err := rec.UpsertTickers(cfg.Universe); err != nil {
			return fmt.Errorf("seed tickers: %w", err)
		}
		log.Infof("seeded %d tickers", len(cfg.Universe))
		return nil
	},
}
