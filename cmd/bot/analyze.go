package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"ReboundScout/internal/model"
	"ReboundScout/internal/recorder"
	"ReboundScout/internal/strategy"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze SYMBOL",
	Short: "Analyse one symbol and print the verdict with its evidence as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sc := newScreener(cfg, recorder.NewNoopRecorder())
		res, bars, err := sc.Screen(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := struct {
			model.ScreenResult
			Overlay *model.SupportOverlay `json:"overlay,omitempty"`
		}{ScreenResult: res}
		if overlay, ok := strategy.SupportOverlayFor(res, bars); ok {
			out.Overlay = &overlay
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}
