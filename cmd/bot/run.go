package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"ReboundScout/internal/scheduler"
)

var runOnStart bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the scheduled screener until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		log.Info("ReboundScout starting...")

		rec := openRecorder(cfg)
		defer rec.Close()

		// Context for graceful shutdown
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		tn := newNotifier(cfg)
		var sender scheduler.Sender
		if tn != nil {
			sender = tn
		}

		sched := scheduler.NewScheduler(ctx, newScreener(cfg, rec), rec, sender, cfg.Universe)
		if err := sched.Register(cfg.Schedule.ScreenCron); err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()

		if tn != nil {
			go tn.StartPolling(ctx, sched.HandleCommand)
			log.Info("telegram polling started")
		}

		if runOnStart || os.Getenv("RUN_ON_START") == "true" {
			log.Info("run-on-start enabled, screening now")
			go func() {
				if _, err := sched.RunNow(); err != nil {
					log.WithError(err).Error("startup screen failed")
				}
			}()
		}

		log.Infof("ReboundScout is running (screen cron %q). Press Ctrl+C to stop.", cfg.Schedule.ScreenCron)

		// Wait for shutdown signal
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-sigCh:
			log.Info("shutdown signal received, stopping...")
		case <-ctx.Done():
		}
		cancel()
		return nil
	},
}

func init() {
	runCmd.Flags().BoolVar(&runOnStart, "now", false, "run one screen immediately after start")
}
