package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vibast-solutions/ms-go-club/app/metrics"
	"github.com/vibast-solutions/ms-go-club/app/repository"
	"github.com/vibast-solutions/ms-go-club/app/service"
	"github.com/vibast-solutions/ms-go-club/app/types"
)

const membershipExpiryJob = "membership_expiry"

var membershipExpiryWorker bool

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Run notification batch jobs",
}

var notifyMembershipExpiryCmd = &cobra.Command{
	Use:   "membership-expiry",
	Short: "Notify members whose subscription ends within the next three days",
	Run: func(cmd *cobra.Command, _ []string) {
		cfg := mustLoadConfig()

		db, closeDB := mustOpenDatabase(cfg)
		defer closeDB()

		publisher, closePublisher := mustCreatePublisher(cfg)
		defer closePublisher()

		notifier := service.NewExpiryNotifier(
			repository.NewMemberSubscriptionRepository(db),
			repository.NewUserRepository(db),
			repository.NewNotificationRepository(db),
			publisher,
			cfg.App.Location,
		)

		run := func(ctx context.Context) error {
			result, err := notifier.Run(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), expirySummary(result))
			return nil
		}

		if membershipExpiryWorker {
			runWorker(membershipExpiryJob, cfg.Jobs.MembershipExpiryInterval, run)
			return
		}
		if err := runJob(membershipExpiryJob, func() error { return run(context.Background()) }); err != nil {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(notifyCmd)
	notifyCmd.AddCommand(notifyMembershipExpiryCmd)

	notifyMembershipExpiryCmd.Flags().BoolVar(&membershipExpiryWorker, "worker", false, "Run continuously using configured interval")
}

func expirySummary(result *service.ExpiryRunResult) string {
	return fmt.Sprintf(
		"Sent %d membership expiry notifications for %s to %s.",
		result.Sent,
		result.WindowStart.Format(types.DateLayout),
		result.WindowEnd.Format(types.DateLayout),
	)
}

func runWorker(name string, interval time.Duration, fn func(ctx context.Context) error) {
	if interval <= 0 {
		logrus.WithField("job", name).Fatal("invalid worker interval")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	workLoop(ctx, name, ticker.C, fn)
}

// workLoop runs fn once and then on every tick until ctx is done. Cancelling ctx
// also reaches a run that is still in flight.
func workLoop(ctx context.Context, name string, ticks <-chan time.Time, fn func(ctx context.Context) error) {
	_ = runJob(name, func() error { return fn(ctx) })

	for {
		select {
		case <-ctx.Done():
			logrus.WithField("job", name).Info("Worker shutdown requested")
			return
		case <-ticks:
			_ = runJob(name, func() error { return fn(ctx) })
		}
	}
}

func runJob(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	latency := time.Since(start)
	metrics.JobDuration.WithLabelValues(name).Observe(latency.Seconds())

	entry := logrus.WithField("job", name).WithField("latency", latency.String())
	if err != nil {
		metrics.JobRuns.WithLabelValues(name, "failed").Inc()
		entry.WithError(err).Error("job_failed")
		return err
	}
	metrics.JobRuns.WithLabelValues(name, "completed").Inc()
	entry.Info("job_completed")
	return nil
}
