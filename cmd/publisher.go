package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-club/app/events"
	"github.com/vibast-solutions/ms-go-club/config"
)

// mustCreatePublisher dials the broker when AMQP_URL is set. Without it events are dropped.
func mustCreatePublisher(cfg *config.Config) (events.Publisher, func()) {
	if cfg.AMQP.URL == "" {
		return events.NoopPublisher{}, func() {}
	}

	publisher, closeFn, err := events.Dial(cfg.AMQP.URL, cfg.AMQP.Exchange)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to message broker")
	}
	logrus.WithField("exchange", cfg.AMQP.Exchange).Info("Publishing notification events")

	return publisher, func() {
		if err := closeFn(); err != nil {
			logrus.WithError(err).Warn("Failed to close message broker connection")
		}
	}
}
