package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/argus-sec/argus/pkg/domain/interfaces"
	"github.com/argus-sec/argus/pkg/service/publisher"
	"github.com/argus-sec/argus/pkg/utils/logging"
)

// Kafka holds CLI flags for event publishing configuration
type Kafka struct {
	brokers []string
	topic   string
}

// Flags returns CLI flags for Kafka configuration
func (k *Kafka) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:        "kafka-broker",
			Usage:       "Kafka broker address (repeatable; event publishing is disabled when unset)",
			Sources:     cli.EnvVars("ARGUS_KAFKA_BROKER"),
			Destination: &k.brokers,
		},
		&cli.StringFlag{
			Name:        "kafka-topic",
			Usage:       "Kafka topic for report lifecycle events",
			Value:       publisher.DefaultTopic,
			Sources:     cli.EnvVars("ARGUS_KAFKA_TOPIC"),
			Destination: &k.topic,
		},
	}
}

// Configure returns an event publisher, or nil when no broker is configured
func (k *Kafka) Configure() (interfaces.EventPublisher, error) {
	if len(k.brokers) == 0 {
		return nil, nil
	}

	pub, err := publisher.New(k.brokers, k.topic)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Kafka publisher")
	}

	logging.Default().Info("Kafka event publishing enabled",
		"brokers", k.brokers,
		"topic", k.topic,
	)

	return pub, nil
}
