package typestore

import "github.com/sirupsen/logrus"

type config struct {
	log      logrus.FieldLogger
	capacity int
}

// Option configures a Store created by New.
type Option func(cfg *config)

// WithLogger sets the logger receiving failures to release replaced or
// cleared values. Defaults to logrus.StandardLogger().
func WithLogger(log logrus.FieldLogger) Option {
	return func(cfg *config) {
		cfg.log = log
	}
}

// WithCapacity presizes the store for the given number of types.
func WithCapacity(capacity int) Option {
	return func(cfg *config) {
		cfg.capacity = capacity
	}
}
