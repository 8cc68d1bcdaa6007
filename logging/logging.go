// Package logging provides the logrus logger used across the adapter.
package logging

import (
	"github.com/sirupsen/logrus"

	"github.com/nexlify/esbridge/config"
)

// New initializes a logger from configuration. Unknown levels fall back to
// info.
func New(cfg *config.Logger) *logrus.Logger {
	log := logrus.New()

	level := logrus.InfoLevel
	if cfg != nil && cfg.Level != "" {
		if parsed, err := logrus.ParseLevel(cfg.Level); err == nil {
			level = parsed
		}
	}
	log.SetLevel(level)

	if cfg != nil && cfg.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log
}
