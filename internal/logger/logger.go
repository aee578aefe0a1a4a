package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New creates the service logger. Development gets human-readable text, every
// other environment gets JSON lines.
func New(service, env, level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	if env == "development" {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	log.WithFields(logrus.Fields{"service": service, "env": env}).Info("logger initialized")
	return log
}
