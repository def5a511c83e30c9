package logging

import (
	"os"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

// ConfigureCommandLineLogging sets up logging for command line tools: bare messages on stderr,
// so that stdout carries only command output.
func ConfigureCommandLineLogging() {
	commandLineFormatter := new(CommandLineFormatter)
	log.SetFormatter(commandLineFormatter)
	log.SetOutput(os.Stderr)
}

// ConfigureLogging sets up the standard logger from c.
// If c.Metrics is set, log lines are counted in reg.
func ConfigureLogging(c Config, reg prometheus.Registerer) error {
	if err := c.Validate(); err != nil {
		return err
	}
	level, _ := parseLogLevel(c.Level)
	log.SetLevel(level)
	log.SetOutput(os.Stdout)
	if c.Format == FormatJson {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{ForceColors: true, FullTimestamp: true})
	}
	if c.Metrics {
		hook, err := NewPrometheusHook(reg)
		if err != nil {
			return err
		}
		log.AddHook(hook)
	}
	return nil
}
