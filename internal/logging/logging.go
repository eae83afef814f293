// Package logging builds the logrus side-channel logger used by the CLI
// and the driver. Logging never feeds the line-count pipeline's output —
// it exists purely for operator visibility, per spec.md §5.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New builds a *logrus.Logger from the level/format config values,
// defaulting to info/text on an unrecognized value rather than erroring
// (logging setup should never be the reason a scan fails to run).
func New(level, format string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	if format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			DisableColors: false,
		})
	}
	return log
}
