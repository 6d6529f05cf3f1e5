package log

import "gopkg.in/Sirupsen/logrus.v0"

// Level mirrors logrus levels so that both logging families agree on
// severities.
type Level uint8

const (
	PanicLevel = Level(logrus.PanicLevel)
	FatalLevel = Level(logrus.FatalLevel)
	ErrorLevel = Level(logrus.ErrorLevel)
	WarnLevel  = Level(logrus.WarnLevel)
	InfoLevel  = Level(logrus.InfoLevel)
	DebugLevel = Level(logrus.DebugLevel)
)

func (l Level) String() string {
	return logrus.Level(l).String()
}
