package logger

import (
	"io"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}

// SetLevel sets the minimum level by name (debug, info, warn, error).
func SetLevel(level string) error {
	l, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	log.SetLevel(l)
	return nil
}

func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

func entry(component string, fields map[string]any) *logrus.Entry {
	e := logrus.NewEntry(log)
	if component != "" {
		e = e.WithField("component", component)
	}
	if len(fields) > 0 {
		e = e.WithFields(logrus.Fields(fields))
	}
	return e
}

func Debug(message string) {
	entry("", nil).Debug(message)
}

func DebugCF(component string, message string, fields map[string]any) {
	entry(component, fields).Debug(message)
}

func Info(message string) {
	entry("", nil).Info(message)
}

func InfoC(component string, message string) {
	entry(component, nil).Info(message)
}

func InfoCF(component string, message string, fields map[string]any) {
	entry(component, fields).Info(message)
}

func WarnC(component string, message string) {
	entry(component, nil).Warn(message)
}

func WarnCF(component string, message string, fields map[string]any) {
	entry(component, fields).Warn(message)
}

func Error(message string) {
	entry("", nil).Error(message)
}

func ErrorCF(component string, message string, fields map[string]any) {
	entry(component, fields).Error(message)
}
