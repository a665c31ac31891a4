// ABOUTME: Logrus-backed implementation of interfaces.Logger
// ABOUTME: Supports JSON or text output and optional size-based file rotation via lumberjack

package logruslog

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the logger
type Options struct {
	// Level is debug, info, warn or error; unknown values fall back to info
	Level string

	// Format is json (default) or text
	Format string

	// File enables rotated file output in addition to stdout
	File string

	// Output replaces stdout, mainly for tests
	Output io.Writer
}

// Logger adapts a logrus.Logger to interfaces.Logger
type Logger struct {
	log    *logrus.Logger
	rotate *lumberjack.Logger
}

// New builds a logrus logger from opts
func New(opts Options) *Logger {
	log := logrus.New()

	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if opts.Format == "text" {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	var out io.Writer = os.Stdout
	if opts.Output != nil {
		out = opts.Output
	}

	l := &Logger{log: log}
	if opts.File != "" {
		l.rotate = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    100, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		out = io.MultiWriter(out, l.rotate)
	}
	log.SetOutput(out)

	return l
}

func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Debug(msg)
}

func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Info(msg)
}

func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Warn(msg)
}

func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Error(msg)
}

// Close releases the rotated log file, if any
func (l *Logger) Close() error {
	if l.rotate != nil {
		return l.rotate.Close()
	}
	return nil
}
