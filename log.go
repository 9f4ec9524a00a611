// Copyright 2026 The mdb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdb

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// Logger is the logging seam used for non-fatal diagnostics: skipped
// rows, unknown usage-map types, unsupported column types and memo
// inconsistencies are all reported through here rather than as returned
// errors. Callers that embed this module in a larger service can supply
// their own implementation via Options.Logger.
type Logger interface {
	Debugf(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// logrusLogger adapts a *logrus.Logger to Logger.
type logrusLogger struct {
	l *logrus.Logger
}

func (lg logrusLogger) Debugf(format string, args ...interface{}) { lg.l.Debugf(format, args...) }
func (lg logrusLogger) Warnf(format string, args ...interface{})  { lg.l.Warnf(format, args...) }
func (lg logrusLogger) Errorf(format string, args ...interface{}) { lg.l.Errorf(format, args...) }

var (
	defaultLoggerOnce sync.Once
	defaultLoggerInst Logger
)

// defaultLogger builds the package-wide default: a logrus text logger on
// stderr filtered to Warn-and-above.
func defaultLogger() Logger {
	defaultLoggerOnce.Do(func() {
		l := logrus.New()
		l.SetOutput(os.Stderr)
		l.SetLevel(logrus.WarnLevel)
		defaultLoggerInst = logrusLogger{l: l}
	})
	return defaultLoggerInst
}

// NopLogger discards everything. Useful for tests that assert on parsed
// data and do not want fixture warnings on stderr.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...interface{}) {}
func (NopLogger) Warnf(string, ...interface{})  {}
func (NopLogger) Errorf(string, ...interface{}) {}
