// Package rjmlog provides the logging sink collaborator: a small interface
// stages log through instead of calling fmt.Println/os.Stderr directly,
// mirroring the severity model sketched in
// original_source/ModelPipeline/TransformerComponent.h's TRANSFORM_INFO /
// TRANSFORM_ERROR macros.
package rjmlog

import "github.com/sirupsen/logrus"

// Sink appends formatted text at a given severity. Implementations must be
// safe for concurrent use by Pipeline.ExecuteParallel.
type Sink interface {
	Info(format string, args ...any)
	Error(format string, args ...any)
	Debug(format string, args ...any)
}

// LogrusSink is the default Sink, backed by a *logrus.Logger.
type LogrusSink struct {
	log *logrus.Logger
}

// NewLogrusSink wraps log as a Sink. If log is nil, logrus.StandardLogger
// is used.
func NewLogrusSink(log *logrus.Logger) *LogrusSink {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &LogrusSink{log: log}
}

func (s *LogrusSink) Info(format string, args ...any)  { s.log.Infof(format, args...) }
func (s *LogrusSink) Error(format string, args ...any) { s.log.Errorf(format, args...) }
func (s *LogrusSink) Debug(format string, args ...any) { s.log.Debugf(format, args...) }

// Discard is a Sink that drops everything, used where tests don't care
// about log output.
var Discard Sink = discard{}

type discard struct{}

func (discard) Info(string, ...any)  {}
func (discard) Error(string, ...any) {}
func (discard) Debug(string, ...any) {}
