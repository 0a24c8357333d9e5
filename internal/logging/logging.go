// Package logging builds the zap logger of the command line tool
package logging

import "github.com/pkg/errors"
import "go.uber.org/zap"
import "go.uber.org/zap/zapcore"

import "github.com/neurlang/imagenn/parallel"

// New returns a production logger writing JSON to stderr, or a human readable
// development logger at debug level when debug is set.
func New(debug bool) (*zap.Logger, error) {
	var config zap.Config
	if debug {
		config = zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		config = zap.NewProductionConfig()
		config.Sampling = nil
	}
	l, err := config.Build()
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize logger")
	}
	return l, nil
}

// Machine logs the CPU the kernels run on
func Machine(l *zap.Logger) {
	l.Debug("machine",
		zap.String("cpu", parallel.Brand()),
		zap.Int("threads", parallel.Threads()),
		zap.Strings("features", parallel.Features()),
	)
}
