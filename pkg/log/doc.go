// Package log provides a logging abstraction for envtap components.
//
// This package defines a Logger interface that can be implemented by any
// logging library. A zerolog implementation and a no-op logger are provided.
//
// # Usage
//
//	logger := log.NewZerologAdapter(os.Stderr, zerolog.InfoLevel)
//	runLog := logger.With(log.String("run", token))
//	runLog.Info("sink initialized", log.String("path", path))
//
// Use the no-op logger when output is not wanted:
//
//	logger := log.NewNoopLogger()
package log
