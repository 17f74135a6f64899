// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package partial

import "go.uber.org/zap"

// Options configures a wrapper.
type Options struct {
	// Logger receives one Debug entry per intercepted call. Nil means no
	// logging.
	Logger *zap.Logger

	// Name labels the wrapped stream in log entries. Empty means unlabeled.
	Name string
}

var defaultOptions = Options{
	Logger: nil,
	Name:   "",
}

type Option func(*Options)

// WithLogger routes per-call trace entries to l.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithName labels the wrapped stream in log entries.
func WithName(name string) Option {
	return func(o *Options) { o.Name = name }
}
