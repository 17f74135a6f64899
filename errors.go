// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package partial

import (
	"errors"

	"code.hybscloud.com/iox"
)

var (
	// ErrInvalidArgument reports a nil stream or waker, or a malformed op.
	ErrInvalidArgument = errors.New("partial: invalid argument")

	// ErrInterrupted is the scripted "interrupted, retry" condition.
	//
	// It carries no state: the call made no progress and the caller is
	// expected to issue the same call again.
	ErrInterrupted = errors.New("partial: interrupted")
)

// These are provided as package-level aliases so callers can reference the
// semantic control-flow errors without importing iox directly.
var (
	// ErrWouldBlock means “no further progress without waiting”.
	//
	// Wrappers return it for a WouldBlock op. Under the poll contract the
	// wrapper has already called Waker.Wake, so the caller will be polled
	// again.
	ErrWouldBlock = iox.ErrWouldBlock

	// ErrMore means “this completion is usable and more completions will follow”.
	//
	// Wrappers never generate it; inner streams may, and it is propagated
	// unchanged.
	ErrMore = iox.ErrMore
)

// IsRetryable reports whether err asks the caller to simply repeat the call:
// ErrInterrupted or ErrWouldBlock, including wrapped forms.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrInterrupted) || errors.Is(err, ErrWouldBlock)
}
