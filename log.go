// Copyright 2016 aletheia7. All rights reserved. Use of this source code is
// governed by a BSD-2-Clause license that can be found in the LICENSE file.

package norm

import (
	"log/slog"
	"sync/atomic"
)

var logger atomic.Pointer[slog.Logger]

func init() {
	logger.Store(slog.New(slog.DiscardHandler))
}

// Set_logger installs the logger used for Instance.Set_debug() records and
// native failures. nil restores the default, which discards everything.
//
// libnorm's own debug output is controlled separately with
// Instance.Set_debug_level() and Instance.Open_debug_log().
func Set_logger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	logger.Store(l)
}

func get_logger() *slog.Logger {
	return logger.Load()
}
