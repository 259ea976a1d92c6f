// SPDX-License-Identifier: EPL-2.0

// Package logging owns the module-wide zap logger. Progress reporting for
// corpus preprocessing and training goes through the sugared logger.
package logging

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
)

var (
	sugar *zap.SugaredLogger
	once  sync.Once
)

// Init initializes the global sugared logger based on LOG_LEVEL and
// redirects the standard library logger to zap. Safe to call repeatedly.
func Init() *zap.SugaredLogger {
	once.Do(func() {
		level := strings.ToLower(os.Getenv("LOG_LEVEL"))
		var logger *zap.Logger
		if level == "debug" {
			l, _ := zap.NewDevelopment()
			logger = l
		} else {
			l, _ := zap.NewProduction()
			logger = l
		}
		// Unify stdlib logs with zap output
		_ = zap.RedirectStdLog(logger)
		sugar = logger.Sugar()
	})
	return sugar
}

// Sugar returns the initialized sugared logger.
func Sugar() *zap.SugaredLogger { return Init() }
