package initializers

import (
	"os"

	"go.uber.org/zap"
)

// Log is a no-op until InitLogger runs so packages and tests can log freely.
var Log = zap.NewNop().Sugar()

func InitLogger() {
	var (
		logger *zap.Logger
		err    error
	)

	if os.Getenv("GIN_MODE") == "release" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return
	}

	Log = logger.Sugar()
}
