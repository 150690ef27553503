package initializers

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

func LoadEnv() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		Log.Infow("no .env file loaded", "error", err)
	}
}

// Location is the timezone used to decide what "today" is for members.
// Defaults to Asia/Seoul.
func Location() *time.Location {
	name := os.Getenv("APP_TIMEZONE")
	if name == "" {
		name = "Asia/Seoul"
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
