package log

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the process-wide logger. Development gets colored console
// output at debug level; production logs plain at info.
func New(environment string) zerolog.Logger {
	zerolog.SetGlobalLevel(levelFor(environment))

	var out io.Writer = zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
		NoColor:    environment == "production",
	}

	return zerolog.New(out).With().
		Timestamp().
		Str("service", "stockroom-api").
		Str("env", environment).
		Logger()
}

func levelFor(environment string) zerolog.Level {
	if environment == "production" {
		return zerolog.InfoLevel
	}
	return zerolog.DebugLevel
}
