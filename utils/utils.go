package utils

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Log is the process-wide logger. main replaces it once config is loaded.
var Log = zerolog.New(os.Stdout).With().Timestamp().Logger()

func AddToLogMessage(logMessagesBuilder *strings.Builder, strToAdd string) {

	if logMessagesBuilder.Len() == logMessagesBuilder.Cap() {

		logMessagesBuilder.Grow(len(strToAdd))
	}

	logMessagesBuilder.WriteString(strToAdd)
	logMessagesBuilder.WriteString(";")
	logMessagesBuilder.WriteString("\n")
}

// FlushLogMessage writes the accumulated request trail as a single log event
func FlushLogMessage(logMessagesBuilder *strings.Builder) {
	if logMessagesBuilder.Len() == 0 {
		return
	}
	Log.Info().Msg(strings.TrimSuffix(logMessagesBuilder.String(), "\n"))
}
