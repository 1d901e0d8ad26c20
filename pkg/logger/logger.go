package logger

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	log zerolog.Logger
	mu  sync.RWMutex
)

func init() {
	log = zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// Init configures the global logger for the given environment.
// development gets a console writer at debug level, everything else JSON at info.
func Init(env string) {
	mu.Lock()
	defer mu.Unlock()

	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.ErrorFieldName = "error"

	switch strings.ToLower(env) {
	case "development", "dev", "local":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
			With().Timestamp().Logger()
	case "test":
		zerolog.SetGlobalLevel(zerolog.Disabled)
		log = zerolog.Nop()
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		log = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
}

func Debug(msg string, keyvals ...any) {
	write(current().Debug(), msg, keyvals)
}

func Info(msg string, keyvals ...any) {
	write(current().Info(), msg, keyvals)
}

func Warn(msg string, keyvals ...any) {
	write(current().Warn(), msg, keyvals)
}

func Error(msg string, keyvals ...any) {
	write(current().Error(), msg, keyvals)
}

// Fatal logs and exits the process.
func Fatal(msg string, keyvals ...any) {
	write(current().Fatal(), msg, keyvals)
}

func current() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := log
	return &l
}

// write turns loose key/value pairs into zerolog fields. A bare error is
// logged under "error"; a trailing key without value goes under "extra".
func write(ev *zerolog.Event, msg string, keyvals []any) {
	if ev == nil {
		return
	}

	for i := 0; i < len(keyvals); i++ {
		switch v := keyvals[i].(type) {
		case error:
			ev = ev.Err(v)
		case string:
			if i+1 >= len(keyvals) {
				ev = ev.Str("extra", v)
				continue
			}
			ev = ev.Interface(v, keyvals[i+1])
			i++
		default:
			ev = ev.Str("extra", fmt.Sprint(v))
		}
	}

	ev.Msg(msg)
}
