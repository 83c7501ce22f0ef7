package logger

import (
	"sync"

	"github.com/rs/zerolog"
)

// Logger is a levelled component logger backed by zerolog.
type Logger struct {
	MinLevel LogLevel
	mu       sync.Mutex
	zl       zerolog.Logger
}

// LogLevel represents the severity of a log message
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)
