package main

import (
	"io"

	"github.com/9seconds/ipinfo/ipinfolib"
	"github.com/rs/zerolog"
)

type logger struct {
	lookupLog zerolog.Logger
	cacheLog  zerolog.Logger
}

func (l *logger) LookupError(target string, err error) {
	l.lookupLog.Error().Str("target", target).Err(err).Msg("")
}

func (l *logger) CacheError(key string, err error) {
	l.cacheLog.Warn().Str("key", key).Err(err).Msg("")
}

func (l *logger) CacheHit(target string) {
	l.cacheLog.Debug().Str("target", target).Msg("Cache hit")
}

func newLogger(w io.Writer, level zerolog.Level) ipinfolib.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	return &logger{
		lookupLog: zerolog.New(w).Level(level).With().Timestamp().Str("event_name", "lookup").Logger(),
		cacheLog:  zerolog.New(w).Level(level).With().Timestamp().Str("event_name", "cache").Logger(),
	}
}
