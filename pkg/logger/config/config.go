package config

import (
	"errors"
	"time"
)

// same numbering as zapcore.Level
const (
	DEBUG_LEVEL = -1
	INFO_LEVEL  = 0
	WARN_LEVEL  = 1
	ERROR_LEVEL = 2
)

type Configuration struct {
	Level      int
	TimeFormat string
}

func (c Configuration) Validate() error {
	if c.Level < DEBUG_LEVEL || c.Level > ERROR_LEVEL {
		return errors.New("logger: LOG_LEVEL must be between -1 (debug) and 2 (error)")
	}
	if c.TimeFormat == "" {
		return errors.New("logger: LOG_TIME_FORMAT must not be empty")
	}
	// layouts without any reference component format every instant identically
	ref := time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC)
	if ref.Format(c.TimeFormat) == ref.Add(25*time.Hour+time.Minute).Format(c.TimeFormat) {
		return errors.New("logger: LOG_TIME_FORMAT is not a valid time layout")
	}
	return nil
}
