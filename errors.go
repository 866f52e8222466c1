package main

import (
	"errors"
	"fmt"
	"log"
	"time"
)

// Game command failures, mapped onto HTTP statuses at the API boundary.
var (
	ErrInvalidCommand    = errors.New("command not allowed in current phase")
	ErrPlayerNotFound    = errors.New("player not found")
	ErrAnsweringLocked   = errors.New("answering is locked")
	ErrInvalidBet        = errors.New("invalid bet")
	ErrInvalidName       = errors.New("invalid player name")
	ErrInvalidPrediction = errors.New("invalid prediction")
	ErrMalformedRequest  = errors.New("malformed request body")
)

func logf(cfg *Config, format string, args ...any) {
	if !cfg.verbose {
		return
	}

	log.Printf("%s | "+format, append([]any{time.Now().Format(logDate)}, args...)...)
}

func humanReadableSize(bytes int64) string {
	const unit int64 = 1000
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := unit, 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB",
		float64(bytes)/float64(div),
		"kMGTPE"[exp])
}
