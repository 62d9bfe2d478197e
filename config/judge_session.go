package config

import "time"

// Judge session tuning
type JudgeSessionConfig struct {
	ActivityThrottle time.Duration // Minimum gap between persisted activity updates
	SessionStaleness time.Duration // Maximum judge inactivity before a session is considered stale
	MinNameLength    int           // Minimum trimmed length of a judge display name
}

var DefaultJudgeSessionConfig = JudgeSessionConfig{
	ActivityThrottle: 30 * time.Second,
	SessionStaleness: 24 * time.Hour,
	MinNameLength:    2,
}
