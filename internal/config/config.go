package config

import "time"

// Config is the root configuration for taskdeck.
type Config struct {
	Workspace WorkspaceConfig `json:"workspace"`
	Gateway   GatewayConfig   `json:"gateway"`
	Events    EventsConfig    `json:"events"`
	Storage   StorageConfig   `json:"storage"`
}

// WorkspaceConfig controls where the todo list is stored.
type WorkspaceConfig struct {
	Dir         string `json:"dir"`          // explicit workspace directory (overrides env)
	FallbackDir string `json:"fallback_dir"` // process-wide fallback when no workspace dir applies
}

// GatewayConfig holds the gateway server settings.
type GatewayConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// EventsConfig holds event bus settings.
type EventsConfig struct {
	BufferSize int   `json:"buffer_size"`
	Log        *bool `json:"log"` // JSONL event log, on by default
}

// LogEnabled reports whether the JSONL event log should run.
func (e EventsConfig) LogEnabled() bool {
	return e.Log == nil || *e.Log
}

// StorageConfig bounds persistence I/O.
type StorageConfig struct {
	WriteTimeout Duration `json:"write_timeout"`
}

// Duration wraps time.Duration for JSON unmarshaling.
type Duration time.Duration

func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	// Remove quotes
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Duration(d).String() + `"`), nil
}
