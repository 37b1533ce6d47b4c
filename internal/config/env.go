package config

import (
	"os"
	"strings"
)

// ApplyEnv overlays environment overrides onto a loaded config.
// SMARTTODO_ADDR and SMARTTODO_DATA_DIR win over the file values.
func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv("SMARTTODO_ADDR")); v != "" {
		c.Server.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv("SMARTTODO_DATA_DIR")); v != "" {
		c.Storage.DataDir = v
	}
}

// UseDiskStaticByEnv switches the static file handler to the on-disk tree
// for frontend development instead of the embedded copy.
func UseDiskStaticByEnv() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("SMARTTODO_DEV_STATIC"))) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}
