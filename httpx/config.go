package httpx

import (
	"errors"
	"fmt"
	"os"
)

// Config is built once at startup and shared read-only by every
// connection. Do not modify it after the Server has started.
type Config struct {
	// Directory is the root served by the files routes. Empty disables
	// them; requests to /files then fail with 500.
	Directory string
	// LegacyTrailingCRLF appends an extra CRLF after every response body.
	LegacyTrailingCRLF bool
	// MaxHeaderBytes limits a single request or header line (default 8 KiB).
	MaxHeaderBytes int
	// MaxBodyBytes limits the request body (default 32 MiB).
	MaxBodyBytes int64
}

// Validate checks that Directory, when set, is an existing directory.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("httpx: nil config")
	}
	if c.MaxHeaderBytes < 0 || c.MaxBodyBytes < 0 {
		return errors.New("httpx: negative size limit")
	}
	if c.Directory == "" {
		return nil
	}
	fi, err := os.Stat(c.Directory)
	if err != nil {
		return fmt.Errorf("httpx: directory: %w", err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("httpx: %s is not a directory", c.Directory)
	}
	return nil
}

func (c *Config) headerLimit() int {
	if c.MaxHeaderBytes <= 0 {
		return 8 << 10
	}
	return c.MaxHeaderBytes
}

func (c *Config) bodyLimit() int64 {
	if c.MaxBodyBytes <= 0 {
		return 32 << 20
	}
	return c.MaxBodyBytes
}
