package api

import (
	"errors"

	"github.com/carverauto/quantumdir/pkg/directory"
	"github.com/carverauto/quantumdir/pkg/logger"
	"github.com/carverauto/quantumdir/pkg/provider"
)

var errMissingListenAddr = errors.New("listen_addr is required")

// ServerConfig is the full service configuration.
type ServerConfig struct {
	ListenAddr string           `json:"listen_addr"`
	APIKey     string           `json:"api_key,omitempty"`
	Logging    *logger.Config   `json:"logging,omitempty"`
	Directory  directory.Config `json:"directory"`
	Provider   provider.Config  `json:"provider"`
}

// Validate checks the required fields and cascades into the component
// configs.
func (c *ServerConfig) Validate() error {
	if c.ListenAddr == "" {
		return errMissingListenAddr
	}

	if err := c.Directory.Validate(); err != nil {
		return err
	}

	return c.Provider.Validate()
}
