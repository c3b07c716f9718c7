// Package app wires configuration, logging, the capability API backend and
// the inspection engine together, and maps run outcomes to exit codes.
package app

import (
	"sync"

	"github.com/tungetti/clinspect/internal/cl"
	"github.com/tungetti/clinspect/internal/config"
	"github.com/tungetti/clinspect/internal/errors"
	"github.com/tungetti/clinspect/internal/logging"
)

// Container holds all application dependencies.
type Container struct {
	mu     sync.RWMutex
	Config *config.Config
	Logger logging.Logger
	API    cl.API
}

// NewContainer creates a new dependency container.
func NewContainer() *Container {
	return &Container{}
}

// SetConfig sets the configuration.
func (c *Container) SetConfig(cfg *config.Config) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Config = cfg
}

// SetLogger sets the logger.
func (c *Container) SetLogger(l logging.Logger) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Logger = l
}

// SetAPI sets the capability API backend.
func (c *Container) SetAPI(api cl.API) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.API = api
}

// GetConfig returns the configuration.
func (c *Container) GetConfig() *config.Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Config
}

// GetLogger returns the logger.
func (c *Container) GetLogger() logging.Logger {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Logger
}

// GetAPI returns the capability API backend.
func (c *Container) GetAPI() cl.API {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.API
}

// Validate checks that all required dependencies are set.
func (c *Container) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.Config == nil {
		return errors.New(errors.Configuration, "config not initialized")
	}
	if c.Logger == nil {
		return errors.New(errors.Configuration, "logger not initialized")
	}
	if c.API == nil {
		return errors.New(errors.Configuration, "capability API not initialized")
	}
	return nil
}
