package main

import (
	"fmt"

	"github.com/foiadesk/foiadesk/internal/api"
	"github.com/foiadesk/foiadesk/internal/model"
	"github.com/foiadesk/foiadesk/internal/session"
)

// commandContext carries lazily loaded shared state between commands.
type commandContext struct {
	configFlag *string

	cfg  *model.AppConfig
	sess *session.Store
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

// ensureConfig loads the config file once, honoring --config.
func (c *commandContext) ensureConfig() (*model.AppConfig, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}

	path := model.DefaultConfigPath()
	if c.configFlag != nil && *c.configFlag != "" {
		path = *c.configFlag
	}

	cfg, err := model.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	c.cfg = cfg
	return cfg, nil
}

// session returns the keyring-backed session store.
func (c *commandContext) session() *session.Store {
	if c.sess == nil {
		c.sess = session.NewStore()
	}
	return c.sess
}

// client builds an API client against the configured backend.
func (c *commandContext) client() (*api.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Server.BaseURL == "" {
		return nil, fmt.Errorf("no server.base_url configured; edit %s", model.DefaultConfigPath())
	}
	return api.NewClient(cfg.Server.BaseURL, c.session()), nil
}
