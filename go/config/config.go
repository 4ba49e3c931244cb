package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/viper"
)

// ElasticsearchConfig describes how to reach the cluster and how long
// scroll contexts should be kept alive between page fetches.
type ElasticsearchConfig struct {
	URL             string        `mapstructure:"url"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	ScrollKeepalive time.Duration `mapstructure:"scrollKeepalive"`
}

const defaultScrollKeepalive = 5 * time.Minute

// IsValid reports every configuration problem at once rather than the first
// one found.
func (c *ElasticsearchConfig) IsValid() error {
	var result error

	if c.URL == "" {
		result = multierror.Append(result, fmt.Errorf("url must be set"))
	} else if _, err := url.ParseRequestURI(c.URL); err != nil {
		result = multierror.Append(result, fmt.Errorf("invalid url: %s", err))
	}

	if c.ScrollKeepalive < 0 {
		result = multierror.Append(result, fmt.Errorf("scrollKeepalive must not be negative"))
	}

	return result
}

// Load reads configuration from the given file, allowing ES_* environment
// variables to override individual values.
func Load(path string) (*ElasticsearchConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("es")
	v.AutomaticEnv()

	v.SetDefault("scrollKeepalive", defaultScrollKeepalive)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	c := &ElasticsearchConfig{}
	if err := v.Unmarshal(c); err != nil {
		return nil, err
	}

	if err := c.IsValid(); err != nil {
		return nil, err
	}

	return c, nil
}
