package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hjson/hjson-go/v4"
	"github.com/qri-io/jsonschema"
	"github.com/spf13/afero"
)

const (
	DefaultCacheBackend = cacheBackendMemory
	DefaultCacheItems   = 4096
	DefaultRedisAddr    = "127.0.0.1:6379"
)

const (
	cacheBackendMemory = "memory"
	cacheBackendFS     = "fs"
	cacheBackendPebble = "pebble"
	cacheBackendRedis  = "redis"
	cacheBackendNone   = "none"
)

var configJSONSchema = func() *jsonschema.Schema {
	data := `{
        "type": "object",
        "additionalProperties": false,
        "properties": {
            "token": {
                "type": "string"
            },
            "base_url": {
                "type": "string",
                "pattern": "^https?://"
            },
            "enrich": {
                "type": "boolean"
            },
            "cache": {
                "type": "object",
                "additionalProperties": false,
                "properties": {
                    "enabled": {
                        "type": "boolean"
                    },
                    "ttl": {
                        "type": "string",
                        "minLength": 2
                    },
                    "backend": {
                        "type": "string",
                        "enum": ["memory", "fs", "pebble", "redis", "none"]
                    },
                    "directory": {
                        "type": "string",
                        "minLength": 1
                    },
                    "items": {
                        "type": "integer",
                        "minimum": 1
                    },
                    "redis": {
                        "type": "object",
                        "additionalProperties": false,
                        "properties": {
                            "addr": {
                                "type": "string",
                                "minLength": 1
                            },
                            "password": {
                                "type": "string"
                            },
                            "db": {
                                "type": "integer",
                                "minimum": 0
                            }
                        }
                    }
                }
            },
            "http": {
                "type": "object",
                "additionalProperties": false,
                "properties": {
                    "timeout": {
                        "type": "string",
                        "minLength": 2
                    },
                    "rate_limit_interval": {
                        "type": "string",
                        "minLength": 2
                    },
                    "rate_limit_burst": {
                        "type": "integer",
                        "minimum": 1
                    }
                }
            }
        }
    }`

	rv := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(data), rv); err != nil {
		panic(err)
	}

	return rv
}()

type duration struct {
	time.Duration
}

func (d *duration) UnmarshalJSON(b []byte) error {
	var v interface{}

	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("cannot unmarshal duration: %w", err)
	}

	vv, ok := v.(string)
	if !ok {
		return fmt.Errorf("incorrect duration: %v", v)
	}

	dur, err := time.ParseDuration(vv)
	if err != nil {
		return fmt.Errorf("cannot parse duration: %w", err)
	}

	if dur < 0 {
		return fmt.Errorf("duration should be positive: %s", vv)
	}

	d.Duration = dur

	return nil
}

type config struct {
	Token   string      `json:"token"`
	BaseURL string      `json:"base_url"`
	Enrich  bool        `json:"enrich"`
	Cache   configCache `json:"cache"`
	HTTP    configHTTP  `json:"http"`
}

func (c config) GetToken() string {
	return c.Token
}

func (c config) GetBaseURL() string {
	return c.BaseURL
}

func (c config) GetEnrich() bool {
	return c.Enrich
}

type configCache struct {
	Enabled   *bool       `json:"enabled"`
	TTL       duration    `json:"ttl"`
	Backend   string      `json:"backend"`
	Directory string      `json:"directory"`
	Items     uint        `json:"items"`
	Redis     configRedis `json:"redis"`
}

func (c configCache) GetEnabled() bool {
	if c.Enabled == nil {
		return true
	}

	return *c.Enabled && c.GetBackend() != cacheBackendNone
}

// GetTTL returns 0 if nothing is set. ipinfolib applies its own default
// in that case.
func (c configCache) GetTTL() time.Duration {
	return c.TTL.Duration
}

func (c configCache) GetBackend() string {
	if c.Backend == "" {
		return DefaultCacheBackend
	}

	return c.Backend
}

func (c configCache) GetDirectory() string {
	if c.Directory != "" {
		return c.Directory
	}

	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "ipinfo", c.GetBackend())
	}

	return filepath.Join(os.TempDir(), "ipinfo", c.GetBackend())
}

func (c configCache) GetItems() uint {
	if c.Items == 0 {
		return DefaultCacheItems
	}

	return c.Items
}

type configRedis struct {
	Addr     string `json:"addr"`
	Password string `json:"password"`
	DB       int    `json:"db"`
}

func (c configRedis) GetAddr() string {
	if c.Addr == "" {
		return DefaultRedisAddr
	}

	return c.Addr
}

type configHTTP struct {
	Timeout           duration `json:"timeout"`
	RateLimitInterval duration `json:"rate_limit_interval"`
	RateLimitBurst    uint     `json:"rate_limit_burst"`
}

// GetTimeout returns 0 if nothing is set: each request of ipinfolib has
// its own deadline then.
func (c configHTTP) GetTimeout() time.Duration {
	return c.Timeout.Duration
}

func (c configHTTP) GetRateLimitInterval() time.Duration {
	return c.RateLimitInterval.Duration
}

func (c configHTTP) GetRateLimitBurst() int {
	return int(c.RateLimitBurst)
}

// parseConfig reads hjson config. Empty path means 'use defaults'.
func parseConfig(ctx context.Context, fs afero.Fs, path string) (*config, error) {
	conf := &config{}

	if path == "" {
		return conf, nil
	}

	content, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("cannot read file: %w", err)
	}

	rawMap := map[string]interface{}{}

	if err := hjson.Unmarshal(content, &rawMap); err != nil {
		return nil, fmt.Errorf("cannot parse hjson: %w", err)
	}

	rawBytes, err := json.Marshal(rawMap)
	if err != nil {
		return nil, fmt.Errorf("cannot convert config to json: %w", err)
	}

	validationErrors, err := configJSONSchema.ValidateBytes(ctx, rawBytes)
	if err != nil {
		return nil, fmt.Errorf("cannot validate config: %w", err)
	}

	if len(validationErrors) > 0 {
		return nil, fmt.Errorf("invalid config: %s: %s",
			validationErrors[0].PropertyPath,
			validationErrors[0].Message)
	}

	if err := json.Unmarshal(rawBytes, conf); err != nil {
		return nil, fmt.Errorf("incorrect config: %w", err)
	}

	return conf, nil
}
