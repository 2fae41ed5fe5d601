package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/9seconds/ipinfo/caches"
	"github.com/9seconds/ipinfo/ipinfolib"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/afero"
)

func makeRootContext() (context.Context, context.CancelFunc) {
	rootCtx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)

	go func() {
		for range sigChan {
			cancel()
		}
	}()

	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	return rootCtx, cancel
}

// makeCache returns a cache and a function which releases its
// resources.
func makeCache(conf configCache) (ipinfolib.Cache, func(), error) {
	noop := func() {}

	if !conf.GetEnabled() {
		return caches.Null{}, noop, nil
	}

	switch conf.GetBackend() {
	case cacheBackendMemory:
		cache := caches.NewMemory(conf.GetItems())

		return cache, cache.Close, nil
	case cacheBackendFS:
		cache, err := caches.NewFS(afero.NewOsFs(), conf.GetDirectory())
		if err != nil {
			return nil, noop, fmt.Errorf("cannot create fs cache: %w", err)
		}

		return cache, noop, nil
	case cacheBackendPebble:
		if err := os.MkdirAll(conf.GetDirectory(), 0o755); err != nil {
			return nil, noop, fmt.Errorf("cannot create base directory for pebble cache: %w", err)
		}

		cache, err := caches.NewPebble(conf.GetDirectory(), nil)
		if err != nil {
			return nil, noop, fmt.Errorf("cannot create pebble cache: %w", err)
		}

		return cache, func() { cache.Close() }, nil // nolint: errcheck
	case cacheBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     conf.Redis.GetAddr(),
			Password: conf.Redis.Password,
			DB:       conf.Redis.DB,
		})

		return caches.NewRedis(client), func() { client.Close() }, nil // nolint: errcheck
	case cacheBackendNone:
		return caches.Null{}, noop, nil
	}

	return nil, noop, fmt.Errorf("unsupported cache backend: %s", conf.GetBackend())
}

func makeStdHTTPClient(conf configHTTP) *http.Client {
	return &http.Client{
		Timeout: conf.GetTimeout(),
	}
}

func makeHTTPClient(conf configHTTP) ipinfolib.HTTPClient {
	return ipinfolib.NewHTTPClient(makeStdHTTPClient(conf),
		"ipinfo/"+version,
		conf.GetRateLimitInterval(),
		conf.GetRateLimitBurst())
}

func makeClient(conf *config, cache ipinfolib.Cache, log ipinfolib.Logger) (*ipinfolib.Client, error) {
	return ipinfolib.NewClient(ipinfolib.Opts{
		Token:        conf.GetToken(),
		DisableCache: !conf.Cache.GetEnabled(),
		CacheTTL:     conf.Cache.GetTTL(),
		Cache:        cache,
		HTTPClient:   makeHTTPClient(conf.HTTP),
		Logger:       log,
		BaseURL:      conf.GetBaseURL(),
		Enrich:       conf.GetEnrich(),
	})
}
