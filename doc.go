// ipinfo is a command line client of ipinfo.io.
//
// It is a small wrapper around ipinfolib which shows how to wire the
// library with caches, rate-limited HTTP client and a logger. It can
// lookup a set of IP addresses one by one or with batch requests,
// request separate fields and manage a cache.
//
// Configuration
//
// Everything except a token is optional. The token can be passed with
// --token flag or IPINFO_TOKEN environment variable. Other settings
// live in hjson config file:
//
//   {
//     token: xxx
//     enrich: true
//     cache: {
//       backend: pebble
//       directory: /var/cache/ipinfo
//       ttl: 24h
//     }
//     http: {
//       timeout: 30s
//       rate_limit_interval: 10ms
//       rate_limit_burst: 50
//     }
//   }
//
// Supported cache backends are memory, fs, pebble, redis and none.
// http.timeout caps every request; lookups have their own deadlines
// without it.
package main
