// This package provides a client for ipinfo.io API: lookups of single
// IP addresses, batches of them and individual fields.
//
// Client is a main entity of ipinfolib. It validates IP addresses,
// consults a cache, calls the API on a miss and stores raw payloads
// back. Cache and HTTP transport are pluggable: anything which conforms
// Cache and HTTPClient interfaces can be used. A set of ready-to-use
// caches lives in caches package.
//
// Client returns LookupResult: an immutable view on a payload of the
// API. Payload is plan-tiered, so every accessor returns
// optional.Value: ASN details are missing for a free plan, privacy
// details are missing for a basic one and so on.
package ipinfolib
