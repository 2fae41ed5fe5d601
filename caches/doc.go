// This package has a set of cache implementations which can be used by
// ipinfolib.Client.
//
// Memory is a good default for long-living processes. FS and Pebble
// survive restarts and can be shared by a set of CLI invocations.
// Redis can be shared by a fleet of processes: keys are derived from
// tokens so different tenants never collide.
//
// All caches store opaque byte slices and copy them on the way in and
// out, so a caller can't corrupt a stored value.
package caches
