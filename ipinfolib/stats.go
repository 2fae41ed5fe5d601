package ipinfolib

import (
	"sync"
	"time"
)

// Stats tracks how a client was used: how many times cache has helped
// and how many requests were sent to ipinfo.io.
type Stats struct {
	mutex          sync.Mutex
	lastRequest    time.Time
	cacheHits      uint64
	cacheMisses    uint64
	requestSuccess uint64
	requestFailure uint64
}

// StatsSnapshot is a point-in-time copy of Stats.
type StatsSnapshot struct {
	LastRequest    time.Time
	CacheHits      uint64
	CacheMisses    uint64
	RequestSuccess uint64
	RequestFailure uint64
}

func (s *Stats) CacheHit() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.cacheHits++
}

func (s *Stats) CacheMiss() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.cacheMisses++
}

func (s *Stats) Requested(err error) {
	now := time.Now()

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.lastRequest = now

	if err == nil {
		s.requestSuccess++
	} else {
		s.requestFailure++
	}
}

func (s *Stats) Snapshot() StatsSnapshot {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return StatsSnapshot{
		LastRequest:    s.lastRequest,
		CacheHits:      s.cacheHits,
		CacheMisses:    s.cacheMisses,
		RequestSuccess: s.requestSuccess,
		RequestFailure: s.requestFailure,
	}
}

func (s *Stats) MarshalJSON() ([]byte, error) {
	snapshot := s.Snapshot()

	var lastRequestTime int64

	if !snapshot.LastRequest.IsZero() {
		lastRequestTime = snapshot.LastRequest.Unix()
	}

	rawStruct := struct {
		LastRequest    int64  `json:"last_request"`
		CacheHits      uint64 `json:"cache_hits"`
		CacheMisses    uint64 `json:"cache_misses"`
		RequestSuccess uint64 `json:"request_success"`
		RequestFailure uint64 `json:"request_failure"`
	}{
		LastRequest:    lastRequestTime,
		CacheHits:      snapshot.CacheHits,
		CacheMisses:    snapshot.CacheMisses,
		RequestSuccess: snapshot.RequestSuccess,
		RequestFailure: snapshot.RequestFailure,
	}

	return json.Marshal(&rawStruct)
}
