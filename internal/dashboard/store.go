package dashboard

import (
	gosync "sync"
	"time"
)

// update is one response destined for a single resource slot. stamp is the
// sequence number drawn when the request was issued.
type update struct {
	resource Resource
	stamp    uint64
	apply    func(*Snapshot)
	err      error
}

type commitResult struct {
	applied []Resource
	stale   []Resource
}

// store holds the current snapshot and the stamp of the last response applied
// to each resource. A response is applied only if its stamp is newer, so a
// slow response can never overwrite data from a request issued after it.
type store struct {
	mu      gosync.Mutex
	seq     uint64
	applied map[Resource]uint64
	current *Snapshot
}

func newStore(features Features) *store {
	return &store{
		applied: make(map[Resource]uint64),
		current: &Snapshot{Features: features},
	}
}

// issue draws the next stamp. Call it right before sending the request.
func (s *store) issue() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.seq
}

func (s *store) load() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// commit applies a batch of updates in a single swap. When settle is true the
// snapshot is marked loaded and stamped with at.
func (s *store) commit(updates []update, settle bool, at time.Time) commitResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.current.clone()
	var res commitResult
	for _, u := range updates {
		if u.stamp <= s.applied[u.resource] {
			res.stale = append(res.stale, u.resource)
			continue
		}
		if u.err != nil {
			if next.LastErrors == nil {
				next.LastErrors = make(map[Resource]string)
			}
			next.LastErrors[u.resource] = u.err.Error()
			continue
		}
		u.apply(next)
		s.applied[u.resource] = u.stamp
		delete(next.LastErrors, u.resource)
		res.applied = append(res.applied, u.resource)
	}
	if len(next.LastErrors) == 0 {
		next.LastErrors = nil
	}
	if settle {
		next.Loaded = true
		next.RefreshedAt = at
	}
	s.current = next
	return res
}
