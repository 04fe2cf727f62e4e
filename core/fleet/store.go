package fleet

import (
	"sort"
	"sync"

	"github.com/kilianp07/adaptivelog/core/model"
)

// Filter narrows List results. Zero values match everything.
type Filter struct {
	Status      model.TruckStatus
	Destination string
}

func (f Filter) match(t model.Truck) bool {
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.Destination != "" && t.Destination != f.Destination {
		return false
	}
	return true
}

// Store is the truck roster.
type Store interface {
	Get(id string) (model.Truck, bool)
	List(Filter) []model.Truck
	Set(model.Truck)
}

// MemoryStore keeps trucks in memory. Returned trucks are copies.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]model.Truck
}

func NewMemoryStore(trucks ...model.Truck) *MemoryStore {
	s := &MemoryStore{data: make(map[string]model.Truck, len(trucks))}
	for _, t := range trucks {
		s.Set(t)
	}
	return s
}

func (s *MemoryStore) Set(t model.Truck) {
	s.mu.Lock()
	s.data[t.ID] = t.Clone()
	s.mu.Unlock()
}

func (s *MemoryStore) Get(id string) (model.Truck, bool) {
	s.mu.RLock()
	t, ok := s.data[id]
	s.mu.RUnlock()
	if !ok {
		return model.Truck{}, false
	}
	return t.Clone(), true
}

func (s *MemoryStore) List(f Filter) []model.Truck {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]model.Truck, 0, len(s.data))
	for _, t := range s.data {
		if !f.match(t) {
			continue
		}
		res = append(res, t.Clone())
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res
}

// Len returns the number of trucks on the roster.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
