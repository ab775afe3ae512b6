package repository

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/acikkaynak/interpreter-search-go/geo"
	"github.com/acikkaynak/interpreter-search-go/interpreters"
	"github.com/acikkaynak/interpreter-search-go/query"
)

// MemoryStore keeps interpreters in process. It backs the memory store
// backend and tests; filtering and ordering follow the Postgres store.
type MemoryStore struct {
	mu      sync.RWMutex
	records []interpreters.Interpreter
	nextID  int64
}

func NewMemoryStore(records ...interpreters.Interpreter) *MemoryStore {
	s := &MemoryStore{}
	for _, r := range records {
		s.put(r)
	}
	return s
}

func (s *MemoryStore) Query(_ context.Context, filter query.Filter, sort query.Sort, limit, offset int) ([]interpreters.Interpreter, error) {
	matched := s.matching(filter)
	slices.SortStableFunc(matched, sort.Compare)

	start := min(offset, len(matched))
	end := min(offset+limit, len(matched))
	return matched[start:end], nil
}

func (s *MemoryStore) Count(_ context.Context, filter query.Filter) (int, error) {
	return len(s.matching(filter)), nil
}

func (s *MemoryStore) GetInterpreter(_ context.Context, id int64) (*interpreters.Interpreter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.records {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, interpreters.ErrNotFound
}

func (s *MemoryStore) Languages(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var languages []string
	for _, r := range s.records {
		if !r.IsActive {
			continue
		}
		for _, l := range []string{r.SourceLanguage, r.TargetLanguage} {
			if l != "" {
				languages = append(languages, l)
			}
		}
	}
	slices.Sort(languages)
	return slices.Compact(languages), nil
}

func (s *MemoryStore) ListUngeocoded(_ context.Context, limit int) ([]interpreters.Interpreter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]interpreters.Interpreter, 0)
	for _, r := range s.records {
		if len(results) == limit {
			break
		}
		if _, ok := r.Location(); !ok {
			results = append(results, r)
		}
	}
	return results, nil
}

func (s *MemoryStore) UpdateCoordinates(_ context.Context, id int64, p geo.Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for idx := range s.records {
		if s.records[idx].ID == id {
			lat, lng := p.Lat, p.Lng
			s.records[idx].Lat, s.records[idx].Lng = &lat, &lng
			return nil
		}
	}
	return interpreters.ErrNotFound
}

func (s *MemoryStore) Create(_ context.Context, i interpreters.Interpreter) (int64, error) {
	i.ID = 0
	if i.CreatedAt.IsZero() {
		i.CreatedAt = time.Now()
	}
	return s.put(i), nil
}

func (s *MemoryStore) put(i interpreters.Interpreter) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i.ID == 0 {
		s.nextID++
		i.ID = s.nextID
	} else if i.ID > s.nextID {
		s.nextID = i.ID
	}
	s.records = append(s.records, i)
	return i.ID
}

func (s *MemoryStore) matching(filter query.Filter) []interpreters.Interpreter {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]interpreters.Interpreter, 0, len(s.records))
	for _, r := range s.records {
		if filter.Match(r) {
			matched = append(matched, r)
		}
	}
	return matched
}
