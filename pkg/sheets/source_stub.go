package sheets

import (
	"context"
	"fmt"
	"sync"

	"github.com/arboleda/arboleda/pkg/records"
)

// StubSource serves fixed grids by range and counts reads.
type StubSource struct {
	mu     sync.Mutex
	Grids  map[string]records.Grid
	Errors map[string]error
	Reads  map[string]int
}

func NewStubSource() *StubSource {
	return &StubSource{
		Grids:  make(map[string]records.Grid),
		Errors: make(map[string]error),
		Reads:  make(map[string]int),
	}
}

func (s *StubSource) Values(ctx context.Context, readRange string) (records.Grid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Reads[readRange]++
	if err := s.Errors[readRange]; err != nil {
		return nil, err
	}
	grid, ok := s.Grids[readRange]
	if !ok {
		return nil, fmt.Errorf("unknown range %s", readRange)
	}
	return grid, nil
}

func (s *StubSource) ReadCount(readRange string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Reads[readRange]
}
