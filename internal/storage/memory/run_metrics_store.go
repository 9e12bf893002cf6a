package memory

import (
	"context"
	"sync"

	"futures-risk-lab/internal/domain"
	"futures-risk-lab/internal/storage"
)

// RunMetricsStore is an in-memory implementation of storage.RunMetricsStore.
type RunMetricsStore struct {
	mu   sync.RWMutex
	data map[string]*domain.RunMetrics // keyed by run_id
}

// NewRunMetricsStore creates a new in-memory run metrics store.
func NewRunMetricsStore() *RunMetricsStore {
	return &RunMetricsStore{
		data: make(map[string]*domain.RunMetrics),
	}
}

// Insert adds metrics for a run. Returns ErrDuplicateKey if run_id exists.
func (s *RunMetricsStore) Insert(_ context.Context, m *domain.RunMetrics) error {
	if m == nil || m.RunID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[m.RunID]; exists {
		return storage.ErrDuplicateKey
	}

	metricsCopy := *m
	s.data[m.RunID] = &metricsCopy
	return nil
}

// GetByRunID retrieves metrics by run ID. Returns ErrNotFound if not exists.
func (s *RunMetricsStore) GetByRunID(_ context.Context, runID string) (*domain.RunMetrics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, exists := s.data[runID]
	if !exists {
		return nil, storage.ErrNotFound
	}

	metricsCopy := *m
	return &metricsCopy, nil
}

var _ storage.RunMetricsStore = (*RunMetricsStore)(nil)
