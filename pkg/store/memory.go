package store

import (
	"sort"
	"sync"
)

// Memory is an in-process Repository. Safe for concurrent use; every
// accessor works on copies so callers cannot mutate stored state.
type Memory struct {
	mu       sync.RWMutex
	datasets map[string]DatasetRecord
	models   map[string]ModelRecord
}

func NewMemory() *Memory {
	return &Memory{
		datasets: make(map[string]DatasetRecord),
		models:   make(map[string]ModelRecord),
	}
}

func (m *Memory) SaveDataset(rec DatasetRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.datasets[rec.ID] = rec
	return nil
}

func (m *Memory) Dataset(id string) (DatasetRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.datasets[id]
	if !ok {
		return DatasetRecord{}, ErrNotFound
	}
	return rec, nil
}

func (m *Memory) Datasets() ([]DatasetRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]DatasetRecord, 0, len(m.datasets))
	for _, rec := range m.datasets {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UploadedAt.Before(out[j].UploadedAt) })
	return out, nil
}

func (m *Memory) DeleteDataset(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.datasets[id]; !ok {
		return ErrNotFound
	}
	delete(m.datasets, id)
	return nil
}

func (m *Memory) SaveModel(rec ModelRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.models[rec.ID] = rec
	return nil
}

func (m *Memory) Model(id string) (ModelRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.models[id]
	if !ok {
		return ModelRecord{}, ErrNotFound
	}
	return rec, nil
}

func (m *Memory) Models(datasetID string) ([]ModelRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []ModelRecord
	for _, rec := range m.models {
		if datasetID == "" || rec.DatasetID == datasetID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
