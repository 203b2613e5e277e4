package repository

import (
	"sync"
)

type memSessionRepo struct {
	data sync.Map
}

// NewInMemorySessionRepo keeps the session for the lifetime of the process only
func NewInMemorySessionRepo() SessionRepository {
	return &memSessionRepo{}
}

func (r *memSessionRepo) Get(key string) (string, error) {
	val, ok := r.data.Load(key)
	if !ok {
		return "", ErrNotFound
	}
	return val.(string), nil
}

func (r *memSessionRepo) Set(key, value string) error {
	r.data.Store(key, value)
	return nil
}

func (r *memSessionRepo) Delete(key string) error {
	r.data.Delete(key)
	return nil
}
