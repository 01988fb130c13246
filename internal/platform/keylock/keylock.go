// Package keylock serializa mutaciones por clave (dogID).
package keylock

import "sync"

type Locks struct {
	mu    sync.Mutex
	byKey map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

func New() *Locks {
	return &Locks{byKey: make(map[string]*entry)}
}

// Lock toma el lock de key y devuelve la función de unlock.
// Las entradas sin referencias se liberan para que el mapa no crezca sin límite.
func (l *Locks) Lock(key string) func() {
	l.mu.Lock()
	e, ok := l.byKey[key]
	if !ok {
		e = &entry{}
		l.byKey[key] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()

		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.byKey, key)
		}
		l.mu.Unlock()
	}
}

func (l *Locks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.byKey)
}
