// Package ids genera identificadores con prefijo de entidad ("hc-", "be-", "lit-", "pup-").
//
// El generador lo posee el store; nunca se derivan ids del reloj.
package ids

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

const (
	PrefixDog          = "dog"
	PrefixHeatCycle    = "hc"
	PrefixEvent        = "be"
	PrefixLitter       = "lit"
	PrefixPuppy        = "pup"
	StrategyUUID       = "uuid"
	StrategySequence   = "sequence"
	defaultPrefixTrail = "-"
)

type Generator interface {
	New(prefix string) string
}

// UUID genera "{prefix}-{uuid v4}".
type UUID struct{}

func (UUID) New(prefix string) string {
	return join(prefix, uuid.NewString())
}

// Sequence genera "{prefix}-{n}" con un contador monotónico compartido.
// Útil en tests y en modo demo (ids cortos y deterministas).
type Sequence struct {
	n atomic.Uint64
}

func NewSequence() *Sequence {
	return &Sequence{}
}

func (s *Sequence) New(prefix string) string {
	return join(prefix, fmt.Sprintf("%d", s.n.Add(1)))
}

// FromStrategy devuelve el generador para ID_STRATEGY (default uuid).
func FromStrategy(name string) Generator {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case StrategySequence:
		return NewSequence()
	default:
		return UUID{}
	}
}

// DocumentID arma el id de documento "{dogId}-doc-{n}" (secuencia por perro).
func DocumentID(dogID string, n int) string {
	return fmt.Sprintf("%s-doc-%d", dogID, n)
}

func join(prefix, v string) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return v
	}
	return prefix + defaultPrefixTrail + v
}
