// Package deps agrupa las dependencias transversales que comparten los servicios de dominio.
package deps

import (
	"time"

	"kennel-records/internal/platform/ids"
	"kennel-records/internal/platform/keylock"
	"kennel-records/internal/platform/logger"
)

type Deps struct {
	IDs   ids.Generator
	Locks *keylock.Locks
	Log   logger.Logger
	Now   func() time.Time
}

// Defaults completa lo que falte. Los servicios siempre la llaman en NewService.
func (d Deps) Defaults() Deps {
	if d.IDs == nil {
		d.IDs = ids.UUID{}
	}
	if d.Locks == nil {
		d.Locks = keylock.New()
	}
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}
