// Package ratelimit implementa una cuota por clave con ventana fija,
// pensada para limitar por IP el endpoint de suscripción a la newsletter.
// El estado vive en memoria del proceso; con varias réplicas cada una aplica
// su propia cuota.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter cuenta peticiones por clave dentro de una ventana fija.
type Limiter struct {
	mu      sync.Mutex
	max     int
	window  time.Duration
	entries map[string]*entry
	now     func() time.Time // reemplazable en tests
}

type entry struct {
	count   int
	resetAt time.Time
}

// New construye un limitador: máximo max peticiones por clave cada window.
func New(max int, window time.Duration) *Limiter {
	return &Limiter{
		max:     max,
		window:  window,
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// Allow registra una petición de la clave y devuelve false si excede la cuota
// de la ventana vigente.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.entries[key]
	if !ok || now.After(e.resetAt) {
		l.entries[key] = &entry{count: 1, resetAt: now.Add(l.window)}
		l.sweep(now)
		return true
	}
	if e.count >= l.max {
		return false
	}
	e.count++
	return true
}

// sweep elimina entradas con ventana vencida. Se llama ya con el lock tomado
// y solo al crear entradas nuevas para que el costo quede acotado.
func (l *Limiter) sweep(now time.Time) {
	if len(l.entries) < 1024 {
		return
	}
	for k, e := range l.entries {
		if now.After(e.resetAt) {
			delete(l.entries, k)
		}
	}
}
