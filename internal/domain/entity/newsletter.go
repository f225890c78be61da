package entity

import "time"

// Newsletter representa un suscriptor del boletín. Se crea activo de inmediato;
// el admin puede desactivarlo sin borrar el registro.
type Newsletter struct {
	ID           string
	Email        string // comparación exacta tal como se almacenó
	IsActive     bool
	SubscribedAt time.Time
}
