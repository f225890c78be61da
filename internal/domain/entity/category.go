package entity

import "time"

// Category agrupa productos por etiqueta. Los productos referencian la
// categoría por nombre, no por ID (el catálogo sobrevive si se borra la categoría).
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
