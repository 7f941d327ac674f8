package dogs

// Dog es la única entidad del servicio.
// ID lo asigna el store al crear y nunca cambia.
type Dog struct {
	ID          int64   `db:"id"`
	Name        string  `db:"name"`
	Breed       string  `db:"breed"`
	Age         float64 `db:"age"`
	Description string  `db:"description"`
}

// CreateInput trae los cuatro campos obligatorios ya validados.
type CreateInput struct {
	Name        string
	Breed       string
	Age         float64
	Description string
}

// Patch para PATCH real: nil = no tocar.
type Patch struct {
	Name        *string
	Breed       *string
	Age         *float64
	Description *string
}

func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Breed == nil && p.Age == nil && p.Description == nil
}

// Apply devuelve una copia de d con los campos presentes en p reemplazados.
func (p Patch) Apply(d Dog) Dog {
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Breed != nil {
		d.Breed = *p.Breed
	}
	if p.Age != nil {
		d.Age = *p.Age
	}
	if p.Description != nil {
		d.Description = *p.Description
	}
	return d
}
