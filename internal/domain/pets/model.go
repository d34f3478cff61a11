package pets

import "time"

// Species define las especies soportadas.
// @Enum dog, cat
type Species string

const (
	SpeciesDog   Species = "dog"
	SpeciesCat   Species = "cat"
	SpeciesOther Species = "other"
)

func (s Species) Valid() bool {
	switch s {
	case SpeciesDog, SpeciesCat, SpeciesOther:
		return true
	default:
		return false
	}
}

// Pet es la entrada del directorio de mascotas del usuario.
// Los recordatorios la referencian por ID.
type Pet struct {
	ID          string
	OwnerUserID string

	Name    string
	Species Species
	Breed   string

	BirthDate *time.Time

	// IsPrimary marca la mascota seleccionada por defecto en el carrusel.
	// A lo sumo una por dueño.
	IsPrimary bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
