package pets

import "time"

// PetType define los tipos de mascota soportados.
// @Enum dog, cat
type PetType string

const (
	PetTypeDog PetType = "dog"
	PetTypeCat PetType = "cat"
)

// Gender define el sexo de la mascota.
// @Enum Male, Female
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// AgeLabel es la etapa de vida declarada por el dueño.
type AgeLabel string

const (
	AgePuppy  AgeLabel = "Puppy"
	AgeKitten AgeLabel = "Kitten"
	AgeYoung  AgeLabel = "Young"
	AgeAdult  AgeLabel = "Adult"
	AgeSenior AgeLabel = "Senior"
)

func (a AgeLabel) Valid() bool {
	switch a {
	case AgePuppy, AgeKitten, AgeYoung, AgeAdult, AgeSenior:
		return true
	default:
		return false
	}
}

const (
	MaxAgeMonths       = 300
	MinWeightKg        = 0.1
	MaxWeightKg        = 200
	MaxNutritionLength = 1000
)

// Pet representa el perfil de una mascota que puede aparecer en solicitudes de cuidado.
type Pet struct {
	ID          string
	OwnerUserID string

	PetType PetType
	Breed   string
	Gender  Gender

	AgeLabel  AgeLabel
	AgeMonths int
	WeightKg  float64

	Nutrition string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Summary es la vista reducida que se embebe en las entradas del calendario.
type Summary struct {
	ID      string
	PetType PetType
	Breed   string
}
