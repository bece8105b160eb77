package bakery

import (
	"time"

	"github.com/google/uuid"

	noodle "github.com/glowcouch/storage-noodle"
)

type Flavour string

//noodle:sql dialect=sqlite rawid=int64
type Recipe struct {
	Name   string
	Grams  int32
	Secret []byte
}

// Cookie is generic over its raw id.
//
//noodle:sql dialect=sqlite rawid=int64
//noodle:rawid R
type Cookie[R comparable] struct {
	Flavour Flavour
	Recipe  noodle.AssocID[Recipe, R]
}

type (
	//noodle:sql dialect=postgres rawid=uuid derive=create,read,table
	//noodle:sql dialect=mysql rawid=uuid
	Ticket struct {
		Baked time.Time
		Batch uuid.UUID
		Price float64
		Vegan bool
	}

	Oven struct {
		Temp int
	}
)
