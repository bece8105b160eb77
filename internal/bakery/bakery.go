// Package bakery declares the entities of a small bakery and persists
// them with generated SQL bindings. It is the worked example of the
// //noodle: directives; the _noodle.go files are generated by noodlegen.
package bakery

import (
	"time"

	noodle "github.com/glowcouch/storage-noodle"
)

//go:generate go run github.com/glowcouch/storage-noodle/cmd/noodlegen

// Flavour names the taste of a cookie.
type Flavour string

// Flavours.
const (
	Chocolate  Flavour = "chocolate"
	Strawberry Flavour = "strawberry"
	Vanilla    Flavour = "vanilla"
)

// Recipe is how a cookie is baked.
//
//noodle:sql dialect=sqlite rawid=int64
type Recipe struct {
	Name  string
	Grams int32
}

// Cookie refers to the Recipe it is baked after. R is the raw id type of
// the storage both are kept in.
//
//noodle:sql dialect=sqlite rawid=int64
//noodle:rawid R
type Cookie[R comparable] struct {
	Flavour Flavour
	Recipe  noodle.AssocID[Recipe, R]
}

// Batch is one production run. Its ids are drawn by the client.
//
//noodle:sql dialect=sqlite rawid=uuid
type Batch struct {
	Cookies int32
	Baked   time.Time
	Vegan   bool
}

// Ticket is a sale, recorded in the shop database.
//
//noodle:sql dialect=postgres rawid=int64
//noodle:sql dialect=mysql rawid=uint64
type Ticket struct {
	Price float64
	Paid  bool
	Note  []byte
}
