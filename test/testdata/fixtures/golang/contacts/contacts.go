package contacts

import (
	"time"

	"github.com/cmmoran/valuegen/pkg/value"
)

// Contact is one address book entry.
//
//valuegen:value
type Contact interface {
	Email() string
	// Nickname is optional free text.
	//valuegen:nullable
	Nickname() *string
	Phone() value.Optional
	Age() int32
	Tags() []string
	Scores() map[string]int
	Added() time.Time
	New(email string, nickname *string, phone value.Optional, age int32, tags []string, scores map[string]int, added time.Time) Contact
}

// Notifier is not a value type.
type Notifier interface {
	Notify(c Contact) error
}

//valuegen:value
type Empty interface {
	Describe(verbose bool) string
}

type (
	//valuegen:value
	Point interface {
		X() float64
		Y() float64
	}

	Shape interface {
		Area() float64
	}
)
