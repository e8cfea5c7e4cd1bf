// FILE: locations/models.go

package locations

import (
	"fmt"
	"time"
)

// DefaultTitle is the title given to a freshly captured record.
const DefaultTitle = "New Location"

// Fix is one positional sample reported by a provider.
type Fix struct {
	Provider  string    `json:"provider,omitempty"`
	Longitude float64   `json:"longitude"`
	Latitude  float64   `json:"latitude"`
	Altitude  float64   `json:"altitude"`
	Time      time.Time `json:"time"`
}

// Record is a saved, annotated location.
// ID is zero until the record has been inserted into a Store.
type Record struct {
	ID        int64   `json:"id"`
	Title     string  `json:"title"`
	Note      string  `json:"note"`
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	Altitude  float64 `json:"altitude"`
}

// NewRecord builds an unsaved record from a fix, with the default title and an empty note.
func NewRecord(fix Fix) Record {
	return Record{
		Title:     DefaultTitle,
		Note:      "",
		Longitude: fix.Longitude,
		Latitude:  fix.Latitude,
		Altitude:  fix.Altitude,
	}
}

// Persisted reports whether the record has been assigned an ID by a store.
func (r Record) Persisted() bool {
	return r.ID > 0
}

func (r Record) String() string {
	return fmt.Sprintf("%s at Lat:%v, Lon:%v, Alt:%v", r.Title, r.Latitude, r.Longitude, r.Altitude)
}
