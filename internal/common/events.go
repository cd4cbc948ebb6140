package common

import (
	"encoding/json"
	"fmt"
	"strings"
)

// EventCategory identifies a class of traffic violation to detect
type EventCategory string

const (
	EventSpeeding       EventCategory = "speeding"
	EventSignal         EventCategory = "signal"
	EventLane           EventCategory = "lane"
	EventIllegalParking EventCategory = "illegal-parking"
	EventIllegalTurn    EventCategory = "illegal-turn"
	EventPedestrian     EventCategory = "pedestrian"
)

// CategoryInfo describes a catalog entry
type CategoryInfo struct {
	ID    EventCategory `json:"id"`
	Name  string        `json:"name"`
	Emoji string        `json:"-"`
}

var catalog = []CategoryInfo{
	{ID: EventSpeeding, Name: "과속", Emoji: "speeding"},
	{ID: EventSignal, Name: "신호위반", Emoji: "signal"},
	{ID: EventLane, Name: "차선침범", Emoji: "lane"},
	{ID: EventIllegalParking, Name: "불법주정차", Emoji: "parking"},
	{ID: EventIllegalTurn, Name: "불법유턴", Emoji: "turn"},
	{ID: EventPedestrian, Name: "보행자 위협", Emoji: "pedestrian"},
}

// Catalog returns the static event catalog in display order
func Catalog() []CategoryInfo {
	out := make([]CategoryInfo, len(catalog))
	copy(out, catalog)
	return out
}

// LookupCategory finds a catalog entry by tag
func LookupCategory(id EventCategory) (CategoryInfo, bool) {
	for _, c := range catalog {
		if c.ID == id {
			return c, true
		}
	}
	return CategoryInfo{}, false
}

// Valid reports whether the tag belongs to the catalog
func (c EventCategory) Valid() bool {
	_, ok := LookupCategory(c)
	return ok
}

// Label returns the human label of the tag, or the tag itself if unknown
func (c EventCategory) Label() string {
	if info, ok := LookupCategory(c); ok {
		return info.Name
	}
	return string(c)
}

// ParseCategories parses a comma separated list of tags
func ParseCategories(list string) ([]EventCategory, error) {
	var out []EventCategory
	for _, part := range strings.Split(list, ",") {
		tag := EventCategory(strings.ToLower(strings.TrimSpace(part)))
		if tag == "" {
			continue
		}
		if !tag.Valid() {
			return nil, fmt.Errorf("unknown event category: %s", tag)
		}
		out = append(out, tag)
	}
	return out, nil
}

// SelectedEvents is a set of catalog tags
type SelectedEvents map[EventCategory]struct{}

// NewSelectedEvents builds a set from tags, ignoring unknown ones
func NewSelectedEvents(tags ...EventCategory) SelectedEvents {
	s := make(SelectedEvents, len(tags))
	for _, t := range tags {
		if t.Valid() {
			s[t] = struct{}{}
		}
	}
	return s
}

// Has reports membership
func (s SelectedEvents) Has(c EventCategory) bool {
	_, ok := s[c]
	return ok
}

// Len returns the number of selected tags
func (s SelectedEvents) Len() int {
	return len(s)
}

// Clone returns an independent copy
func (s SelectedEvents) Clone() SelectedEvents {
	out := make(SelectedEvents, len(s))
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}

// Toggle returns a copy with the membership of c flipped
func (s SelectedEvents) Toggle(c EventCategory) SelectedEvents {
	out := s.Clone()
	if !c.Valid() {
		return out
	}
	if out.Has(c) {
		delete(out, c)
	} else {
		out[c] = struct{}{}
	}
	return out
}

// Tags returns the members in catalog order
func (s SelectedEvents) Tags() []EventCategory {
	out := make([]EventCategory, 0, len(s))
	for _, c := range catalog {
		if s.Has(c.ID) {
			out = append(out, c.ID)
		}
	}
	return out
}

// MarshalJSON encodes the set as an array in catalog order
func (s SelectedEvents) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Tags())
}
