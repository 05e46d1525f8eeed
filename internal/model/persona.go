// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations, messages,
// and character personas.
package model

import "errors"

// =============================================================================
// PERSONA TYPE
// =============================================================================

// DefaultPersonaID is the id of the built-in persona. It always exists on
// the server and can never be deleted.
const DefaultPersonaID = "default"

// Persona describes a selectable character: who the assistant pretends to be.
type Persona struct {
	// ID is the character identifier used in API calls
	ID string `json:"id"`

	// Name is the human-readable display name
	Name string `json:"name"`

	// Description is a short blurb shown in the picker
	Description string `json:"description,omitempty"`

	// SystemPrompt steers the model while this persona is active
	SystemPrompt string `json:"system_prompt"`

	// Avatar is an optional image path served by the backend (unused in
	// the terminal UI, carried for round-tripping)
	Avatar string `json:"avatar,omitempty"`
}

// IsDefault reports whether this is the undeletable built-in persona.
func (p Persona) IsDefault() bool {
	return p.ID == DefaultPersonaID
}

// =============================================================================
// ROSTER TYPE
// =============================================================================

// ErrDefaultPersona is returned when trying to remove the built-in persona.
var ErrDefaultPersona = errors.New("the default persona cannot be deleted")

// ErrPersonaNotFound is returned when an id is absent from the roster.
var ErrPersonaNotFound = errors.New("persona not found")

// Roster holds the fetched personas and the current selection.
// Invariant: when the roster is non-empty, Current() always names a persona
// that is actually in the set.
type Roster struct {
	personas []Persona
	current  string
}

// NewRoster creates an empty roster with no selection.
func NewRoster() *Roster {
	return &Roster{}
}

// SetPersonas replaces the roster contents, e.g. after a fetch.
// If the current selection no longer exists (or nothing was selected), the
// selection moves to the first entry.
func (r *Roster) SetPersonas(personas []Persona) {
	r.personas = personas
	if _, ok := r.find(r.current); !ok {
		if len(personas) > 0 {
			r.current = personas[0].ID
		} else {
			r.current = ""
		}
	}
}

// Personas returns the roster contents in fetch order.
func (r *Roster) Personas() []Persona {
	return r.personas
}

// Len returns the number of personas.
func (r *Roster) Len() int {
	return len(r.personas)
}

// Current returns the selected persona. The bool is false when the roster
// is empty.
func (r *Roster) Current() (Persona, bool) {
	return r.find(r.current)
}

// CurrentID returns the selected persona id, or "" when the roster is empty.
func (r *Roster) CurrentID() string {
	if _, ok := r.find(r.current); !ok {
		return ""
	}
	return r.current
}

// Select makes the persona with the given id current.
func (r *Roster) Select(id string) error {
	if _, ok := r.find(id); !ok {
		return ErrPersonaNotFound
	}
	r.current = id
	return nil
}

// Remove deletes a persona from the roster. The built-in persona is
// protected. Removing the currently selected persona first moves the
// selection to the default, so the current selection never dangles.
func (r *Roster) Remove(id string) error {
	if id == DefaultPersonaID {
		return ErrDefaultPersona
	}
	idx := -1
	for i, p := range r.personas {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrPersonaNotFound
	}

	if r.current == id {
		r.current = DefaultPersonaID
	}
	r.personas = append(r.personas[:idx], r.personas[idx+1:]...)
	return nil
}

// Add appends a freshly created persona and returns it.
func (r *Roster) Add(p Persona) {
	r.personas = append(r.personas, p)
	if r.current == "" {
		r.current = p.ID
	}
}

func (r *Roster) find(id string) (Persona, bool) {
	for _, p := range r.personas {
		if p.ID == id {
			return p, true
		}
	}
	return Persona{}, false
}
