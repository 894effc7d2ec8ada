// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package rounds

import (
	"sort"
	"strings"

	"github.com/danielhkuo/allotdesk/models"
)

// Field names a semantic column in a registration sheet.
type Field string

const (
	Timestamp     Field = "timestamp"
	FullName      Field = "full_name"
	WhatsApp      Field = "whatsapp"
	Email         Field = "email"
	College       Field = "college"
	Course        Field = "course"
	Category      Field = "category"
	CACode        Field = "ca_code"
	MUNExperience Field = "mun_experience"
	Accommodation Field = "accommodation"
)

// PreferenceFields holds the committee column and its three portfolio columns.
type PreferenceFields struct {
	Committee  Field
	Portfolios [3]Field
}

// Preference slots in ranked order.
var Preferences = [3]PreferenceFields{
	{"c1", [3]Field{"c1_p1", "c1_p2", "c1_p3"}},
	{"c2", [3]Field{"c2_p1", "c2_p2", "c2_p3"}},
	{"c3", [3]Field{"c3_p1", "c3_p2", "c3_p3"}},
}

// DefaultCategory is used when a layout has no category column.
const DefaultCategory = "Delegate"

// Layout maps semantic fields to zero-based column indexes for one round.
// Fields absent from Columns read as empty.
type Layout struct {
	Round           string
	Prefix          string
	Columns         map[Field]int
	DefaultCategory string
}

// Index returns the column for f, or -1 if the layout does not carry it.
func (l Layout) Index(f Field) int {
	if idx, ok := l.Columns[f]; ok {
		return idx
	}
	return -1
}

// Has reports whether the layout maps f.
func (l Layout) Has(f Field) bool {
	_, ok := l.Columns[f]
	return ok
}

// Registry is the round → layout table loaded at startup.
type Registry struct {
	layouts map[string]Layout
}

// NewRegistry builds a registry from layouts, keyed case-insensitively by round.
func NewRegistry(layouts ...Layout) *Registry {
	r := &Registry{layouts: make(map[string]Layout, len(layouts))}
	for _, l := range layouts {
		r.layouts[strings.ToLower(l.Round)] = l
	}
	return r
}

// Lookup returns the layout for round, or a configuration error if unknown.
func (r *Registry) Lookup(round string) (Layout, error) {
	key := strings.ToLower(strings.TrimSpace(round))
	if key == "" {
		return Layout{}, models.ConfigError("missing round")
	}
	l, ok := r.layouts[key]
	if !ok {
		return Layout{}, models.ConfigError("unknown round %q", round)
	}
	if !l.Has(Email) {
		return Layout{}, models.ConfigError("round %s has no email column", l.Round)
	}
	return l, nil
}

// Rounds lists the configured round names in sorted order.
func (r *Registry) Rounds() []string {
	names := make([]string, 0, len(r.layouts))
	for _, l := range r.layouts {
		names = append(names, l.Round)
	}
	sort.Strings(names)
	return names
}

// Resolve looks up the layout and sheet location for round.
func (r *Registry) Resolve(round string, getenv func(string) string) (Layout, Location, error) {
	l, err := r.Lookup(round)
	if err != nil {
		return Layout{}, Location{}, err
	}
	loc, err := LocationFor(l.Round, getenv)
	if err != nil {
		return Layout{}, Location{}, err
	}
	return l, loc, nil
}
