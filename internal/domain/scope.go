package domain

import "strings"

// Scope restricts the pipeline to one city's set of borough/county names.
// Injected rather than hard-coded so the pipeline is testable against a
// different city's list.
type Scope struct {
	City     string
	boroughs map[string]struct{}
}

// NewScope builds a Scope from a city name and its borough allow-list.
// Borough names are normalized (trimmed, lower-cased) on construction.
func NewScope(city string, boroughs []string) Scope {
	s := Scope{City: city, boroughs: make(map[string]struct{}, len(boroughs))}
	for _, b := range boroughs {
		s.boroughs[NormalizeLocation(b)] = struct{}{}
	}
	return s
}

// NYCScope returns the default scope: the five NYC boroughs as they appear
// in both the DOT traffic counts and the EPA air-quality exports.
func NYCScope() Scope {
	return NewScope("New York City", []string{
		"bronx", "brooklyn", "manhattan", "queens", "staten island",
	})
}

// Contains reports whether the already-normalized location is in scope.
func (s Scope) Contains(location string) bool {
	_, ok := s.boroughs[location]
	return ok
}

// Boroughs returns the normalized allow-list, for logging.
func (s Scope) Boroughs() []string {
	out := make([]string, 0, len(s.boroughs))
	for b := range s.boroughs {
		out = append(out, b)
	}
	return out
}

// NormalizeLocation canonicalizes a borough/county field for key matching.
func NormalizeLocation(location string) string {
	return strings.ToLower(strings.TrimSpace(location))
}
