// SPDX-License-Identifier: MIT

// Package parser classifies a transcribed utterance as a navigate or search
// request and extracts its destination.
//
// Classification is keyword based: SearchMarkers are tried first, then
// NavigateMarkers. An utterance that names a location but matches neither
// defaults to Navigate. One that names no location at all is Unparseable;
// that is a normal result, not an error.
package parser

import (
	"strings"

	"github.com/katalvlaran/indoornav/standardize"
)

// Parser holds the marker tables used for classification.
// The zero value is not usable; call New.
type Parser struct {
	navigate []string
	search   []string
}

// Option configures a Parser.
type Option func(*Parser)

// WithNavigateMarkers replaces the navigate marker table.
func WithNavigateMarkers(markers ...string) Option {
	return func(p *Parser) { p.navigate = markers }
}

// WithSearchMarkers replaces the search marker table.
func WithSearchMarkers(markers ...string) Option {
	return func(p *Parser) { p.search = markers }
}

// New returns a Parser using NavigateMarkers and SearchMarkers unless
// overridden.
func New(opts ...Option) *Parser {
	p := &Parser{
		navigate: NavigateMarkers,
		search:   SearchMarkers,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var defaultParser = New()

// Parse classifies raw with the default marker tables.
func Parse(raw string) ParsedInstruction {
	return defaultParser.Parse(raw)
}

// Parse classifies raw and extracts its destination.
func (p *Parser) Parse(raw string) ParsedInstruction {
	// 1) Without a location there is nothing to act on.
	parts := standardize.Analyze(raw)
	if !parts.IsLocation() {
		return ParsedInstruction{CommandType: Unparseable}
	}

	// 2) Intent
	ct, marker := p.classify(raw)

	// 3) Location fields
	out := ParsedInstruction{
		CommandType: ct,
		Destination: standardize.Standardize(raw),
		RoomNumber:  parts.Room,
		Marker:      marker,
	}
	if !parts.FloorInferred {
		out.Floor = parts.Floor
	}
	return out
}

// classify returns the command type for text and the marker that decided it.
func (p *Parser) classify(text string) (CommandType, string) {
	if m := firstMatch(text, p.search); m != "" {
		return Search, m
	}
	if m := firstMatch(text, p.navigate); m != "" {
		return Navigate, m
	}
	return Navigate, ""
}

func firstMatch(text string, markers []string) string {
	for _, m := range markers {
		if m != "" && strings.Contains(text, m) {
			return m
		}
	}
	return ""
}
