// SPDX-License-Identifier: MIT

// Package standardize turns free-form location fragments into canonical
// location strings of the form <floor><room-or-facility>, e.g. "3楼302教室".
//
// Rules, in order:
//
//  1. Request verbs and question particles are dropped (Fillers, LeadingVerbs).
//  2. Chinese and full-width numerals become arabic digits. Runs with 十 or 百
//     are read positionally ("十二" → "12"); other runs digit by digit
//     ("三零二" → "302").
//  3. Floor units after a number ("层", "F") become "楼".
//  4. Facility synonyms are replaced (Synonyms).
//  5. Without a floor, a room number's leading digit gives the floor.
//  6. A known facility word (Facilities) names the place. Without one, the
//     leftover text minus edge Particles does.
//  7. A bare room number gets the "教室" suffix.
//
// Standardize is idempotent: Standardize(Standardize(x)) == Standardize(x).
package standardize

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	unitRe  = regexp.MustCompile(`(\d+)(?:层|[Ff])`)
	floorRe = regexp.MustCompile(`(\d+)楼`)
	roomRe  = regexp.MustCompile(`(\d+)室?`)
)

// maxPasses bounds the fixed-point loop in Standardize.
const maxPasses = 8

// Parts is a location fragment split into its components.
type Parts struct {
	// Floor is the canonical floor, e.g. "3楼", or "" if none.
	Floor string
	// FloorInferred is true when Floor came from the room number rather
	// than the text.
	FloorInferred bool
	// Room is the numeric room string, e.g. "302", or "".
	Room string
	// Facility is the place word, e.g. "洗手间". A bare room number gets
	// ClassroomSuffix here.
	Facility string
}

// String composes the canonical location string.
func (p Parts) String() string {
	return p.Floor + p.Room + p.Facility
}

// IsLocation reports whether the parts name a place: a floor, a room number
// or a known facility.
func (p Parts) IsLocation() bool {
	return p.Floor != "" || p.Room != "" || IsFacility(p.Facility)
}

// Standardize returns the canonical form of raw. It never fails; text that
// holds no recognisable location comes back with fillers removed.
func Standardize(raw string) string {
	out := Analyze(raw).String()
	for i := 0; i < maxPasses; i++ {
		next := Analyze(out).String()
		if next == out {
			break
		}
		out = next
	}
	return out
}

// Analyze applies one rewrite pass to raw and splits the result.
func Analyze(raw string) Parts {
	return split(rewrite(raw))
}

// IsFacility reports whether s contains a canonical facility word.
func IsFacility(s string) bool {
	for _, f := range Facilities {
		if strings.Contains(s, f) {
			return true
		}
	}
	return false
}

func rewrite(s string) string {
	s = stripFillers(s)
	s = convertNumerals(s)
	s = unitRe.ReplaceAllString(s, "${1}"+FloorUnit)
	for _, syn := range Synonyms {
		s = strings.ReplaceAll(s, syn.From, syn.To)
	}
	return s
}

func split(s string) Parts {
	var p Parts
	rest := s

	// 1) Explicit floor: first "<digits>楼".
	if loc := floorRe.FindStringSubmatchIndex(rest); loc != nil {
		p.Floor = rest[loc[2]:loc[3]] + FloorUnit
		rest = rest[:loc[0]] + rest[loc[1]:]
	}

	// 2) Room: first remaining digit run, with an optional room marker.
	if loc := roomRe.FindStringSubmatchIndex(rest); loc != nil {
		p.Room = rest[loc[2]:loc[3]]
		rest = rest[:loc[0]] + rest[loc[1]:]
	}

	// 3) A facility word names the place; otherwise the trimmed leftover.
	if f := findFacility(rest); f != "" {
		p.Facility = f
	} else {
		p.Facility = strings.Trim(rest, Particles)
	}

	// 4) Inference and default suffix.
	if p.Room != "" {
		if p.Floor == "" {
			p.Floor = p.Room[:1] + FloorUnit
			p.FloorInferred = true
		}
		if p.Facility == "" {
			p.Facility = ClassroomSuffix
		}
	}
	return p
}

// findFacility returns the earliest facility word in s, the longest one on
// a tie, or "".
func findFacility(s string) string {
	best, at := "", len(s)
	for _, f := range Facilities {
		i := strings.Index(s, f)
		if i < 0 {
			continue
		}
		if i < at || (i == at && len(f) > len(best)) {
			best, at = f, i
		}
	}
	return best
}

func stripFillers(s string) string {
	s = strings.Join(strings.FieldsFunc(s, unicode.IsSpace), "")
	for {
		prev := s
		for _, f := range Fillers {
			s = strings.ReplaceAll(s, f, "")
		}
		for _, v := range LeadingVerbs {
			s = strings.TrimPrefix(s, v)
		}
		if s == prev {
			return s
		}
	}
}

// convertNumerals rewrites every run of numeral characters to arabic digits.
func convertNumerals(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	var run []rune
	flush := func() {
		if len(run) > 0 {
			b.WriteString(numeralRun(run))
			run = run[:0]
		}
	}
	for _, r := range s {
		if isNumeral(r) {
			run = append(run, r)
			continue
		}
		flush()
		b.WriteRune(r)
	}
	flush()
	return b.String()
}

func isNumeral(r rune) bool {
	if r >= '0' && r <= '9' {
		return true
	}
	if _, ok := numeralDigits[r]; ok {
		return true
	}
	_, ok := numeralUnits[r]
	return ok
}

func digitValue(r rune) int {
	if r >= '0' && r <= '9' {
		return int(r - '0')
	}
	return numeralDigits[r]
}

func numeralRun(run []rune) string {
	positional := false
	for _, r := range run {
		if _, ok := numeralUnits[r]; ok {
			positional = true
			break
		}
	}

	var b strings.Builder
	if !positional {
		for _, r := range run {
			b.WriteByte(byte('0' + digitValue(r)))
		}
		return b.String()
	}

	total, cur := 0, 0
	for _, r := range run {
		if m, ok := numeralUnits[r]; ok {
			if cur == 0 {
				cur = 1
			}
			total += cur * m
			cur = 0
			continue
		}
		cur = digitValue(r)
	}
	return strconv.Itoa(total + cur)
}
