package lexer

import (
	"strconv"
	"strings"

	"github.com/pcpkit/pmderive/internal/units"
)

// unitWords maps every recognised unit keyword (and its singular/plural
// or long/short spelling) to the axis and scale it denotes (spec.md
// §4.A's "units sub-lexer").
var unitWords = map[string]struct {
	axis  axis
	space units.SpaceScale
	time  units.TimeScale
	count units.CountScale
}{
	"byte": {axis: axisSpace, space: units.Byte}, "bytes": {axis: axisSpace, space: units.Byte},
	"kbyte": {axis: axisSpace, space: units.KByte}, "kbytes": {axis: axisSpace, space: units.KByte},
	"kilobyte": {axis: axisSpace, space: units.KByte}, "kilobytes": {axis: axisSpace, space: units.KByte},
	"mbyte": {axis: axisSpace, space: units.MByte}, "mbytes": {axis: axisSpace, space: units.MByte},
	"megabyte": {axis: axisSpace, space: units.MByte}, "megabytes": {axis: axisSpace, space: units.MByte},
	"gbyte": {axis: axisSpace, space: units.GByte}, "gbytes": {axis: axisSpace, space: units.GByte},
	"gigabyte": {axis: axisSpace, space: units.GByte}, "gigabytes": {axis: axisSpace, space: units.GByte},
	"tbyte": {axis: axisSpace, space: units.TByte}, "tbytes": {axis: axisSpace, space: units.TByte},
	"terabyte": {axis: axisSpace, space: units.TByte}, "terabytes": {axis: axisSpace, space: units.TByte},
	"pbyte": {axis: axisSpace, space: units.PByte}, "pbytes": {axis: axisSpace, space: units.PByte},
	"petabyte": {axis: axisSpace, space: units.PByte}, "petabytes": {axis: axisSpace, space: units.PByte},
	"ebyte": {axis: axisSpace, space: units.EByte}, "ebytes": {axis: axisSpace, space: units.EByte},
	"exabyte": {axis: axisSpace, space: units.EByte}, "exabytes": {axis: axisSpace, space: units.EByte},

	"nsec": {axis: axisTime, time: units.NSec}, "nsecs": {axis: axisTime, time: units.NSec},
	"nanosecond": {axis: axisTime, time: units.NSec}, "nanoseconds": {axis: axisTime, time: units.NSec},
	"usec": {axis: axisTime, time: units.USec}, "usecs": {axis: axisTime, time: units.USec},
	"microsecond": {axis: axisTime, time: units.USec}, "microseconds": {axis: axisTime, time: units.USec},
	"msec": {axis: axisTime, time: units.MSec}, "msecs": {axis: axisTime, time: units.MSec},
	"millisecond": {axis: axisTime, time: units.MSec}, "milliseconds": {axis: axisTime, time: units.MSec},
	"sec": {axis: axisTime, time: units.Sec}, "secs": {axis: axisTime, time: units.Sec},
	"second": {axis: axisTime, time: units.Sec}, "seconds": {axis: axisTime, time: units.Sec},
	"min": {axis: axisTime, time: units.Min}, "mins": {axis: axisTime, time: units.Min},
	"minute": {axis: axisTime, time: units.Min}, "minutes": {axis: axisTime, time: units.Min},
	"hour": {axis: axisTime, time: units.Hour}, "hours": {axis: axisTime, time: units.Hour},

	"count": {axis: axisCount, count: units.CountOnes}, "counts": {axis: axisCount, count: units.CountOnes},
}

type axis int

const (
	axisSpace axis = iota
	axisTime
	axisCount
)

// lexerState is a saved Lexer position, used to backtrack when a units
// clause turns out not to be present (mirrors the teacher's
// save/restore LexerState pattern for lookahead).
type lexerState struct {
	position, readPosition int
	line, column           int
	ch                     rune
}

func (l *Lexer) save() lexerState {
	return lexerState{l.position, l.readPosition, l.line, l.column, l.ch}
}

func (l *Lexer) restore(s lexerState) {
	l.position, l.readPosition, l.line, l.column, l.ch = s.position, s.readPosition, s.line, s.column, s.ch
}

// LexUnitClause attempts to consume an optional "units" clause
// immediately following a numeric literal: an optional unit word with an
// optional '^n' exponent, followed by zero or more '/unitword(^n)?' terms
// (at least one term in all)
// (spec.md §4.A/§4.B's `num := (Integer | Double) units?`). It reports
// ok=false and leaves the lexer untouched if no unit clause is present.
func (l *Lexer) LexUnitClause() (u units.Units, ok bool) {
	start := l.save()
	l.skipWhitespace()

	matchedAny := false

	if l.ch != '/' {
		if !isLetter(l.ch) {
			l.restore(start)
			return units.Units{}, false
		}
		word, exp, wok := l.lexUnitTerm()
		if !wok {
			l.restore(start)
			return units.Units{}, false
		}
		u = applyUnitTerm(units.Units{}, word, exp)
		matchedAny = true
	}

	for {
		checkpoint := l.save()
		l.skipWhitespace()
		if l.ch != '/' {
			l.restore(checkpoint)
			break
		}
		l.readRune()
		l.skipWhitespace()
		word, exp, wok := l.lexUnitTerm()
		if !wok {
			l.restore(checkpoint)
			break
		}
		u = applyUnitTerm(u, word, -exp)
		matchedAny = true
	}

	if !matchedAny {
		l.restore(start)
		return units.Units{}, false
	}
	return u, true
}

// lexUnitTerm scans a single "unitword" or "unitword^n" term.
func (l *Lexer) lexUnitTerm() (word string, exp int8, ok bool) {
	var sb strings.Builder
	for isLetter(l.ch) {
		sb.WriteRune(l.ch)
		l.readRune()
	}
	text := strings.ToLower(sb.String())
	if _, known := unitWords[text]; !known {
		return "", 0, false
	}

	exp = 1
	if l.ch == '^' {
		l.readRune()
		neg := false
		if l.ch == '-' {
			neg = true
			l.readRune()
		}
		var digits strings.Builder
		for isDigit(l.ch) {
			digits.WriteRune(l.ch)
			l.readRune()
		}
		if digits.Len() == 0 {
			return "", 0, false
		}
		n, err := strconv.Atoi(digits.String())
		if err != nil {
			return "", 0, false
		}
		if neg {
			n = -n
		}
		exp = int8(n)
	}
	return text, exp, true
}

func applyUnitTerm(u units.Units, word string, exp int8) units.Units {
	w := unitWords[word]
	switch w.axis {
	case axisSpace:
		u.DimSpace += exp
		u.ScaleSpace = w.space
	case axisTime:
		u.DimTime += exp
		u.ScaleTime = w.time
	case axisCount:
		u.DimCount += exp
		u.ScaleCount = w.count
	}
	return u
}
