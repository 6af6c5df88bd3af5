// Package roster resolves which students fall inside a GFM batch or
// sub-batch and summarizes their attendance. Roll numbers and RBT range
// endpoints are strings like "RBT24CS028" whose trailing digit run
// carries the sequence; comparison happens on that run reduced modulo
// 1000 so a leading year/branch prefix never leaks into the range.
package roster

import (
	"regexp"
	"strconv"
	"strings"
)

var tailDigits = regexp.MustCompile(`\d+$`)

// TailSeq extracts the trailing contiguous digit run of s and returns
// it modulo 1000. ok is false when s has no trailing digits; callers
// must exclude such entries rather than guess.
func TailSeq(s string) (int, bool) {
	m := tailDigits.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		// digit runs longer than an int; keep only what mod 1000 needs
		if len(m) > 9 {
			n, err = strconv.Atoi(m[len(m)-9:])
		}
		if err != nil {
			return 0, false
		}
	}
	return n % 1000, true
}

// Range is a pair of RBT endpoints, inclusive on both sides.
type Range struct {
	From string
	To   string
}

// Contains reports whether the student identified by rollNo (falling
// back to prn when rollNo is empty) lies inside the range. Any
// non-numeric extraction on either side excludes the student.
func (r Range) Contains(rollNo, prn string) bool {
	id := strings.TrimSpace(rollNo)
	if id == "" {
		id = strings.TrimSpace(prn)
	}
	seq, ok := TailSeq(id)
	if !ok {
		return false
	}
	return r.ContainsSeq(seq)
}

// ContainsSeq tests a pre-extracted sequence against the range.
func (r Range) ContainsSeq(seq int) bool {
	from, okF := TailSeq(r.From)
	to, okT := TailSeq(r.To)
	if !okF || !okT {
		return false
	}
	return seq >= from && seq <= to
}

// Year labels appear in several spellings across the data ("SE",
// "Second Year", "2nd"); all comparisons go through the canonical form.
var yearAliases = map[string]string{
	"fe": "First Year", "first year": "First Year", "1st": "First Year", "1st year": "First Year",
	"se": "Second Year", "second year": "Second Year", "2nd": "Second Year", "2nd year": "Second Year",
	"te": "Third Year", "third year": "Third Year", "3rd": "Third Year", "3rd year": "Third Year",
	"be": "Final Year", "final year": "Final Year", "fourth year": "Final Year", "4th": "Final Year", "4th year": "Final Year",
}

// CanonicalYear maps any known year-label spelling to its full name.
// Unknown labels pass through trimmed, so exact matches still work.
func CanonicalYear(label string) string {
	key := strings.ToLower(strings.TrimSpace(label))
	if full, ok := yearAliases[key]; ok {
		return full
	}
	return strings.TrimSpace(label)
}

func SameYear(a, b string) bool {
	return CanonicalYear(a) == CanonicalYear(b)
}

// MainDivision reduces a division label to its leading letter: "A2" and
// "a" both belong to main division "A".
func MainDivision(div string) string {
	div = strings.TrimSpace(div)
	if div == "" {
		return ""
	}
	return strings.ToUpper(div[:1])
}

func SameDivision(a, b string) bool {
	return MainDivision(a) != "" && MainDivision(a) == MainDivision(b)
}

// Student is the slice of a roster row the resolver needs.
type Student struct {
	Prn         string `json:"prn"`
	RollNo      string `json:"roll_no"`
	FullName    string `json:"full_name"`
	Branch      string `json:"branch"`
	YearOfStudy string `json:"year_of_study"`
	Division    string `json:"division"`
}

// Config identifies a batch: where it lives and which rolls it spans.
type Config struct {
	Department string
	Class      string
	Division   string
	RbtFrom    string
	RbtTo      string
}

// ResolveBatch returns the students that belong to the configured
// batch: exact department, canonical-year, main-division match, then
// modulo-1000 range containment on roll number (PRN fallback). An empty
// result is a valid outcome, not an error.
func ResolveBatch(students []Student, cfg Config) []Student {
	rng := Range{From: cfg.RbtFrom, To: cfg.RbtTo}
	out := make([]Student, 0, len(students))
	for _, s := range students {
		if !strings.EqualFold(strings.TrimSpace(s.Branch), strings.TrimSpace(cfg.Department)) {
			continue
		}
		if !SameYear(s.YearOfStudy, cfg.Class) {
			continue
		}
		if !SameDivision(s.Division, cfg.Division) {
			continue
		}
		if !rng.Contains(s.RollNo, s.Prn) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// ParseAbsentInput splits a free-form absent roll-number entry
// ("3, 10 26,40") into its individual tokens.
func ParseAbsentInput(input string) []string {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// MatchesRoll reports whether any entered token equals the student's
// roll number, case-insensitively. Matching is exact per token; "2"
// must not mark roll "28" absent.
func MatchesRoll(tokens []string, rollNo string) bool {
	roll := strings.ToLower(strings.TrimSpace(rollNo))
	if roll == "" {
		return false
	}
	for _, t := range tokens {
		if strings.ToLower(t) == roll {
			return true
		}
	}
	return false
}
