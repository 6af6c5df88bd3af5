package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTailSeq(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"CS2428", 428, true},
		{"RBT24CS101", 101, true},
		{"RBT24CS001", 1, true},
		{"28", 28, true},
		{"A2-042", 42, true},
		{"RBT24CS1205", 205, true}, // prefix discarded by mod 1000
		{"  RBT24CS028  ", 28, true},
		{"ABC", 0, false},
		{"", 0, false},
		{"12X", 0, false}, // digits must be trailing
	}
	for _, c := range cases {
		got, ok := TailSeq(c.in)
		assert.Equal(t, c.ok, ok, "ok for %q", c.in)
		if c.ok {
			assert.Equal(t, c.want, got, "seq for %q", c.in)
		}
	}
}

func TestRangeContains(t *testing.T) {
	rng := Range{From: "RBT24CS001", To: "RBT24CS010"}

	assert.True(t, rng.Contains("RBT24CS005", ""))
	assert.True(t, rng.Contains("", "RBT24CS005"), "prn fallback when roll empty")
	assert.True(t, rng.Contains("RBT24CS001", ""), "inclusive lower bound")
	assert.True(t, rng.Contains("RBT24CS010", ""), "inclusive upper bound")
	assert.False(t, rng.Contains("RBT24CS011", ""))
	assert.False(t, rng.Contains("RBT24CS000", ""), "sequence 0 below from=1")
	assert.False(t, rng.Contains("NODIGITS", ""), "fail-safe exclusion")
	assert.False(t, rng.Contains("", ""), "nothing to extract")

	// broken endpoints exclude everyone instead of guessing
	bad := Range{From: "XX", To: "RBT24CS010"}
	assert.False(t, bad.Contains("RBT24CS005", ""))
}

func TestCanonicalYear(t *testing.T) {
	assert.Equal(t, "Second Year", CanonicalYear("SE"))
	assert.Equal(t, "Second Year", CanonicalYear("2nd"))
	assert.Equal(t, "Second Year", CanonicalYear("second year"))
	assert.Equal(t, "First Year", CanonicalYear("FE"))
	assert.Equal(t, "Third Year", CanonicalYear("TE"))
	assert.Equal(t, "Final Year", CanonicalYear("BE"))
	assert.Equal(t, "Final Year", CanonicalYear("4th Year"))
	assert.Equal(t, "2025-26", CanonicalYear(" 2025-26 "), "unknown labels pass through")

	assert.True(t, SameYear("SE", "Second Year"))
	assert.False(t, SameYear("SE", "TE"))
}

func TestDivisionMatching(t *testing.T) {
	for _, d := range []string{"A", "A1", "A2", "A3", "a2"} {
		assert.True(t, SameDivision(d, "A"), "%s belongs to main division A", d)
	}
	assert.False(t, SameDivision("B", "A"))
	assert.False(t, SameDivision("", "A"))
}

func batchOf(n int) []Student {
	out := make([]Student, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, Student{
			Prn:         "RBT24CS" + pad3(i),
			RollNo:      "CS24" + pad3(i),
			Branch:      "Computer Engineering",
			YearOfStudy: "Second Year",
			Division:    "A",
		})
	}
	return out
}

func pad3(n int) string {
	s := []byte{'0', '0', '0'}
	for i := 2; i >= 0 && n > 0; i-- {
		s[i] = byte('0' + n%10)
		n /= 10
	}
	return string(s)
}

func TestResolveBatch(t *testing.T) {
	students := batchOf(30)
	cfg := Config{
		Department: "Computer Engineering",
		Class:      "SE", // spelled differently than the roster rows
		Division:   "A2", // main letter must match
		RbtFrom:    "RBT24CS011",
		RbtTo:      "RBT24CS020",
	}

	got := ResolveBatch(students, cfg)
	require.Len(t, got, 10)
	assert.Equal(t, "CS24011", got[0].RollNo)
	assert.Equal(t, "CS24020", got[9].RollNo)
}

func TestResolveBatchFiltersScope(t *testing.T) {
	students := batchOf(5)
	students[1].Branch = "Mechanical Engineering"
	students[2].YearOfStudy = "TE"
	students[3].Division = "B"
	students[4].RollNo = "NOSEQ"
	students[4].Prn = "ALSONOSEQ"

	got := ResolveBatch(students, Config{
		Department: "Computer Engineering",
		Class:      "Second Year",
		Division:   "A",
		RbtFrom:    "001",
		RbtTo:      "010",
	})
	require.Len(t, got, 1)
	assert.Equal(t, "CS24001", got[0].RollNo)
}

func TestResolveBatchEmptyIsValid(t *testing.T) {
	got := ResolveBatch(batchOf(5), Config{
		Department: "Computer Engineering",
		Class:      "SE",
		Division:   "A",
		RbtFrom:    "101",
		RbtTo:      "110",
	})
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestParseAbsentInput(t *testing.T) {
	assert.Equal(t, []string{"3", "10", "26", "40"}, ParseAbsentInput("3, 10 26,40"))
	assert.Equal(t, []string{"CS24003"}, ParseAbsentInput("  CS24003  "))
	assert.Empty(t, ParseAbsentInput("  , ,\n"))
}

func TestMatchesRoll(t *testing.T) {
	tokens := ParseAbsentInput("cs24002, CS24028")
	assert.True(t, MatchesRoll(tokens, "CS24002"))
	assert.True(t, MatchesRoll(tokens, "cs24028"))
	assert.False(t, MatchesRoll(tokens, "CS24020"), "token match is exact, not prefix")
	assert.False(t, MatchesRoll(tokens, ""))
}
