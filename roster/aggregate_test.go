package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordsWithAbsent(total int, absentRolls ...int) []Record {
	out := make([]Record, 0, total)
	absent := map[int]bool{}
	for _, r := range absentRolls {
		absent[r] = true
	}
	for i := 1; i <= total; i++ {
		st := "Present"
		if absent[i] {
			st = "Absent"
		}
		out = append(out, Record{Prn: "RBT24CS" + pad3(i), RollNo: pad3(i), Status: st})
	}
	return out
}

func TestAggregateEmpty(t *testing.T) {
	s := Aggregate(nil)
	assert.Equal(t, Summary{}, s)

	s = Aggregate([]Record{})
	assert.Zero(t, s.Present)
	assert.Zero(t, s.Absent)
	assert.Zero(t, s.Rate)
}

func TestAggregateCounts(t *testing.T) {
	s := Aggregate(recordsWithAbsent(40, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10))
	assert.Equal(t, 40, s.Total)
	assert.Equal(t, 10, s.Absent)
	assert.Equal(t, 30, s.Present)
	assert.Equal(t, 75, s.Rate)
}

func TestAggregateRateRounds(t *testing.T) {
	// 2 of 3 present = 66.67 -> 67
	s := Aggregate(recordsWithAbsent(3, 2))
	assert.Equal(t, 67, s.Rate)
}

func TestGroupAbsenteesSubBatchScenario(t *testing.T) {
	// Division A, rolls 1..75, split A1=[1,25] A2=[26,50] A3=[51,75].
	records := recordsWithAbsent(75, 3, 10, 26, 40, 60, 70, 75, 1, 50)
	// A second record for roll 26 (a duplicate submission row): counted
	// per record, not deduplicated by roll.
	records = append(records, Record{Prn: "RBT24CS026", RollNo: pad3(26), Status: "Absent"})

	batches := []SubBatch{
		{Name: "A1", Range: Range{From: "001", To: "025"}},
		{Name: "A2", Range: Range{From: "026", To: "050"}},
		{Name: "A3", Range: Range{From: "051", To: "075"}},
	}

	got := GroupAbsentees(records, batches)
	require.Len(t, got, 3)

	assert.Equal(t, 3, got[0].Count, "A1: rolls 3, 10, 1")
	assert.ElementsMatch(t, []string{"003", "010", "001"}, got[0].Rolls)

	assert.Equal(t, 4, got[1].Count, "A2: rolls 26, 40, 50 plus duplicate 26")
	assert.ElementsMatch(t, []string{"026", "040", "050", "026"}, got[1].Rolls)

	assert.Equal(t, 3, got[2].Count, "A3: rolls 60, 70, 75")
	assert.ElementsMatch(t, []string{"060", "070", "075"}, got[2].Rolls)
}

func TestGroupAbsenteesIgnoresPresent(t *testing.T) {
	records := recordsWithAbsent(10, 2)
	got := GroupAbsentees(records, []SubBatch{{Name: "A1", Range: Range{From: "001", To: "010"}}})
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Count)
	assert.Equal(t, []string{"002"}, got[0].Rolls)
}

func TestFilterByRange(t *testing.T) {
	records := recordsWithAbsent(20)
	got := FilterByRange(records, Range{From: "RBT24CS006", To: "RBT24CS015"})
	require.Len(t, got, 10)
	assert.Equal(t, "006", got[0].RollNo)

	// roll missing -> falls back to PRN sequence
	noRoll := []Record{{Prn: "RBT24CS008"}}
	assert.Len(t, FilterByRange(noRoll, Range{From: "001", To: "010"}), 1)
}
