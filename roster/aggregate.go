package roster

import "math"

// Record is an attendance row joined with the student identity the
// grouping logic needs.
type Record struct {
	RecordID uint   `json:"record_id"`
	Prn      string `json:"prn"`
	RollNo   string `json:"roll_no"`
	FullName string `json:"full_name"`
	Status   string `json:"status"`
	Remark   string `json:"remark"`
}

// Summary is the present/absent breakdown of a record set.
type Summary struct {
	Total   int `json:"total"`
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Rate    int `json:"rate"` // percent, rounded
}

// Aggregate counts absences and derives the presence rate. An empty
// record set yields a zero summary; no division happens.
func Aggregate(records []Record) Summary {
	s := Summary{Total: len(records)}
	for _, r := range records {
		if r.Status == "Absent" {
			s.Absent++
		}
	}
	s.Present = s.Total - s.Absent
	if s.Total > 0 {
		s.Rate = int(math.Round(float64(s.Present) / float64(s.Total) * 100))
	}
	return s
}

// SubBatch names a configured slice of a division ("A1") and its range.
type SubBatch struct {
	Name  string
	Range Range
}

// BatchAbsence is the absentee report for one sub-batch.
type BatchAbsence struct {
	Batch string   `json:"batch"`
	Range string   `json:"range"`
	Count int      `json:"count"`
	Rolls []string `json:"rolls"`
}

// GroupAbsentees buckets the absent records of a session into the
// configured sub-batches using the same range containment as the
// resolver. Each record counts once even when two records share a roll
// number; records outside every range are simply not reported.
func GroupAbsentees(records []Record, batches []SubBatch) []BatchAbsence {
	out := make([]BatchAbsence, 0, len(batches))
	for _, b := range batches {
		ba := BatchAbsence{Batch: b.Name, Range: b.Range.From + " - " + b.Range.To, Rolls: []string{}}
		for _, r := range records {
			if r.Status != "Absent" {
				continue
			}
			if !b.Range.Contains(r.RollNo, r.Prn) {
				continue
			}
			ba.Count++
			roll := r.RollNo
			if roll == "" {
				roll = r.Prn
			}
			ba.Rolls = append(ba.Rolls, roll)
		}
		out = append(out, ba)
	}
	return out
}

// FilterByRange keeps the records whose roll (PRN fallback) sequence
// lies in the range. Used by the GFM summary to slice a whole-division
// session down to the GFM's own batch.
func FilterByRange(records []Record, rng Range) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if rng.Contains(r.RollNo, r.Prn) {
			out = append(out, r)
		}
	}
	return out
}
