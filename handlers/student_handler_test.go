package handlers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheVinit/GFM-record-management-app-sub000/models"
)

func TestMapImportRowAliases(t *testing.T) {
	raw := map[string]string{
		"Name":          "  riya   sharma ",
		"Email ID":      "Riya@College.EDU",
		"prn":           "rbt24cs101",
		"Mobile Number": "9876543210",
		"Department":    "Computer Engineering",
		"Year of Study": "SE",
		"Div":           "a2",
		"Roll No":       "cs2428",
	}
	p, ok := mapImportRow(raw)
	require.True(t, ok)
	assert.Equal(t, "RBT24CS101", p.Prn)
	assert.Equal(t, "riya sharma", p.FullName) // whitespace collapsed, case kept
	assert.Equal(t, "riya@college.edu", p.Email)
	assert.Equal(t, "9876543210", p.Phone)
	assert.Equal(t, "Computer Engineering", p.Branch)
	assert.Equal(t, "SE", p.YearOfStudy)
	assert.Equal(t, "A2", p.Division)
	assert.Equal(t, "CS2428", p.RollNo)
}

func TestMapImportRowDefaults(t *testing.T) {
	p, ok := mapImportRow(map[string]string{
		"name": "Arjun Patil",
		"prn":  "RBT25CS001",
	})
	require.True(t, ok)
	assert.Equal(t, "First Year", p.YearOfStudy)
	assert.Equal(t, "A", p.Division)
}

func TestMapImportRowDropsIncomplete(t *testing.T) {
	_, ok := mapImportRow(map[string]string{"name": "No PRN Here"})
	assert.False(t, ok)

	_, ok = mapImportRow(map[string]string{"prn": "RBT25CS002"})
	assert.False(t, ok)

	// unrecognized headers contribute nothing
	_, ok = mapImportRow(map[string]string{"student identifier": "RBT25CS003", "name": "X"})
	assert.False(t, ok)
}

func TestParseImportCSV(t *testing.T) {
	csvData := strings.Join([]string{
		"Name,PRN,Year,Division",
		"Riya Sharma,RBT24CS101,SE,A",
		",RBT24CS102,SE,A",
		"Arjun Patil,RBT24CS103,,",
	}, "\n")

	payloads, dropped, err := parseImportCSV(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, payloads, 2)
	assert.Len(t, dropped, 1)
	assert.Equal(t, 3, dropped[0]["row"])

	assert.Equal(t, "RBT24CS101", payloads[0].Prn)
	assert.Equal(t, "First Year", payloads[1].YearOfStudy)
	assert.Equal(t, "A", payloads[1].Division)
}

func TestStudentPayloadCheck(t *testing.T) {
	p := studentPayload{Prn: "RBT24CS101", FullName: "X", Phone: "12345"}
	errs := p.check()
	require.NotNil(t, errs)
	assert.Contains(t, errs, "phone")

	p.Phone = "9876543210"
	assert.Nil(t, p.check())

	p.Prn = "has spaces"
	errs = p.check()
	require.NotNil(t, errs)
	assert.Contains(t, errs, "prn")
}

func TestFilterDefinitionsByYear(t *testing.T) {
	defs := []models.BatchDefinition{
		{Class: "SE", SubBatch: "A1"},
		{Class: "SE", SubBatch: "A2"},
		{Class: "TE", SubBatch: "A1"},
	}

	// an admin who typed "SE" still matches a lookup under "Second Year"
	got := filterDefinitionsByYear(defs, "Second Year")
	require.Len(t, got, 2)
	assert.Equal(t, "A1", got[0].SubBatch)
	assert.Equal(t, "A2", got[1].SubBatch)

	got = filterDefinitionsByYear(defs, "Third Year")
	require.Len(t, got, 1)
	assert.Equal(t, "TE", got[0].Class)

	assert.Empty(t, filterDefinitionsByYear(defs, "Final Year"))
}

func TestPickDefinition(t *testing.T) {
	defs := []models.BatchDefinition{
		{SubBatch: "A1", RbtFrom: "001", RbtTo: "025"},
		{SubBatch: "A2", RbtFrom: "026", RbtTo: "050"},
	}

	def, ok := pickDefinition(defs, "A2")
	require.True(t, ok)
	assert.Equal(t, "026", def.RbtFrom)

	// label comparison is case-insensitive, like the rest of the matching
	_, ok = pickDefinition(defs, "a1")
	assert.True(t, ok)

	_, ok = pickDefinition(defs, "A3")
	assert.False(t, ok)
}

func TestSubBatchLabel(t *testing.T) {
	assert.Equal(t, "A2", subBatchLabel("A", "2"))
	assert.Equal(t, "A2", subBatchLabel("a", "2"))
	assert.Equal(t, "B1", subBatchLabel("B2", "1")) // main division letter wins
	assert.Equal(t, "A3", subBatchLabel("A", "a3"))
}
