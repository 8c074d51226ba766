package organization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZipProjects_MissingRequirementEntries(t *testing.T) {
	specs := []ProjectSpec{
		{Title: "Backend", Location: "Jakarta", InternshipType: "unpaid"},
		{Title: "Frontend", Location: "Remote"},
	}

	got := ZipProjects(specs, [][]string{{"go", "sql"}})
	require.Len(t, got, 2)

	assert.Equal(t, 0, got[0].Position)
	assert.Equal(t, []string{"go", "sql"}, got[0].RequiredSkills)
	assert.Equal(t, "unpaid", got[0].InternshipType)

	assert.Equal(t, 1, got[1].Position)
	assert.Empty(t, got[1].RequiredSkills)
	assert.Equal(t, DefaultInternshipType, got[1].InternshipType)
}

func TestZipProjects_ExtraRequirementsIgnored(t *testing.T) {
	got := ZipProjects([]ProjectSpec{{Title: "Only"}}, [][]string{{"a"}, {"b"}})
	require.Len(t, got, 1)
	assert.Equal(t, []string{"a"}, got[0].RequiredSkills)
}

func TestOrganization_Requirements(t *testing.T) {
	o := Organization{Projects: ZipProjects(
		[]ProjectSpec{{Title: "A"}, {Title: "B"}},
		[][]string{{"x"}},
	)}
	assert.Equal(t, [][]string{{"x"}, {}}, o.Requirements())
}

func TestZipProjects_CompositeSpecs(t *testing.T) {
	got := ZipProjects([]ProjectSpec{
		{Title: "A", RequiredSkills: []string{"go"}},
		{Title: "B", RequiredSkills: []string{"sql"}},
	}, [][]string{{"rust"}})
	require.Len(t, got, 2)
	assert.Equal(t, []string{"rust"}, got[0].RequiredSkills)
	assert.Equal(t, []string{"sql"}, got[1].RequiredSkills)
}
