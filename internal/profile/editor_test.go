package profile

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/careerlens/internal/api"
)

func validDraft() EducationDraft {
	return EducationDraft{Degree: "B.Tech", Institution: "X College", Year: "2024", CGPA: "8-9"}
}

func TestAddEducationScenario(t *testing.T) {
	e := NewEditor()
	e.Load(&api.Profile{Username: "asha"})
	require.Empty(t, e.Education())

	e.EduDraft = validDraft()
	require.NoError(t, e.AddEducation())

	got := e.Education()
	require.Len(t, got, 1)
	assert.Equal(t, api.Education{Degree: "B.Tech", Institution: "X College", Year: "2024", CGPA: "8-9"}, got[0])
	assert.Equal(t, EducationDraft{}, e.EduDraft, "draft cleared")
	assert.True(t, e.Dirty())

	require.NoError(t, e.RemoveEducation(0))
	assert.Empty(t, e.Education())
}

func TestAddEducationValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(d *EducationDraft)
		field   string
		message string
	}{
		{"missing degree", func(d *EducationDraft) { d.Degree = "" }, "education", "Please fill in Degree, Institution and Year."},
		{"missing institution", func(d *EducationDraft) { d.Institution = "  " }, "education", "Please fill in Degree, Institution and Year."},
		{"missing year", func(d *EducationDraft) { d.Year = "" }, "education", "Please fill in Degree, Institution and Year."},
		{"missing cgpa", func(d *EducationDraft) { d.CGPA = "" }, "cgpa", "Please select a CGPA range."},
		{"other without name", func(d *EducationDraft) { d.Institution = OtherInstitution }, "institution", "Please enter your Institution Name."},
		{"short year", func(d *EducationDraft) { d.Year = "24" }, "year", "Year must be a 4-digit number."},
		{"non numeric year", func(d *EducationDraft) { d.Year = "20x4" }, "year", "Year must be a 4-digit number."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEditor()
			e.Replace(api.AcademicInfo{Education: []api.Education{{Degree: "M.Tech", Institution: "Y", Year: "2026", CGPA: "9-10"}}})
			before := e.Education()

			d := validDraft()
			tt.mutate(&d)
			e.EduDraft = d

			err := e.AddEducation()
			var fe *FieldError
			require.True(t, errors.As(err, &fe), "got %v", err)
			assert.Equal(t, tt.field, fe.Field)
			assert.Equal(t, tt.message, fe.Message)
			assert.Equal(t, before, e.Education(), "list unchanged")
			assert.Equal(t, d, e.EduDraft, "draft kept for correction")
		})
	}
}

func TestAddEducationOtherInstitution(t *testing.T) {
	e := NewEditor()
	d := validDraft()
	d.Institution = OtherInstitution
	d.CustomInstitution = "  Tiny Institute  "
	e.EduDraft = d

	require.NoError(t, e.AddEducation())
	assert.Equal(t, "Tiny Institute", e.Education()[0].Institution)
}

func TestCertificates(t *testing.T) {
	e := NewEditor()

	e.CertDraft = CertificateDraft{Name: "AWS SAA"}
	assert.Error(t, e.AddCertificate(), "issuer required")
	assert.Empty(t, e.Certificates())

	for _, n := range []string{"A", "B", "C"} {
		e.CertDraft = CertificateDraft{Name: n, Issuer: "Org", Year: "2023"}
		require.NoError(t, e.AddCertificate())
		assert.Equal(t, CertificateDraft{}, e.CertDraft)
	}

	require.NoError(t, e.RemoveCertificate(1))
	names := []string{}
	for _, c := range e.Certificates() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"A", "C"}, names)
}

func TestSkills(t *testing.T) {
	e := NewEditor()

	e.SkillDraft = "   "
	assert.Error(t, e.AddSkill())

	for _, s := range []string{" Go ", "SQL", "Docker"} {
		e.SkillDraft = s
		require.NoError(t, e.AddSkill())
	}
	assert.Equal(t, []string{"Go", "SQL", "Docker"}, e.Skills())
	assert.Empty(t, e.SkillDraft)

	require.NoError(t, e.RemoveSkill(0))
	assert.Equal(t, []string{"SQL", "Docker"}, e.Skills())
}

func TestRemoveOutOfRange(t *testing.T) {
	e := NewEditor()
	e.Replace(api.AcademicInfo{Skills: []string{"Go"}})

	assert.ErrorIs(t, e.RemoveSkill(1), ErrIndexOutOfRange)
	assert.ErrorIs(t, e.RemoveSkill(-1), ErrIndexOutOfRange)
	assert.ErrorIs(t, e.RemoveEducation(0), ErrIndexOutOfRange)
	assert.ErrorIs(t, e.RemoveCertificate(0), ErrIndexOutOfRange)
	assert.Equal(t, []string{"Go"}, e.Skills())
}

func TestSnapshotIsCopy(t *testing.T) {
	e := NewEditor()
	e.Replace(api.AcademicInfo{Skills: []string{"Go"}})

	snap := e.Snapshot()
	snap.Skills[0] = "mutated"
	assert.Equal(t, []string{"Go"}, e.Skills())
}

type fakeSaver struct {
	sent api.AcademicInfo
	resp *api.Profile
	err  error
}

func (f *fakeSaver) UpdateProfile(_ context.Context, info api.AcademicInfo) (*api.Profile, error) {
	f.sent = info
	return f.resp, f.err
}

func TestSaveSendsWholeObject(t *testing.T) {
	e := NewEditor()
	e.Load(&api.Profile{Username: "asha", AcademicInfo: api.AcademicInfo{GPA: "8.0 – 8.9", Skills: []string{"Go"}}})
	e.SetMajor("CSE")
	e.EduDraft = validDraft()
	require.NoError(t, e.AddEducation())

	server := &api.Profile{Username: "asha", AcademicInfo: api.AcademicInfo{GPA: "8.0 – 8.9", Major: "CSE", Skills: []string{"Go"}}}
	s := &fakeSaver{resp: server}
	require.NoError(t, e.Save(context.Background(), s))

	assert.Equal(t, "CSE", s.sent.Major)
	assert.Equal(t, "8.0 – 8.9", s.sent.GPA)
	assert.Len(t, s.sent.Education, 1)
	assert.Equal(t, []string{"Go"}, s.sent.Skills)

	assert.False(t, e.Dirty())
	assert.Empty(t, e.Education(), "server response replaces local state")
}

func TestSaveFailureKeepsEdits(t *testing.T) {
	e := NewEditor()
	e.SkillDraft = "Go"
	require.NoError(t, e.AddSkill())

	err := e.Save(context.Background(), &fakeSaver{err: errors.New("Failed to update profile.")})
	require.Error(t, err)
	assert.True(t, e.Dirty())
	assert.Equal(t, []string{"Go"}, e.Skills())
}

func TestYAMLRoundTrip(t *testing.T) {
	info := api.AcademicInfo{
		GPA:          "9.0 – 10.0",
		Major:        "CSE",
		Education:    []api.Education{{Degree: "B.Tech", Institution: "X College", CGPA: "9.0 – 10.0", Year: "2024"}},
		Certificates: []api.Certificate{{Name: "CKA", Issuer: "CNCF"}},
		Skills:       []string{"Go", "Kubernetes"},
	}

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, info))
	assert.Contains(t, buf.String(), "institution: X College")

	got, err := Import(&buf)
	require.NoError(t, err)
	assert.Equal(t, info, got)
}

func TestImportRejectsInvalidEducation(t *testing.T) {
	doc := `
education:
  - degree: B.Tech
    institution: X College
    year: "24"
    cgpa: "8-9"
`
	_, err := Import(strings.NewReader(doc))
	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "year", fe.Field)
}

func TestCatalog(t *testing.T) {
	states := States()
	require.NotEmpty(t, states)
	assert.IsIncreasing(t, states)

	insts := Institutions(states[0])
	assert.Equal(t, OtherInstitution, insts[len(insts)-1])
	assert.Equal(t, []string{OtherInstitution}, Institutions("Atlantis"))

	years := GraduationYears(2026)
	assert.Equal(t, "2030", years[0])
	assert.Equal(t, "2000", years[len(years)-1])
}
