// Package profile implements the academic profile editor: staged drafts,
// list edits, and the whole-document save.
package profile

import (
	"context"
	"slices"
	"strings"

	"github.com/abhisek/careerlens/internal/api"
)

// EducationDraft is the staged education entry before it is added.
type EducationDraft struct {
	Degree            string
	Specialization    string
	State             string
	Institution       string
	CustomInstitution string
	CGPA              string
	Year              string
}

// CertificateDraft is the staged certificate before it is added.
type CertificateDraft struct {
	Name   string
	Issuer string
	Year   string
}

// Saver persists the academic object. *api.Client satisfies it.
type Saver interface {
	UpdateProfile(ctx context.Context, info api.AcademicInfo) (*api.Profile, error)
}

// Editor holds the loaded profile and the staged drafts. All edits are
// local until Save.
type Editor struct {
	Username string
	Email    string

	EduDraft   EducationDraft
	CertDraft  CertificateDraft
	SkillDraft string

	info  api.AcademicInfo
	dirty bool
}

// NewEditor returns an empty editor.
func NewEditor() *Editor {
	return &Editor{}
}

// Load replaces the editor state with a fetched profile and clears drafts.
func (e *Editor) Load(p *api.Profile) {
	e.Username = p.Username
	e.Email = p.Email
	e.info = cloneInfo(p.AcademicInfo)
	e.EduDraft = EducationDraft{}
	e.CertDraft = CertificateDraft{}
	e.SkillDraft = ""
	e.dirty = false
}

// Replace swaps in a whole academic object, as an import does.
func (e *Editor) Replace(info api.AcademicInfo) {
	e.info = cloneInfo(info)
	e.dirty = true
}

// Snapshot returns a copy of the complete academic object.
func (e *Editor) Snapshot() api.AcademicInfo {
	return cloneInfo(e.info)
}

// Dirty reports whether there are unsaved edits.
func (e *Editor) Dirty() bool { return e.dirty }

func (e *Editor) GPA() string   { return e.info.GPA }
func (e *Editor) Major() string { return e.info.Major }

func (e *Editor) SetGPA(v string) {
	e.info.GPA = strings.TrimSpace(v)
	e.dirty = true
}

func (e *Editor) SetMajor(v string) {
	e.info.Major = strings.TrimSpace(v)
	e.dirty = true
}

func (e *Editor) Education() []api.Education     { return slices.Clone(e.info.Education) }
func (e *Editor) Certificates() []api.Certificate { return slices.Clone(e.info.Certificates) }
func (e *Editor) Skills() []string                { return slices.Clone(e.info.Skills) }

// AddEducation validates EduDraft and appends it. On failure the list is
// unchanged and a *FieldError says what is missing. On success the draft
// is cleared.
func (e *Editor) AddEducation() error {
	entry, err := ValidateEducation(e.EduDraft)
	if err != nil {
		return err
	}
	e.info.Education = append(e.info.Education, entry)
	e.EduDraft = EducationDraft{}
	e.dirty = true
	return nil
}

// ValidateEducation turns a draft into an entry, resolving the "other"
// institution to the typed name.
func ValidateEducation(d EducationDraft) (api.Education, error) {
	d = trimDraft(d)
	if d.Degree == "" || d.Institution == "" || d.Year == "" {
		return api.Education{}, fieldErr("education", "Please fill in Degree, Institution and Year.")
	}
	if d.CGPA == "" {
		return api.Education{}, fieldErr("cgpa", "Please select a CGPA range.")
	}
	institution := d.Institution
	if institution == OtherInstitution {
		if d.CustomInstitution == "" {
			return api.Education{}, fieldErr("institution", "Please enter your Institution Name.")
		}
		institution = d.CustomInstitution
	}
	if !isYear(d.Year) {
		return api.Education{}, fieldErr("year", "Year must be a 4-digit number.")
	}
	return api.Education{
		Degree:         d.Degree,
		Specialization: d.Specialization,
		Institution:    institution,
		CGPA:           d.CGPA,
		Year:           d.Year,
	}, nil
}

func trimDraft(d EducationDraft) EducationDraft {
	d.Degree = strings.TrimSpace(d.Degree)
	d.Specialization = strings.TrimSpace(d.Specialization)
	d.Institution = strings.TrimSpace(d.Institution)
	d.CustomInstitution = strings.TrimSpace(d.CustomInstitution)
	d.CGPA = strings.TrimSpace(d.CGPA)
	d.Year = strings.TrimSpace(d.Year)
	return d
}

func isYear(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// RemoveEducation removes entry i, preserving order.
func (e *Editor) RemoveEducation(i int) error {
	if i < 0 || i >= len(e.info.Education) {
		return indexErr("education", i, len(e.info.Education))
	}
	e.info.Education = slices.Delete(e.info.Education, i, i+1)
	e.dirty = true
	return nil
}

// AddCertificate appends CertDraft when it has a name and an issuer.
func (e *Editor) AddCertificate() error {
	d := e.CertDraft
	name, issuer := strings.TrimSpace(d.Name), strings.TrimSpace(d.Issuer)
	if name == "" || issuer == "" {
		return fieldErr("certificate", "Please enter the certificate name and issuer.")
	}
	e.info.Certificates = append(e.info.Certificates, api.Certificate{
		Name:   name,
		Issuer: issuer,
		Year:   strings.TrimSpace(d.Year),
	})
	e.CertDraft = CertificateDraft{}
	e.dirty = true
	return nil
}

// RemoveCertificate removes certificate i, preserving order.
func (e *Editor) RemoveCertificate(i int) error {
	if i < 0 || i >= len(e.info.Certificates) {
		return indexErr("certificate", i, len(e.info.Certificates))
	}
	e.info.Certificates = slices.Delete(e.info.Certificates, i, i+1)
	e.dirty = true
	return nil
}

// AddSkill appends the trimmed SkillDraft.
func (e *Editor) AddSkill() error {
	skill := strings.TrimSpace(e.SkillDraft)
	if skill == "" {
		return fieldErr("skill", "Please enter a skill.")
	}
	e.info.Skills = append(e.info.Skills, skill)
	e.SkillDraft = ""
	e.dirty = true
	return nil
}

// RemoveSkill removes skill i, preserving order.
func (e *Editor) RemoveSkill(i int) error {
	if i < 0 || i >= len(e.info.Skills) {
		return indexErr("skill", i, len(e.info.Skills))
	}
	e.info.Skills = slices.Delete(e.info.Skills, i, i+1)
	e.dirty = true
	return nil
}

// Save sends the whole academic object and adopts the server's response.
// On failure local edits are kept.
func (e *Editor) Save(ctx context.Context, s Saver) error {
	p, err := s.UpdateProfile(ctx, e.Snapshot())
	if err != nil {
		return err
	}
	e.Saved(p)
	return nil
}

// Saved adopts a profile returned by a save, keeping drafts. Screens that
// run the request in a command call this from Update.
func (e *Editor) Saved(p *api.Profile) {
	if p.Username != "" {
		e.Username = p.Username
	}
	if p.Email != "" {
		e.Email = p.Email
	}
	e.info = cloneInfo(p.AcademicInfo)
	e.dirty = false
}

func cloneInfo(in api.AcademicInfo) api.AcademicInfo {
	out := in
	out.Education = slices.Clone(in.Education)
	out.Certificates = slices.Clone(in.Certificates)
	out.Skills = slices.Clone(in.Skills)
	if out.Education == nil {
		out.Education = []api.Education{}
	}
	if out.Certificates == nil {
		out.Certificates = []api.Certificate{}
	}
	if out.Skills == nil {
		out.Skills = []string{}
	}
	return out
}
