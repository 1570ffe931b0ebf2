package profile

import (
	"time"

	"github.com/abhisek/careerlens/internal/profile"
	"github.com/abhisek/careerlens/internal/ui/components"
)

type rowKind int

const (
	rowText rowKind = iota
	rowChoice
	rowItem
	rowButton
)

type section int

const (
	sectionBasics section = iota
	sectionEducation
	sectionCertificates
	sectionSkills
	sectionSave
)

// Field keys.
const (
	keyGPA        = "gpa"
	keyMajor      = "major"
	keyDegree     = "degree"
	keySpec       = "specialization"
	keyState      = "state"
	keyInst       = "institution"
	keyCustomInst = "custom_institution"
	keyCGPA       = "cgpa"
	keyEduYear    = "edu_year"
	keyCertName   = "cert_name"
	keyCertIssuer = "cert_issuer"
	keyCertYear   = "cert_year"
	keySkill      = "skill"

	keyAddEducation   = "add_education"
	keyAddCertificate = "add_certificate"
	keyAddSkill       = "add_skill"
	keySave           = "save"
)

// row is one focusable line of the form.
type row struct {
	kind    rowKind
	section section
	key     string
	index   int // list position for rowItem
}

type form struct {
	inputs  map[string]*components.TextInput
	choices map[string]*components.Choice
}

func newForm(now time.Time) form {
	text := func(label, placeholder string, numeric bool, limit int) *components.TextInput {
		t := components.NewTextInput(label, placeholder, numeric, limit)
		return &t
	}
	choice := func(label string, opts []string) *components.Choice {
		c := components.NewChoice(label, opts)
		return &c
	}

	return form{
		inputs: map[string]*components.TextInput{
			keyGPA:        text("GPA", "e.g. 8.5", true, 5),
			keyMajor:      text("Major", "e.g. Computer Science", false, 100),
			keyCustomInst: text("Institution Name", "type your institution", false, 200),
			keyCertName:   text("Certificate", "e.g. AWS Solutions Architect", false, 200),
			keyCertIssuer: text("Issuer", "e.g. Amazon", false, 200),
			keyCertYear:   text("Year", "e.g. 2024", true, 4),
			keySkill:      text("Skill", "e.g. Python", false, 60),
		},
		choices: map[string]*components.Choice{
			keyDegree:  choice("Degree", profile.Degrees),
			keySpec:    choice("Specialization", profile.Specializations),
			keyState:   choice("State", profile.States()),
			keyInst:    choice("Institution", nil),
			keyCGPA:    choice("CGPA", profile.CGPARanges),
			keyEduYear: choice("Year", profile.GraduationYears(now.Year())),
		},
	}
}

// rows lays out the form for the current editor state. The custom
// institution field only appears when the sentinel is chosen.
func (s *ProfileScreen) rows() []row {
	var rs []row
	add := func(kind rowKind, sec section, key string, idx int) {
		rs = append(rs, row{kind: kind, section: sec, key: key, index: idx})
	}

	add(rowText, sectionBasics, keyGPA, 0)
	add(rowText, sectionBasics, keyMajor, 0)

	for i := range s.editor.Education() {
		add(rowItem, sectionEducation, "", i)
	}
	add(rowChoice, sectionEducation, keyDegree, 0)
	add(rowChoice, sectionEducation, keySpec, 0)
	add(rowChoice, sectionEducation, keyState, 0)
	add(rowChoice, sectionEducation, keyInst, 0)
	if s.form.choices[keyInst].Value() == profile.OtherInstitution {
		add(rowText, sectionEducation, keyCustomInst, 0)
	}
	add(rowChoice, sectionEducation, keyCGPA, 0)
	add(rowChoice, sectionEducation, keyEduYear, 0)
	add(rowButton, sectionEducation, keyAddEducation, 0)

	for i := range s.editor.Certificates() {
		add(rowItem, sectionCertificates, "", i)
	}
	add(rowText, sectionCertificates, keyCertName, 0)
	add(rowText, sectionCertificates, keyCertIssuer, 0)
	add(rowText, sectionCertificates, keyCertYear, 0)
	add(rowButton, sectionCertificates, keyAddCertificate, 0)

	for i := range s.editor.Skills() {
		add(rowItem, sectionSkills, "", i)
	}
	add(rowText, sectionSkills, keySkill, 0)
	add(rowButton, sectionSkills, keyAddSkill, 0)

	add(rowButton, sectionSave, keySave, 0)
	return rs
}

// syncDrafts copies the widgets into the editor drafts.
func (s *ProfileScreen) syncDrafts() {
	in, ch := s.form.inputs, s.form.choices
	s.editor.EduDraft = profile.EducationDraft{
		Degree:            ch[keyDegree].Value(),
		Specialization:    ch[keySpec].Value(),
		State:             ch[keyState].Value(),
		Institution:       ch[keyInst].Value(),
		CustomInstitution: in[keyCustomInst].Value(),
		CGPA:              ch[keyCGPA].Value(),
		Year:              ch[keyEduYear].Value(),
	}
	s.editor.CertDraft = profile.CertificateDraft{
		Name:   in[keyCertName].Value(),
		Issuer: in[keyCertIssuer].Value(),
		Year:   in[keyCertYear].Value(),
	}
	s.editor.SkillDraft = in[keySkill].Value()
}

func (s *ProfileScreen) clearEducationDraft() {
	for _, k := range []string{keyDegree, keySpec, keyState, keyCGPA, keyEduYear} {
		s.form.choices[k].Reset()
	}
	s.form.choices[keyInst].SetOptions(nil)
	s.form.inputs[keyCustomInst].SetValue("")
}

func (s *ProfileScreen) clearCertificateDraft() {
	for _, k := range []string{keyCertName, keyCertIssuer, keyCertYear} {
		s.form.inputs[k].SetValue("")
	}
}
