package profile

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/careerlens/internal/api"
)

// Export writes the academic object as YAML.
func Export(w io.Writer, info api.AcademicInfo) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(info); err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	return enc.Close()
}

// Import reads an academic object from YAML. Education entries go through
// the same validation as the editor; the first invalid entry fails the
// whole import.
func Import(r io.Reader) (api.AcademicInfo, error) {
	var info api.AcademicInfo
	if err := yaml.NewDecoder(r).Decode(&info); err != nil {
		return api.AcademicInfo{}, fmt.Errorf("decode profile: %w", err)
	}

	for i, edu := range info.Education {
		entry, err := ValidateEducation(EducationDraft{
			Degree:         edu.Degree,
			Specialization: edu.Specialization,
			Institution:    edu.Institution,
			CGPA:           edu.CGPA,
			Year:           edu.Year,
		})
		if err != nil {
			return api.AcademicInfo{}, fmt.Errorf("education entry %d: %w", i+1, err)
		}
		info.Education[i] = entry
	}
	for i, c := range info.Certificates {
		if c.Name == "" || c.Issuer == "" {
			return api.AcademicInfo{}, fmt.Errorf("certificate %d: name and issuer are required", i+1)
		}
	}
	return cloneInfo(info), nil
}
