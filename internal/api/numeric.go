package api

import (
	"encoding/json"
	"fmt"
)

// numericText decodes a JSON string or number as text. Profiles saved by
// older backends store gpa, cgpa and year as numbers.
type numericText string

func (t *numericText) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*t = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = numericText(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", b)
	}
	*t = numericText(n.String())
	return nil
}

func (e *Education) UnmarshalJSON(b []byte) error {
	type plain Education
	aux := struct {
		*plain
		CGPA numericText `json:"cgpa"`
		Year numericText `json:"year"`
	}{plain: (*plain)(e), CGPA: numericText(e.CGPA), Year: numericText(e.Year)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	e.CGPA, e.Year = string(aux.CGPA), string(aux.Year)
	return nil
}

func (c *Certificate) UnmarshalJSON(b []byte) error {
	type plain Certificate
	aux := struct {
		*plain
		Year numericText `json:"year"`
	}{plain: (*plain)(c), Year: numericText(c.Year)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	c.Year = string(aux.Year)
	return nil
}

func (a *AcademicInfo) UnmarshalJSON(b []byte) error {
	type plain AcademicInfo
	aux := struct {
		*plain
		GPA numericText `json:"gpa"`
	}{plain: (*plain)(a), GPA: numericText(a.GPA)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	a.GPA = string(aux.GPA)
	return nil
}
