package prompt

import (
	"fmt"
	"strings"
)

// Template selects one of the fixed instructions sent to the model.
type Template int

const (
	Evaluation Template = iota
	SkillGap
	ATSScore
	CareerGuidance
)

const (
	resumeSlot         = "{resume_text}"
	jobDescriptionSlot = "{job_description}"
)

type InvalidTemplateError struct {
	ID string
}

func (e *InvalidTemplateError) Error() string {
	return fmt.Sprintf("invalid template: %q", e.ID)
}

type variant struct {
	name    string
	heading string
	text    string
}

var variants = map[Template]variant{
	Evaluation:     {name: "evaluation", heading: "📌 Resume Evaluation", text: evaluationTemplate},
	SkillGap:       {name: "skill_gap", heading: "📈 Skill Development Plan", text: skillGapTemplate},
	ATSScore:       {name: "ats_score", heading: "📊 ATS Compatibility Report", text: atsScoreTemplate},
	CareerGuidance: {name: "career_guidance", heading: "🧭 Career Path Analysis", text: careerGuidanceTemplate},
}

// All lists the templates in the order the actions are offered.
func All() []Template {
	return []Template{Evaluation, SkillGap, ATSScore, CareerGuidance}
}

func (t Template) String() string {
	if v, ok := variants[t]; ok {
		return v.name
	}
	return fmt.Sprintf("Template(%d)", int(t))
}

// ParseTemplate maps an action name to its template.
func ParseTemplate(name string) (Template, error) {
	for t, v := range variants {
		if v.name == name {
			return t, nil
		}
	}
	return 0, &InvalidTemplateError{ID: name}
}

// Heading is the section title shown above a template's response.
func Heading(t Template) string {
	return variants[t].heading
}

// Assemble fills the template slots with the resume text and the job
// description. Values are inserted verbatim in a single pass, so slot
// markers inside the values are left alone.
func Assemble(t Template, resumeText, jobDescription string) (string, error) {
	v, ok := variants[t]
	if !ok {
		return "", &InvalidTemplateError{ID: t.String()}
	}
	r := strings.NewReplacer(
		resumeSlot, resumeText,
		jobDescriptionSlot, jobDescription,
	)
	return r.Replace(v.text), nil
}
