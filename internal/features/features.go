// Package features turns a profile into the weighted text fed to the career
// classifier.
package features

import (
	"strings"

	"github.com/spigell/career-compass/internal/profile"
)

// Repetition multipliers per field. Role and technical skills dominate the
// classifier input.
const (
	RoleWeight           = 12
	TechnicalSkillWeight = 10
	SoftSkillWeight      = 2
	IndustryWeight       = 1
	ValuesWeight         = 1
	ExperienceWeight     = 1
	EducationWeight      = 1
)

const listSeparator = ","

type segment struct {
	text   string
	weight int
}

// Synthesize builds the weighted text for p. Segments appear in the fixed
// order role, technical skills, soft skills, industries, values, experience,
// education; each non-empty segment is repeated by its weight and followed by
// a space. Empty fields contribute nothing.
func Synthesize(p *profile.Profile) string {
	return FromNormalized(p.Normalize())
}

// FromNormalized is Synthesize for an already normalized profile.
func FromNormalized(n profile.Normalized) string {
	segments := []segment{
		{text: n.Role, weight: RoleWeight},
		{text: strings.Join(n.TechnicalSkills, listSeparator), weight: TechnicalSkillWeight},
		{text: strings.Join(n.SoftSkills, listSeparator), weight: SoftSkillWeight},
		{text: strings.Join(n.Industries, listSeparator), weight: IndustryWeight},
		{text: strings.Join(n.Values, listSeparator), weight: ValuesWeight},
		{text: n.Experience, weight: ExperienceWeight},
		{text: n.Education, weight: EducationWeight},
	}

	var b strings.Builder
	for _, s := range segments {
		if s.text == "" {
			continue
		}
		b.WriteString(strings.Repeat(s.text+" ", s.weight))
	}

	return strings.TrimSpace(b.String())
}

// FallbackQuery picks the text used for fuzzy title search when the
// classifier cannot help: technical skills, else soft skills, else role.
func FallbackQuery(n profile.Normalized) string {
	for _, candidate := range []string{
		strings.Join(n.TechnicalSkills, listSeparator),
		strings.Join(n.SoftSkills, listSeparator),
		n.Role,
	} {
		if candidate != "" {
			return candidate
		}
	}
	return ""
}
