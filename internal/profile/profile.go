// Package profile holds the user profile submitted for a career
// recommendation and its normalized form.
package profile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Skill is a single skill entry. Clients send either a bare name or an object
// of the form {"skill": "python", "level": 8}; both decode into Name and
// nothing downstream looks at the wire shape again.
type Skill struct {
	Name string
}

func (s *Skill) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		s.Name = ""
		return nil
	}

	if data[0] == '{' {
		var tagged struct {
			Skill json.RawMessage `json:"skill"`
		}
		if err := json.Unmarshal(data, &tagged); err != nil {
			return fmt.Errorf("decode tagged skill: %w", err)
		}
		name, err := scalarString(tagged.Skill)
		if err != nil {
			return fmt.Errorf("decode tagged skill: %w", err)
		}
		s.Name = name
		return nil
	}

	name, err := scalarString(data)
	if err != nil {
		return fmt.Errorf("decode skill: %w", err)
	}
	s.Name = name
	return nil
}

func (s Skill) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{"skill": s.Name})
}

func (s *Skill) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		s.Name = node.Value
		return nil
	case yaml.MappingNode:
		var tagged struct {
			Skill string `yaml:"skill"`
		}
		if err := node.Decode(&tagged); err != nil {
			return fmt.Errorf("decode tagged skill: %w", err)
		}
		s.Name = tagged.Skill
		return nil
	default:
		return fmt.Errorf("decode skill: unexpected yaml node at line %d", node.Line)
	}
}

// StringList accepts either a list of strings or a single string.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}

	if data[0] == '[' {
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		out := make(StringList, 0, len(raw))
		for _, item := range raw {
			v, err := scalarString(item)
			if err != nil {
				return err
			}
			out = append(out, v)
		}
		*l = out
		return nil
	}

	v, err := scalarString(data)
	if err != nil {
		return err
	}
	*l = StringList{v}
	return nil
}

func (l *StringList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*l = StringList{node.Value}
		return nil
	}

	var items []string
	if err := node.Decode(&items); err != nil {
		return err
	}
	*l = items
	return nil
}

// Profile is the free-text description of a user. Every field is optional.
type Profile struct {
	Name            string     `json:"name,omitempty" yaml:"name"`
	TechnicalSkills []Skill    `json:"technicalSkills,omitempty" yaml:"technicalSkills"`
	SoftSkills      []Skill    `json:"softSkills,omitempty" yaml:"softSkills"`
	Industries      StringList `json:"industries,omitempty" yaml:"industries"`
	Values          StringList `json:"values,omitempty" yaml:"values"`
	CurrentRole     string     `json:"currentRole,omitempty" yaml:"currentRole"`
	Experience      string     `json:"experience,omitempty" yaml:"experience"`
	Education       string     `json:"education,omitempty" yaml:"education"`
}

// UnmarshalJSON accepts both currentRole and current_role, and scalar values
// of any JSON type for the free-text fields.
func (p *Profile) UnmarshalJSON(data []byte) error {
	var wire struct {
		Name             json.RawMessage `json:"name"`
		TechnicalSkills  []Skill         `json:"technicalSkills"`
		SoftSkills       []Skill         `json:"softSkills"`
		Industries       StringList      `json:"industries"`
		Values           StringList      `json:"values"`
		CurrentRole      json.RawMessage `json:"currentRole"`
		CurrentRoleSnake json.RawMessage `json:"current_role"`
		Experience       json.RawMessage `json:"experience"`
		Education        json.RawMessage `json:"education"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	var fields [5]string
	for i, raw := range []json.RawMessage{wire.Name, wire.CurrentRole, wire.CurrentRoleSnake, wire.Experience, wire.Education} {
		v, err := scalarString(raw)
		if err != nil {
			return err
		}
		fields[i] = v
	}

	role := fields[1]
	if strings.TrimSpace(role) == "" {
		role = fields[2]
	}

	*p = Profile{
		Name:            fields[0],
		TechnicalSkills: wire.TechnicalSkills,
		SoftSkills:      wire.SoftSkills,
		Industries:      wire.Industries,
		Values:          wire.Values,
		CurrentRole:     role,
		Experience:      fields[3],
		Education:       fields[4],
	}
	return nil
}

// Normalized is the lower-cased, trimmed view of a Profile. Empty entries of
// multi-valued fields are dropped.
type Normalized struct {
	Role            string
	TechnicalSkills []string
	SoftSkills      []string
	Industries      []string
	Values          []string
	Experience      string
	Education       string
}

// Normalize lower-cases and trims every field. A nil profile normalizes to
// the zero value. Normalizing already normalized text is a no-op.
func (p *Profile) Normalize() Normalized {
	if p == nil {
		return Normalized{}
	}

	lower := cases.Lower(language.Und)
	text := func(s string) string {
		return strings.TrimSpace(lower.String(strings.TrimSpace(s)))
	}
	list := func(values []string) []string {
		out := make([]string, 0, len(values))
		for _, v := range values {
			if v = text(v); v != "" {
				out = append(out, v)
			}
		}
		return out
	}

	return Normalized{
		Role:            text(p.CurrentRole),
		TechnicalSkills: list(skillNames(p.TechnicalSkills)),
		SoftSkills:      list(skillNames(p.SoftSkills)),
		Industries:      list(p.Industries),
		Values:          list(p.Values),
		Experience:      text(p.Experience),
		Education:       text(p.Education),
	}
}

// IsEmpty reports whether the profile carries no usable text at all.
func (n Normalized) IsEmpty() bool {
	return n.Role == "" && len(n.TechnicalSkills) == 0 && len(n.SoftSkills) == 0 &&
		len(n.Industries) == 0 && len(n.Values) == 0 && n.Experience == "" && n.Education == ""
}

func skillNames(skills []Skill) []string {
	names := make([]string, 0, len(skills))
	for _, s := range skills {
		names = append(names, s.Name)
	}
	return names
}

func scalarString(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", err
	}

	switch typed := v.(type) {
	case string:
		return typed, nil
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(typed), nil
	default:
		return "", fmt.Errorf("expected a scalar value, got %s", string(raw))
	}
}
