package dataset

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/spigell/career-compass/internal/roadmap"
)

//go:embed roadmaps.schema.json
var roadmapsSchema string

// SchemaError lists the schema violations of a document.
type SchemaError struct {
	Errors []FieldError
}

// FieldError is a single schema violation.
type FieldError struct {
	Field   string
	Message string
}

func (e *SchemaError) Error() string {
	var sb strings.Builder
	sb.WriteString("schema validation failed:")
	for _, fe := range e.Errors {
		fmt.Fprintf(&sb, " %s: %s;", fe.Field, fe.Message)
	}
	return strings.TrimSuffix(sb.String(), ";")
}

// ReadRoadmaps parses a label to steps JSON object into a roadmap table.
func ReadRoadmaps(r io.Reader) (roadmap.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read roadmaps: %w", err)
	}

	if err := validateJSON(roadmapsSchema, data); err != nil {
		return nil, err
	}

	var raw map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode roadmaps: %w", err)
	}
	return roadmap.NewTable(raw), nil
}

func validateJSON(schema string, document []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewBytesLoader(document),
	)
	if err != nil {
		return fmt.Errorf("validate document: %w", err)
	}
	if result.Valid() {
		return nil
	}

	schemaErr := &SchemaError{Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		schemaErr.Errors = append(schemaErr.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return schemaErr
}
