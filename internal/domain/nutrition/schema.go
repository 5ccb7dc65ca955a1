package nutrition

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const formProperties = `{
	"animal_type":    {"type": "string", "enum": ["Dog", "Cat", "Rabbit", "Bird"]},
	"age":            {"type": "number", "minimum": 0.5},
	"current_weight": {"type": "number", "minimum": 0.5},
	"target_weight":  {"type": "number", "minimum": 0},
	"activity_level": {"type": "string", "enum": ["low", "moderate", "high"]},
	"fitness_goal":   {"type": "string", "enum": ["Weight Loss", "Weight Gain", "Maintenance", "Muscle Building"]},
	"duration_weeks": {"type": "integer", "minimum": 1, "maximum": 52}
}`

// target_weight es opcional: 0 / ausente = sin objetivo de peso.
var formSchemaDoc = `{
	"type": "object",
	"additionalProperties": false,
	"required": ["animal_type", "age", "current_weight", "activity_level", "fitness_goal", "duration_weeks"],
	"properties": ` + formProperties + `
}`

var patchSchemaDoc = `{
	"type": "object",
	"additionalProperties": false,
	"minProperties": 1,
	"properties": ` + formProperties + `
}`

var (
	formSchema  = mustSchema(formSchemaDoc)
	patchSchema = mustSchema(patchSchemaDoc)
)

func mustSchema(doc string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(doc))
	if err != nil {
		panic(fmt.Sprintf("nutrition schema: %v", err))
	}
	return s
}

// ValidateFormJSON valida un formulario completo antes de decodificarlo.
func ValidateFormJSON(body []byte) error {
	return validate(formSchema, body)
}

// ValidatePatchJSON valida un PATCH parcial del formulario.
func ValidatePatchJSON(body []byte) error {
	return validate(patchSchema, body)
}

func validate(s *gojsonschema.Schema, body []byte) error {
	res, err := s.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if res.Valid() {
		return nil
	}

	errs := res.Errors()
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", classify(errs), strings.Join(msgs, "; "))
}

// classify elige el sentinel del primer error relevante.
func classify(errs []gojsonschema.ResultError) error {
	for _, e := range errs {
		switch e.Type() {
		case "enum":
			return ErrUnknownCategory
		case "number_gte", "number_lte", "number_gt", "number_lt":
			return ErrInvalidRange
		}
	}
	return ErrInvalidInput
}
