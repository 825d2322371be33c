package schema

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFS embed.FS

var (
	profileSchema    *jsonschema.Schema
	educationSchema  *jsonschema.Schema
	authLoginSchema  *jsonschema.Schema
	authSignupSchema *jsonschema.Schema
)

func init() {
	c := jsonschema.NewCompiler()
	c.AssertFormat = true
	for _, name := range []string{
		"schemas/fileref.json",
		"schemas/profile.json",
		"schemas/education.json",
		"schemas/auth_login.json",
		"schemas/auth_signup.json",
	} {
		data, err := schemaFS.ReadFile(name)
		if err != nil {
			panic(fmt.Sprintf("schema: read %s: %v", name, err))
		}
		if err := c.AddResource(name, bytes.NewReader(data)); err != nil {
			panic(fmt.Sprintf("schema: add %s: %v", name, err))
		}
	}
	profileSchema = c.MustCompile("schemas/profile.json")
	educationSchema = c.MustCompile("schemas/education.json")
	authLoginSchema = c.MustCompile("schemas/auth_login.json")
	authSignupSchema = c.MustCompile("schemas/auth_signup.json")
}

// ValidateProfile checks arbitrary decoded JSON against the profile shape
// and returns the typed value. Unknown fields are ignored; a numeric-string
// age is coerced to its integer form. On violation it returns a
// *ValidationError listing every offending field.
func ValidateProfile(raw []byte) (*Profile, error) {
	if err := validateRaw(profileSchema, raw); err != nil {
		return nil, err
	}
	var p Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, newValidationError(FieldError{Message: err.Error()})
	}
	return &p, nil
}

// ValidateEducation checks a single education payload. A level outside the
// enumerated set fails with a field error on "level".
func ValidateEducation(raw []byte) (*EducationEntry, error) {
	if err := validateRaw(educationSchema, raw); err != nil {
		return nil, err
	}
	var e EducationEntry
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, newValidationError(FieldError{Message: err.Error()})
	}
	return &e, nil
}

// ValidateEducationList validates an array element-wise. One bad element
// fails the whole array; field paths are prefixed with the element index.
func ValidateEducationList(raw []byte) ([]EducationEntry, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, newValidationError(FieldError{Message: "expected an array of education entries"})
	}
	entries := make([]EducationEntry, 0, len(items))
	for i, item := range items {
		e, err := ValidateEducation(item)
		if err != nil {
			var ve *ValidationError
			if errors.As(err, &ve) {
				for j := range ve.Fields {
					ve.Fields[j].Path = joinPath(strconv.Itoa(i), ve.Fields[j].Path)
				}
			}
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, nil
}

func validateRaw(s *jsonschema.Schema, raw []byte) error {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return newValidationError(FieldError{Message: "invalid JSON: " + err.Error()})
	}
	return asFieldErrors(s.Validate(v))
}

// asFieldErrors flattens a jsonschema validation tree into per-field
// violations keyed by dotted instance paths.
func asFieldErrors(err error) error {
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	var fields []FieldError
	collectLeaves(ve, &fields)
	if len(fields) == 0 {
		fields = append(fields, FieldError{Path: pointerToPath(ve.InstanceLocation), Message: ve.Message})
	}
	return &ValidationError{Fields: fields}
}

func collectLeaves(ve *jsonschema.ValidationError, out *[]FieldError) {
	if len(ve.Causes) == 0 {
		*out = append(*out, FieldError{
			Path:    pointerToPath(ve.InstanceLocation),
			Message: ve.Message,
		})
		return
	}
	for _, c := range ve.Causes {
		collectLeaves(c, out)
	}
}

// pointerToPath turns a JSON pointer like "/image/uri" into "image.uri".
func pointerToPath(ptr string) string {
	p := strings.TrimPrefix(ptr, "/")
	return strings.ReplaceAll(p, "/", ".")
}

func joinPath(prefix, path string) string {
	if path == "" {
		return prefix
	}
	return prefix + "." + path
}
