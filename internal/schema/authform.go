package schema

import (
	"encoding/json"
	"errors"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// FormType selects which conditional rule set applies to an auth form.
type FormType string

const (
	FormLogin  FormType = "login"
	FormSignup FormType = "signup"
)

// AuthForm carries the raw field values of the login/signup screen.
// Validation is conditional: signup requires username (at least 8
// characters), name, and a matching password confirmation; login requires
// only email and password. The email grammar and the 8-character password
// minimum apply to both.
type AuthForm struct {
	Username             string   `json:"username,omitempty"`
	Name                 string   `json:"name,omitempty"`
	Email                string   `json:"email"`
	Password             string   `json:"password"`
	PasswordConfirmation string   `json:"passwordConfirmation,omitempty"`
	FormType             FormType `json:"-"`
}

// Validate checks the form against the rule set for its FormType. It runs
// entirely client-side, before any network call.
func (f AuthForm) Validate() error {
	var s *jsonschema.Schema
	switch f.FormType {
	case FormSignup:
		s = authSignupSchema
	case FormLogin:
		s = authLoginSchema
	default:
		return newValidationError(FieldError{Path: "formType", Message: "form type must be login or signup"})
	}

	raw, err := json.Marshal(f)
	if err != nil {
		return newValidationError(FieldError{Message: err.Error()})
	}
	verr := validateRaw(s, raw)

	// Password confirmation is a cross-field rule the schema cannot express.
	if f.FormType == FormSignup && f.Password != f.PasswordConfirmation {
		fe := FieldError{Path: "passwordConfirmation", Message: "passwords don't match"}
		var ve *ValidationError
		if errors.As(verr, &ve) {
			ve.Fields = append(ve.Fields, fe)
			return ve
		}
		return newValidationError(fe)
	}
	return verr
}
