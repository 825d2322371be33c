// Package api talks to the portfolio backend over HTTP. Every response
// envelope carries either "data" (success) or "error" (a failure message);
// a present error field fails the call even on HTTP 2xx, and a non-2xx
// status fails it regardless of body. Payloads are returned as raw JSON so
// callers validate them with the schema package.
package api

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/aimandesu/portfolio-mobile/internal/schema"
)

// AuthPayload is the success body of register and login: the user object
// (not yet validated) and the bearer token to replay on later calls.
type AuthPayload struct {
	User  json.RawMessage `json:"user"`
	Token string          `json:"token"`
}

// RegisterRequest carries the registration fields posted as a JSON body.
type RegisterRequest struct {
	Username             string `json:"username"`
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// EducationForm is the multipart body of an add-education call.
type EducationForm struct {
	Location    string
	Level       string
	Achievement string
	File        *schema.LocalFile
}

// Client is the remote API surface used by the stores. Each method performs
// a single round trip with no automatic retry.
type Client interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthPayload, error)
	Login(ctx context.Context, email, password string) (*AuthPayload, error)
	Logout(ctx context.Context, token string) error

	UpdateUser(ctx context.Context, token string, userID int64, fields url.Values) (json.RawMessage, error)
	UploadImage(ctx context.Context, token string, userID int64, file schema.LocalFile) (string, error)
	UploadResume(ctx context.Context, token string, userID int64, file schema.LocalFile) (string, error)

	ListEducation(ctx context.Context, userID int64) (json.RawMessage, error)
	AddEducation(ctx context.Context, token string, form EducationForm) (json.RawMessage, error)
	DeleteEducation(ctx context.Context, token string, educationID int64) error
}
