// Package schema defines the authoritative shapes exchanged with the
// portfolio backend and validates untrusted JSON against them. All
// functions are pure: they either produce a typed value or a
// *ValidationError enumerating every field violation.
package schema

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Age accepts a JSON integer or a numeric string and always marshals back
// as an integer, so re-serialized profiles are canonical.
type Age int64

func (a Age) Int64() int64 { return int64(a) }

func (a *Age) UnmarshalJSON(b []byte) error {
	if len(b) > 1 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("age must be numeric: %w", err)
		}
		*a = Age(n)
		return nil
	}
	var n int64
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*a = Age(n)
	return nil
}

// Profile is the identity and descriptive record of a user. ID is assigned
// by the backend and immutable once set.
type Profile struct {
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Age      *Age     `json:"age,omitempty"`
	Title    *string  `json:"title,omitempty"`
	About    *string  `json:"about,omitempty"`
	Location *string  `json:"location,omitempty"`
	Address  *string  `json:"address,omitempty"`
	Image    *FileRef `json:"image,omitempty"`
	Resume   *FileRef `json:"resume,omitempty"`
}

// Clone returns a deep copy so store snapshots cannot be mutated by callers.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	c := *p
	c.Age = clonePtr(p.Age)
	c.Title = clonePtr(p.Title)
	c.About = clonePtr(p.About)
	c.Location = clonePtr(p.Location)
	c.Address = clonePtr(p.Address)
	c.Image = p.Image.clone()
	c.Resume = p.Resume.clone()
	return &c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
