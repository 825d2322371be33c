package schema

import (
	"encoding/json"
	"errors"
)

// LocalFile describes a file on the device that has not been uploaded yet.
type LocalFile struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType"`
	Name     string `json:"name"`
}

// FileRef is either a reference the server already stores (a filename or
// URL) or a local file pending upload. Exactly one side is set: once an
// upload succeeds the local descriptor is replaced by the returned remote
// reference.
type FileRef struct {
	local  *LocalFile
	remote string
}

// NewRemoteRef wraps a server-side reference.
func NewRemoteRef(ref string) *FileRef {
	return &FileRef{remote: ref}
}

// NewLocalRef wraps a local file descriptor pending upload.
func NewLocalRef(f LocalFile) *FileRef {
	return &FileRef{local: &f}
}

// IsLocal reports whether the reference still points at a local file.
func (f *FileRef) IsLocal() bool {
	return f != nil && f.local != nil
}

// Local returns the local descriptor, or nil if the file was uploaded.
func (f *FileRef) Local() *LocalFile {
	if f == nil {
		return nil
	}
	return f.local
}

// Remote returns the server-side reference, or "" while the file is local.
func (f *FileRef) Remote() string {
	if f == nil {
		return ""
	}
	return f.remote
}

func (f *FileRef) clone() *FileRef {
	if f == nil {
		return nil
	}
	if f.local != nil {
		l := *f.local
		return &FileRef{local: &l}
	}
	return &FileRef{remote: f.remote}
}

func (f FileRef) MarshalJSON() ([]byte, error) {
	if f.local != nil {
		return json.Marshal(f.local)
	}
	return json.Marshal(f.remote)
}

func (f *FileRef) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = FileRef{remote: s}
		return nil
	}
	var l LocalFile
	if err := json.Unmarshal(b, &l); err == nil {
		*f = FileRef{local: &l}
		return nil
	}
	return errors.New("file reference must be a string or a {uri, mimeType, name} object")
}
