// Package education holds the per-screen list of education entries owned
// by a profile. The list is not persisted; the owning screen re-fetches it
// each time it activates.
package education

import (
	"context"
	"sync"

	"github.com/aimandesu/portfolio-mobile/internal/api"
	"github.com/aimandesu/portfolio-mobile/internal/logging"
	"github.com/aimandesu/portfolio-mobile/internal/schema"
)

// Status tracks the store's fetch/mutation lifecycle.
type Status string

const (
	StatusInitial   Status = "initial"
	StatusLoading   Status = "loading"
	StatusCompleted Status = "completed"
	StatusError     Status = "error"
)

// TokenSource supplies the current bearer token; the session store
// satisfies it.
type TokenSource interface {
	Token() string
}

// State is an observable copy of the store.
type State struct {
	Entries []schema.EducationEntry
	Status  Status
	Err     string
}

// Store lists, adds, and removes education entries through the remote API.
// Failing operations keep the previously loaded entries.
type Store struct {
	mu      sync.Mutex
	entries []schema.EducationEntry
	status  Status
	lastErr string

	api     api.Client
	session TokenSource
	log     logging.Logger
}

func NewStore(apiClient api.Client, session TokenSource, log logging.Logger) *Store {
	if log == nil {
		log = logging.Discard()
	}
	return &Store{status: StatusInitial, api: apiClient, session: session, log: log}
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := make([]schema.EducationEntry, len(s.entries))
	copy(entries, s.entries)
	return State{Entries: entries, Status: s.status, Err: s.lastErr}
}

// List fetches all entries owned by userID and replaces the list wholesale.
// On failure the previous entries are preserved.
func (s *Store) List(ctx context.Context, userID int64) error {
	s.setLoading()
	data, err := s.api.ListEducation(ctx, userID)
	if err != nil {
		return s.fail(ctx, "list education", err)
	}
	entries, err := schema.ValidateEducationList(data)
	if err != nil {
		return s.fail(ctx, "list education", err)
	}

	s.mu.Lock()
	s.entries = entries
	s.status = StatusCompleted
	s.mu.Unlock()
	return nil
}

// Add submits a new entry and appends the server's returned representation.
// Requires a current token.
func (s *Store) Add(ctx context.Context, entry schema.EducationEntry) error {
	token := s.session.Token()
	if token == "" {
		return s.fail(ctx, "add education", api.ErrNoToken)
	}

	s.setLoading()
	form := api.EducationForm{
		Location:    entry.Location,
		Level:       string(entry.Level),
		Achievement: strOrEmpty(entry.Achievement),
	}
	if entry.Files.IsLocal() {
		form.File = entry.Files.Local()
	}

	data, err := s.api.AddEducation(ctx, token, form)
	if err != nil {
		return s.fail(ctx, "add education", err)
	}
	added, err := schema.ValidateEducation(data)
	if err != nil {
		return s.fail(ctx, "add education", err)
	}

	s.mu.Lock()
	s.entries = append(s.entries, *added)
	s.status = StatusCompleted
	s.mu.Unlock()
	return nil
}

// Remove deletes by id and drops the matching entry from the list. When no
// entry matches, the removal is a no-op success.
func (s *Store) Remove(ctx context.Context, educationID int64) error {
	token := s.session.Token()
	if token == "" {
		return s.fail(ctx, "remove education", api.ErrNoToken)
	}

	s.setLoading()
	if err := s.api.DeleteEducation(ctx, token, educationID); err != nil {
		return s.fail(ctx, "remove education", err)
	}

	s.mu.Lock()
	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.ID == nil || *e.ID != educationID {
			kept = append(kept, e)
		}
	}
	s.entries = kept
	s.status = StatusCompleted
	s.mu.Unlock()
	return nil
}

func (s *Store) setLoading() {
	s.mu.Lock()
	s.status = StatusLoading
	s.lastErr = ""
	s.mu.Unlock()
}

// fail records the error for passive observers and returns it to the
// caller so the invoking screen can react immediately.
func (s *Store) fail(ctx context.Context, op string, err error) error {
	s.mu.Lock()
	s.status = StatusError
	s.lastErr = err.Error()
	s.mu.Unlock()

	s.log.Error(ctx, op+" failed", "err", err)
	return err
}

func strOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
