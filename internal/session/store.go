// Package session owns the process-wide authentication state: the bearer
// token and the authenticated profile. State is persisted to a durable
// key/value slot on every successful mutation and rehydrated at startup.
package session

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"

	"github.com/aimandesu/portfolio-mobile/internal/api"
	"github.com/aimandesu/portfolio-mobile/internal/logging"
	"github.com/aimandesu/portfolio-mobile/internal/schema"
	"github.com/aimandesu/portfolio-mobile/internal/session/storage"
)

// StorageKey is the fixed slot the session record is persisted under.
const StorageKey = "user-auth-storage"

// Status tracks the lifecycle of the most recent mutating operation.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// persistedState is the JSON shape of the durable slot.
type persistedState struct {
	Profile *schema.Profile `json:"profile"`
	Token   string          `json:"token"`
}

// Snapshot is a read-only copy of the store's observable state.
type Snapshot struct {
	Profile  *schema.Profile
	Token    string
	Hydrated bool
	Status   Status
	Err      string
}

// Store is the single writer of session state. Mutating operations call
// the remote API and replace state only on success; two in-flight
// mutations are not coordinated beyond the mutex, so the one completing
// last wins.
type Store struct {
	mu       sync.Mutex
	profile  *schema.Profile
	token    string
	hydrated bool
	status   Status
	lastErr  string

	ready chan struct{}

	api  api.Client
	repo storage.Repository
	log  logging.Logger
}

func NewStore(apiClient api.Client, repo storage.Repository, log logging.Logger) *Store {
	if log == nil {
		log = logging.Discard()
	}
	return &Store{
		status: StatusIdle,
		ready:  make(chan struct{}),
		api:    apiClient,
		repo:   repo,
		log:    log,
	}
}

// Hydrate loads the persisted session back into memory. It marks the store
// hydrated and closes the Ready channel whether or not a prior session
// existed; until then the state must be treated as provisional.
func (s *Store) Hydrate(ctx context.Context) error {
	raw, err := s.repo.Get(ctx, StorageKey)

	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.markHydrated()

	if err != nil {
		s.log.Error(ctx, "session rehydration failed", "err", err)
		return err
	}
	if raw == nil {
		return nil
	}
	var st persistedState
	if err := json.Unmarshal(raw, &st); err != nil {
		s.log.Error(ctx, "persisted session is corrupt, discarding", "err", err)
		return err
	}
	s.profile = st.Profile
	s.token = st.Token
	s.log.Info(ctx, "session rehydrated", "logged_in", st.Token != "")
	return nil
}

func (s *Store) markHydrated() {
	if !s.hydrated {
		s.hydrated = true
		close(s.ready)
	}
}

// Ready is closed once rehydration has completed. Callers should await it
// before trusting Profile or Token.
func (s *Store) Ready() <-chan struct{} {
	return s.ready
}

func (s *Store) Hydrated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hydrated
}

// Snapshot returns copies; mutating the result does not affect the store.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Profile:  s.profile.Clone(),
		Token:    s.token,
		Hydrated: s.hydrated,
		Status:   s.status,
		Err:      s.lastErr,
	}
}

// Token returns the current bearer token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Profile returns a copy of the authenticated profile, or nil.
func (s *Store) Profile() *schema.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile.Clone()
}

// Signup registers a new account and, on success, atomically sets and
// persists both profile and token.
func (s *Store) Signup(ctx context.Context, username, name, email, password, confirmation string) error {
	form := schema.AuthForm{
		Username:             username,
		Name:                 name,
		Email:                email,
		Password:             password,
		PasswordConfirmation: confirmation,
		FormType:             schema.FormSignup,
	}
	if err := form.Validate(); err != nil {
		return s.fail(ctx, "signup", err)
	}

	s.begin()
	payload, err := s.api.Register(ctx, api.RegisterRequest{
		Username:             username,
		Name:                 name,
		Email:                email,
		Password:             password,
		PasswordConfirmation: confirmation,
	})
	if err != nil {
		return s.fail(ctx, "signup", err)
	}
	profile, err := schema.ValidateProfile(payload.User)
	if err != nil {
		return s.fail(ctx, "signup", err)
	}
	return s.commit(ctx, "signup", profile, payload.Token)
}

// Login authenticates with credentials and follows the same success path
// as Signup. Credentials are checked client-side before any network call.
func (s *Store) Login(ctx context.Context, email, password string) error {
	form := schema.AuthForm{Email: email, Password: password, FormType: schema.FormLogin}
	if err := form.Validate(); err != nil {
		return s.fail(ctx, "login", err)
	}

	s.begin()
	payload, err := s.api.Login(ctx, email, password)
	if err != nil {
		return s.fail(ctx, "login", err)
	}
	profile, err := schema.ValidateProfile(payload.User)
	if err != nil {
		return s.fail(ctx, "login", err)
	}
	return s.commit(ctx, "login", profile, payload.Token)
}

// Logout notifies the server on a best-effort basis and clears profile and
// token from memory and durable storage regardless of the network outcome.
func (s *Store) Logout(ctx context.Context) error {
	s.begin()
	token := s.Token()
	if token != "" {
		if err := s.api.Logout(ctx, token); err != nil {
			s.log.Warn(ctx, "remote logout failed, clearing local session anyway", "err", err)
		}
	}
	s.clear(ctx)
	s.mu.Lock()
	s.status = StatusCompleted
	s.mu.Unlock()
	return nil
}

// ResetStorage unconditionally clears profile and token from memory and
// durable storage. It cannot fail.
func (s *Store) ResetStorage(ctx context.Context) {
	s.clear(ctx)
}

// UpdateProfile sends the editable fields (everything except id and the
// file fields) and replaces the profile with the server's re-validated
// representation.
func (s *Store) UpdateProfile(ctx context.Context, p *schema.Profile) error {
	token := s.Token()
	if token == "" {
		return s.fail(ctx, "update profile", api.ErrNoToken)
	}

	s.begin()
	data, err := s.api.UpdateUser(ctx, token, p.ID, editableFields(p))
	if err != nil {
		return s.fail(ctx, "update profile", err)
	}
	updated, err := schema.ValidateProfile(data)
	if err != nil {
		return s.fail(ctx, "update profile", err)
	}
	return s.commit(ctx, "update profile", updated, token)
}

// UploadImage sends a local image file and merges the returned remote
// reference into the profile, re-validating the merged object before
// committing.
func (s *Store) UploadImage(ctx context.Context, file schema.LocalFile) error {
	return s.upload(ctx, "upload image", file, s.api.UploadImage, func(p *schema.Profile, ref string) {
		p.Image = schema.NewRemoteRef(ref)
	})
}

// UploadResume is UploadImage for the resume field.
func (s *Store) UploadResume(ctx context.Context, file schema.LocalFile) error {
	return s.upload(ctx, "upload resume", file, s.api.UploadResume, func(p *schema.Profile, ref string) {
		p.Resume = schema.NewRemoteRef(ref)
	})
}

type uploadCall func(ctx context.Context, token string, userID int64, file schema.LocalFile) (string, error)

func (s *Store) upload(ctx context.Context, op string, file schema.LocalFile, call uploadCall, merge func(*schema.Profile, string)) error {
	s.mu.Lock()
	token := s.token
	profile := s.profile.Clone()
	s.mu.Unlock()

	if token == "" {
		return s.fail(ctx, op, api.ErrNoToken)
	}
	if profile == nil {
		return s.fail(ctx, op, api.ErrNoProfile)
	}

	s.begin()
	ref, err := call(ctx, token, profile.ID, file)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	merge(profile, ref)

	// round-trip the merged object through the validator before committing
	raw, err := json.Marshal(profile)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	merged, err := schema.ValidateProfile(raw)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	return s.commit(ctx, op, merged, token)
}

func (s *Store) begin() {
	s.mu.Lock()
	s.status = StatusPending
	s.lastErr = ""
	s.mu.Unlock()
}

// commit persists the new state first, then replaces the in-memory copy,
// so the durable slot and memory never diverge.
func (s *Store) commit(ctx context.Context, op string, profile *schema.Profile, token string) error {
	raw, err := json.Marshal(persistedState{Profile: profile, Token: token})
	if err != nil {
		return s.fail(ctx, op, err)
	}
	if err := s.repo.Set(ctx, StorageKey, raw); err != nil {
		return s.fail(ctx, op, err)
	}

	s.mu.Lock()
	s.profile = profile
	s.token = token
	s.status = StatusCompleted
	s.mu.Unlock()

	s.log.Info(ctx, op+" completed", "user_id", profile.ID)
	return nil
}

func (s *Store) fail(ctx context.Context, op string, err error) error {
	s.mu.Lock()
	s.status = StatusFailed
	s.lastErr = err.Error()
	s.mu.Unlock()

	s.log.Error(ctx, op+" failed", "err", err)
	return err
}

func (s *Store) clear(ctx context.Context) {
	if err := s.repo.Delete(ctx, StorageKey); err != nil {
		s.log.Error(ctx, "failed to clear persisted session", "err", err)
	}
	s.mu.Lock()
	s.profile = nil
	s.token = ""
	s.mu.Unlock()
}

// editableFields builds the form-urlencoded body of an update call. Unset
// optional fields are sent as empty strings, matching the server contract.
func editableFields(p *schema.Profile) map[string][]string {
	fields := map[string]string{
		"username": p.Username,
		"name":     p.Name,
		"email":    p.Email,
		"title":    strOrEmpty(p.Title),
		"about":    strOrEmpty(p.About),
		"location": strOrEmpty(p.Location),
		"address":  strOrEmpty(p.Address),
	}
	if p.Age != nil {
		fields["age"] = strconv.FormatInt(p.Age.Int64(), 10)
	} else {
		fields["age"] = ""
	}
	values := make(map[string][]string, len(fields))
	for k, v := range fields {
		values[k] = []string{v}
	}
	return values
}

func strOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
