package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aimandesu/portfolio-mobile/internal/api"
	"github.com/aimandesu/portfolio-mobile/internal/schema"
)

// fakeClient counts calls so tests can assert that client-side failures
// issue no network request.
type fakeClient struct {
	calls int

	registerPayload *api.AuthPayload
	registerErr     error

	loginPayload *api.AuthPayload
	loginErr     error

	logoutErr error

	updateData json.RawMessage
	updateErr  error

	uploadRef string
	uploadErr error
}

func (f *fakeClient) Register(_ context.Context, _ api.RegisterRequest) (*api.AuthPayload, error) {
	f.calls++
	return f.registerPayload, f.registerErr
}

func (f *fakeClient) Login(_ context.Context, _, _ string) (*api.AuthPayload, error) {
	f.calls++
	return f.loginPayload, f.loginErr
}

func (f *fakeClient) Logout(_ context.Context, _ string) error {
	f.calls++
	return f.logoutErr
}

func (f *fakeClient) UpdateUser(_ context.Context, _ string, _ int64, _ url.Values) (json.RawMessage, error) {
	f.calls++
	return f.updateData, f.updateErr
}

func (f *fakeClient) UploadImage(_ context.Context, _ string, _ int64, _ schema.LocalFile) (string, error) {
	f.calls++
	return f.uploadRef, f.uploadErr
}

func (f *fakeClient) UploadResume(_ context.Context, _ string, _ int64, _ schema.LocalFile) (string, error) {
	f.calls++
	return f.uploadRef, f.uploadErr
}

func (f *fakeClient) ListEducation(_ context.Context, _ int64) (json.RawMessage, error) {
	f.calls++
	return nil, nil
}

func (f *fakeClient) AddEducation(_ context.Context, _ string, _ api.EducationForm) (json.RawMessage, error) {
	f.calls++
	return nil, nil
}

func (f *fakeClient) DeleteEducation(_ context.Context, _ string, _ int64) error {
	f.calls++
	return nil
}

// memRepo is an in-memory storage.Repository.
type memRepo struct {
	data   map[string][]byte
	setErr error
}

func newMemRepo() *memRepo {
	return &memRepo{data: map[string][]byte{}}
}

func (m *memRepo) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	return v, nil
}

func (m *memRepo) Set(_ context.Context, key string, value []byte) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func (m *memRepo) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func userJSON(id int64) json.RawMessage {
	return json.RawMessage(`{"id": ` + jsonInt(id) + `, "username": "aimandesu", "name": "Aiman", "email": "a@example.com"}`)
}

func jsonInt(n int64) string {
	b, _ := json.Marshal(n)
	return string(b)
}

func TestSignup_SetsProfileAndTokenAndPersists(t *testing.T) {
	f := &fakeClient{registerPayload: &api.AuthPayload{User: userJSON(7), Token: "tok-7"}}
	repo := newMemRepo()
	s := NewStore(f, repo, nil)

	err := s.Signup(context.Background(), "aimandesu", "Aiman", "a@example.com", "longenough", "longenough")
	require.NoError(t, err)

	snap := s.Snapshot()
	require.NotNil(t, snap.Profile)
	assert.Equal(t, int64(7), snap.Profile.ID)
	assert.Equal(t, "tok-7", snap.Token)
	assert.Equal(t, StatusCompleted, snap.Status)

	var persisted persistedState
	require.NoError(t, json.Unmarshal(repo.data[StorageKey], &persisted))
	assert.Equal(t, "tok-7", persisted.Token)
	assert.Equal(t, int64(7), persisted.Profile.ID)
}

func TestSignup_ClientSideValidationIssuesNoRequest(t *testing.T) {
	f := &fakeClient{}
	s := NewStore(f, newMemRepo(), nil)

	err := s.Signup(context.Background(), "short", "Aiman", "a@example.com", "longenough", "longenough")

	var ve *schema.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Zero(t, f.calls)
	assert.Equal(t, StatusFailed, s.Snapshot().Status)
}

func TestLogin_ShortPasswordFailsBeforeNetwork(t *testing.T) {
	f := &fakeClient{}
	s := NewStore(f, newMemRepo(), nil)

	err := s.Login(context.Background(), "a@example.com", "short77")

	var ve *schema.ValidationError
	require.ErrorAs(t, err, &ve)
	require.NotNil(t, ve.FieldFor("password"))
	assert.Zero(t, f.calls)
}

func TestLogin_ServerError(t *testing.T) {
	f := &fakeClient{loginErr: &api.APIError{Status: 200, Message: "invalid credentials"}}
	s := NewStore(f, newMemRepo(), nil)

	err := s.Login(context.Background(), "a@example.com", "wrongpass1")

	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "invalid credentials", apiErr.Message)

	snap := s.Snapshot()
	assert.Nil(t, snap.Profile)
	assert.Empty(t, snap.Token)
	assert.Equal(t, StatusFailed, snap.Status)
	assert.Equal(t, "invalid credentials", snap.Err)
}

func TestLogin_NonConformingPayload(t *testing.T) {
	f := &fakeClient{loginPayload: &api.AuthPayload{User: json.RawMessage(`{"username": "no-id"}`), Token: "tok"}}
	s := NewStore(f, newMemRepo(), nil)

	err := s.Login(context.Background(), "a@example.com", "longenough")

	var ve *schema.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Empty(t, s.Token())
}

func loggedInStore(t *testing.T, f *fakeClient, repo *memRepo) *Store {
	t.Helper()
	f.loginPayload = &api.AuthPayload{User: userJSON(7), Token: "tok-7"}
	s := NewStore(f, repo, nil)
	require.NoError(t, s.Login(context.Background(), "a@example.com", "longenough"))
	f.calls = 0
	return s
}

func TestLogout_ClearsStateOnRemoteSuccess(t *testing.T) {
	f := &fakeClient{}
	repo := newMemRepo()
	s := loggedInStore(t, f, repo)

	require.NoError(t, s.Logout(context.Background()))

	snap := s.Snapshot()
	assert.Nil(t, snap.Profile)
	assert.Empty(t, snap.Token)
	assert.NotContains(t, repo.data, StorageKey)
}

func TestLogout_ClearsStateEvenWhenRemoteFails(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"server failure", &api.APIError{Status: 500, Message: "boom"}},
		{"unreachable", &api.NetworkError{Err: errors.New("connection refused")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeClient{}
			repo := newMemRepo()
			s := loggedInStore(t, f, repo)
			f.logoutErr = tt.err

			require.NoError(t, s.Logout(context.Background()))

			snap := s.Snapshot()
			assert.Nil(t, snap.Profile)
			assert.Empty(t, snap.Token)
			assert.NotContains(t, repo.data, StorageKey)
		})
	}
}

func TestUpdateProfile_NoTokenFailsWithoutNetwork(t *testing.T) {
	f := &fakeClient{}
	s := NewStore(f, newMemRepo(), nil)

	err := s.UpdateProfile(context.Background(), &schema.Profile{ID: 1})

	require.ErrorIs(t, err, api.ErrNoToken)
	assert.Zero(t, f.calls)
}

func TestUpdateProfile_ReplacesWithServerRepresentation(t *testing.T) {
	f := &fakeClient{}
	repo := newMemRepo()
	s := loggedInStore(t, f, repo)

	f.updateData = json.RawMessage(`{"id": 7, "username": "aimandesu", "name": "Aiman D.", "email": "a@example.com", "location": "KL"}`)

	p := s.Profile()
	p.Name = "client-side name"
	require.NoError(t, s.UpdateProfile(context.Background(), p))

	got := s.Profile()
	assert.Equal(t, "Aiman D.", got.Name)
	require.NotNil(t, got.Location)
	assert.Equal(t, "KL", *got.Location)

	var persisted persistedState
	require.NoError(t, json.Unmarshal(repo.data[StorageKey], &persisted))
	assert.Equal(t, "Aiman D.", persisted.Profile.Name)
}

func TestUploadImage_MergesRemoteReference(t *testing.T) {
	f := &fakeClient{}
	s := loggedInStore(t, f, newMemRepo())
	f.uploadRef = "users/7/avatar.png"

	err := s.UploadImage(context.Background(), schema.LocalFile{URI: "file:///tmp/a.png", MimeType: "image/png", Name: "a.png"})
	require.NoError(t, err)

	p := s.Profile()
	require.NotNil(t, p.Image)
	assert.False(t, p.Image.IsLocal())
	assert.Equal(t, "users/7/avatar.png", p.Image.Remote())
}

func TestUploadResume_RequiresProfileAndToken(t *testing.T) {
	f := &fakeClient{}
	s := NewStore(f, newMemRepo(), nil)

	err := s.UploadResume(context.Background(), schema.LocalFile{Name: "cv.pdf"})
	require.ErrorIs(t, err, api.ErrNoToken)
	assert.Zero(t, f.calls)
}

func TestResetStorage(t *testing.T) {
	f := &fakeClient{}
	repo := newMemRepo()
	s := loggedInStore(t, f, repo)

	s.ResetStorage(context.Background())

	snap := s.Snapshot()
	assert.Nil(t, snap.Profile)
	assert.Empty(t, snap.Token)
	assert.NotContains(t, repo.data, StorageKey)
	assert.Zero(t, f.calls)
}

func TestCommit_PersistFailureLeavesMemoryUntouched(t *testing.T) {
	f := &fakeClient{loginPayload: &api.AuthPayload{User: userJSON(7), Token: "tok-7"}}
	repo := newMemRepo()
	repo.setErr = errors.New("disk full")
	s := NewStore(f, repo, nil)

	err := s.Login(context.Background(), "a@example.com", "longenough")
	require.Error(t, err)

	snap := s.Snapshot()
	assert.Nil(t, snap.Profile)
	assert.Empty(t, snap.Token)
	assert.Equal(t, StatusFailed, snap.Status)
}

func TestHydrate_RestoresPersistedSession(t *testing.T) {
	repo := newMemRepo()
	raw, err := json.Marshal(persistedState{
		Profile: &schema.Profile{ID: 7, Username: "aimandesu", Name: "Aiman", Email: "a@example.com"},
		Token:   "tok-7",
	})
	require.NoError(t, err)
	repo.data[StorageKey] = raw

	s := NewStore(&fakeClient{}, repo, nil)
	assert.False(t, s.Hydrated())

	require.NoError(t, s.Hydrate(context.Background()))

	select {
	case <-s.Ready():
	default:
		t.Fatal("Ready channel not closed after hydration")
	}
	assert.True(t, s.Hydrated())
	assert.Equal(t, "tok-7", s.Token())
	require.NotNil(t, s.Profile())
	assert.Equal(t, int64(7), s.Profile().ID)
}

func TestHydrate_NoPriorSessionStillBecomesReady(t *testing.T) {
	s := NewStore(&fakeClient{}, newMemRepo(), nil)

	require.NoError(t, s.Hydrate(context.Background()))

	assert.True(t, s.Hydrated())
	assert.Empty(t, s.Token())
	assert.Nil(t, s.Profile())
}

func TestHydrate_CorruptSlotMarksReadyAndStaysLoggedOut(t *testing.T) {
	repo := newMemRepo()
	repo.data[StorageKey] = []byte("{not-json")

	s := NewStore(&fakeClient{}, repo, nil)
	require.Error(t, s.Hydrate(context.Background()))

	assert.True(t, s.Hydrated())
	assert.Empty(t, s.Token())
}

func TestSnapshot_ReturnsCopies(t *testing.T) {
	f := &fakeClient{}
	s := loggedInStore(t, f, newMemRepo())

	snap := s.Snapshot()
	snap.Profile.Name = "mutated"

	assert.Equal(t, "Aiman", s.Profile().Name)
}
