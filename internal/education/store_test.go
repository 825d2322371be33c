package education

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aimandesu/portfolio-mobile/internal/api"
	"github.com/aimandesu/portfolio-mobile/internal/schema"
)

type fakeClient struct {
	api.Client // panic on anything not overridden

	listData json.RawMessage
	listErr  error
	listed   int

	addData json.RawMessage
	addErr  error
	added   int

	deleteErr error
	deleted   []int64
}

func (f *fakeClient) ListEducation(_ context.Context, _ int64) (json.RawMessage, error) {
	f.listed++
	return f.listData, f.listErr
}

func (f *fakeClient) AddEducation(_ context.Context, _ string, _ api.EducationForm) (json.RawMessage, error) {
	f.added++
	return f.addData, f.addErr
}

func (f *fakeClient) DeleteEducation(_ context.Context, _ string, id int64) error {
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}

type fakeTokens struct {
	token string
}

func (f *fakeTokens) Token() string { return f.token }

func TestList_ReplacesEntriesWholesale(t *testing.T) {
	f := &fakeClient{listData: json.RawMessage(`[
		{"id": 1, "location": "SMK Taman", "level": "spm"},
		{"id": 2, "location": "UKM", "level": "degree"}
	]`)}
	s := NewStore(f, &fakeTokens{}, nil)

	require.NoError(t, s.List(context.Background(), 42))

	st := s.State()
	assert.Equal(t, StatusCompleted, st.Status)
	require.Len(t, st.Entries, 2)
	assert.Equal(t, schema.LevelDegree, st.Entries[1].Level)
}

func TestList_InvalidElementPreservesPreviousEntries(t *testing.T) {
	f := &fakeClient{listData: json.RawMessage(`[{"id": 1, "location": "SMK Taman", "level": "spm"}]`)}
	s := NewStore(f, &fakeTokens{}, nil)
	require.NoError(t, s.List(context.Background(), 42))

	// second fetch returns an element missing its location
	f.listData = json.RawMessage(`[{"id": 2, "level": "master"}]`)
	err := s.List(context.Background(), 42)

	var ve *schema.ValidationError
	require.ErrorAs(t, err, &ve)

	st := s.State()
	assert.Equal(t, StatusError, st.Status)
	assert.NotEmpty(t, st.Err)
	require.Len(t, st.Entries, 1)
	assert.Equal(t, "SMK Taman", st.Entries[0].Location)
}

func TestList_APIFailureSetsErrorStatus(t *testing.T) {
	f := &fakeClient{listErr: &api.APIError{Status: 500, Message: "boom"}}
	s := NewStore(f, &fakeTokens{}, nil)

	err := s.List(context.Background(), 42)
	require.Error(t, err)
	assert.Equal(t, StatusError, s.State().Status)
	assert.Equal(t, "boom", s.State().Err)
}

func TestAdd_AppendsReturnedEntry(t *testing.T) {
	f := &fakeClient{
		listData: json.RawMessage(`[{"id": 1, "location": "SMK Taman", "level": "spm"}]`),
		addData:  json.RawMessage(`{"id": 9, "location": "UM", "level": "master"}`),
	}
	s := NewStore(f, &fakeTokens{token: "tok"}, nil)
	require.NoError(t, s.List(context.Background(), 42))

	require.NoError(t, s.Add(context.Background(), schema.EducationEntry{Location: "UM", Level: schema.LevelMaster}))

	st := s.State()
	require.Len(t, st.Entries, 2)
	require.NotNil(t, st.Entries[1].ID)
	assert.Equal(t, int64(9), *st.Entries[1].ID)
	assert.Equal(t, 1, f.added)
}

func TestAdd_RequiresToken(t *testing.T) {
	f := &fakeClient{}
	s := NewStore(f, &fakeTokens{}, nil)

	err := s.Add(context.Background(), schema.EducationEntry{Location: "UM", Level: schema.LevelMaster})
	require.ErrorIs(t, err, api.ErrNoToken)
	assert.Zero(t, f.added)
}

func TestRemove_Idempotent(t *testing.T) {
	f := &fakeClient{listData: json.RawMessage(`[
		{"id": 1, "location": "SMK Taman", "level": "spm"},
		{"id": 2, "location": "UKM", "level": "degree"}
	]`)}
	s := NewStore(f, &fakeTokens{token: "tok"}, nil)
	require.NoError(t, s.List(context.Background(), 42))

	require.NoError(t, s.Remove(context.Background(), 2))
	first := s.State().Entries

	// removing the same id again is a no-op success
	require.NoError(t, s.Remove(context.Background(), 2))
	second := s.State().Entries

	assert.Equal(t, first, second)
	require.Len(t, second, 1)
	assert.Equal(t, int64(1), *second[0].ID)
}

func TestRemove_RequiresToken(t *testing.T) {
	f := &fakeClient{}
	s := NewStore(f, &fakeTokens{}, nil)

	err := s.Remove(context.Background(), 1)
	require.ErrorIs(t, err, api.ErrNoToken)
	assert.Empty(t, f.deleted)
}

func TestRemove_APIFailureKeepsEntries(t *testing.T) {
	f := &fakeClient{listData: json.RawMessage(`[{"id": 1, "location": "SMK Taman", "level": "spm"}]`)}
	s := NewStore(f, &fakeTokens{token: "tok"}, nil)
	require.NoError(t, s.List(context.Background(), 42))

	f.deleteErr = &api.NetworkError{}
	require.Error(t, s.Remove(context.Background(), 1))

	st := s.State()
	assert.Equal(t, StatusError, st.Status)
	require.Len(t, st.Entries, 1)
}
