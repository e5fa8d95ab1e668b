package session

import (
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/stretchr/testify/require"

	"petmanager/internal/common"
	"petmanager/internal/logging"
	"petmanager/internal/models"
)

func newTestStore(t *testing.T) (*Store, *MemoryStorage, EventBus.Bus) {
	t.Helper()
	storage := NewMemoryStorage()
	bus := EventBus.New()
	log := logging.NewTextLogger(io.Discard, slog.LevelError)
	return NewStore(storage, bus, log), storage, bus
}

func TestStoreFreshIsLoggedOut(t *testing.T) {
	s, _, _ := newTestStore(t)

	st := s.State()
	require.Nil(t, st.User)
	require.False(t, st.IsAuthenticated)
	require.Equal(t, "", s.Token())
	require.Equal(t, "", s.RefreshToken())
}

func TestStoreSetUserPersistsAndPublishes(t *testing.T) {
	s, storage, bus := newTestStore(t)

	var got []State
	require.NoError(t, bus.Subscribe(TopicChanged, func(st State) { got = append(got, st) }))

	s.SetUser(models.User{Username: "ana", Token: "tok", RefreshToken: "ref"})

	st := s.State()
	require.True(t, st.IsAuthenticated)
	require.Equal(t, "ana", st.User.Username)
	require.Equal(t, "tok", s.Token())
	require.Equal(t, "ref", s.RefreshToken())

	data, err := storage.Load(common.SessionStorageKey)
	require.NoError(t, err)
	require.Contains(t, string(data), `"ana"`)

	require.Len(t, got, 1)
	require.True(t, got[0].IsAuthenticated)
}

func TestStoreResetClearsSlot(t *testing.T) {
	s, storage, _ := newTestStore(t)
	s.SetUser(models.User{Username: "ana", Token: "tok"})

	s.Reset()

	require.False(t, s.IsAuthenticated())
	require.Equal(t, "", s.Token())
	_, err := storage.Load(common.SessionStorageKey)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestStoreUpdateTokenKeepsUsernameAndRefresh(t *testing.T) {
	s, _, _ := newTestStore(t)
	s.SetUser(models.User{Username: "ana", Token: "old", RefreshToken: "ref"})

	s.UpdateToken("new", "")

	st := s.State()
	require.Equal(t, "ana", st.User.Username)
	require.Equal(t, "new", st.User.Token)
	require.Equal(t, "ref", st.User.RefreshToken)

	s.UpdateToken("newer", "ref2")
	require.Equal(t, "ref2", s.RefreshToken())
}

func TestStoreUpdateTokenWithoutSessionIsNoop(t *testing.T) {
	s, storage, _ := newTestStore(t)

	s.UpdateToken("tok", "ref")

	require.False(t, s.IsAuthenticated())
	_, err := storage.Load(common.SessionStorageKey)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestStoreRestoresPersistedSession(t *testing.T) {
	storage := NewMemoryStorage()
	require.NoError(t, storage.Save(common.SessionStorageKey,
		[]byte(`{"username":"ana","token":"tok","refreshToken":"ref"}`)))

	log := logging.NewTextLogger(io.Discard, slog.LevelError)
	s := NewStore(storage, EventBus.New(), log)

	require.True(t, s.IsAuthenticated())
	require.Equal(t, "tok", s.Token())
}

func TestStoreDeletesMalformedSlot(t *testing.T) {
	storage := NewMemoryStorage()
	require.NoError(t, storage.Save(common.SessionStorageKey, []byte(`{not json`)))

	log := logging.NewTextLogger(io.Discard, slog.LevelError)
	s := NewStore(storage, EventBus.New(), log)

	require.False(t, s.IsAuthenticated())
	_, err := storage.Load(common.SessionStorageKey)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestStoreTokenFallsBackToSlot(t *testing.T) {
	s, storage, bus := newTestStore(t)

	var published int
	require.NoError(t, bus.Subscribe(TopicChanged, func(State) { published++ }))

	// Slot written after the store started, as if by another process.
	require.NoError(t, storage.Save(common.SessionStorageKey,
		[]byte(`{"username":"ana","token":"tok"}`)))

	require.Equal(t, "tok", s.Token())
	require.True(t, s.IsAuthenticated())
	require.Equal(t, 1, published)

	// Second read hits memory, no extra publish.
	require.Equal(t, "tok", s.Token())
	require.Equal(t, 1, published)
}

func TestStoreTokenExpiry(t *testing.T) {
	s, _, _ := newTestStore(t)

	require.True(t, s.TokenExpiry().IsZero())

	s.SetUser(models.User{Username: "ana", Token: "opaque-token"})
	require.True(t, s.TokenExpiry().IsZero())

	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	s.SetUser(models.User{Username: "ana", Token: unsignedJWT(t, exp)})
	require.Equal(t, exp.Unix(), s.TokenExpiry().Unix())
}

// unsignedJWT builds an alg=none token carrying only an exp claim.
func unsignedJWT(t *testing.T, exp time.Time) string {
	t.Helper()
	enc := func(s string) string {
		return base64.RawURLEncoding.EncodeToString([]byte(s))
	}
	header := enc(`{"alg":"none","typ":"JWT"}`)
	payload := enc(fmt.Sprintf(`{"exp":%d}`, exp.Unix()))
	return header + "." + payload + "."
}
