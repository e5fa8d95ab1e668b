package facade

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"petmanager/internal/models"
)

func TestPetsLoadPublishesPageAndPagination(t *testing.T) {
	client, _, bus := newEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"content":[{"id":1,"nome":"Rex"},{"id":2,"nome":"Mimi"}],"number":0,"totalPages":3,"totalElements":23}`))
	}))
	pets := NewPets(client, bus, testLogger())

	var snapshots []PetsState
	require.NoError(t, pets.Subscribe(func(s PetsState) { snapshots = append(snapshots, s) }))

	pets.Load(context.Background(), 0, 10, "")

	st := pets.State()
	require.Len(t, st.Pets, 2)
	require.False(t, st.Loading)
	require.Empty(t, st.Err)
	require.Equal(t, 3, st.Pagination.TotalPages)
	require.Equal(t, 23, st.Pagination.TotalElements)

	require.Len(t, snapshots, 2)
	require.True(t, snapshots[0].Loading)
	require.False(t, snapshots[1].Loading)
}

func TestPetsLoadFailurePublishesError(t *testing.T) {
	client, _, bus := newEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	pets := NewPets(client, bus, testLogger())

	pets.Load(context.Background(), 0, 10, "")

	st := pets.State()
	require.False(t, st.Loading)
	require.Equal(t, "Erro ao carregar pets", st.Err)
	require.Empty(t, st.Pets)
}

func TestPetsGetResolvesEmbeddedTutor(t *testing.T) {
	client, _, bus := newEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":1,"nome":"Rex","tutor":{"id":4,"nome":"Ana"}}`))
	}))
	pets := NewPets(client, bus, testLogger())

	pet := pets.Get(context.Background(), 1)
	require.NotNil(t, pet)

	st := pets.State()
	require.Equal(t, "Rex", st.Current.Nome)
	require.NotNil(t, st.CurrentTutor)
	require.Equal(t, "Ana", st.CurrentTutor.Nome)
}

func TestPetsGetResolvesTutorByID(t *testing.T) {
	client, _, bus := newEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/pets/1":
			w.Write([]byte(`{"id":1,"nome":"Rex","tutorId":4}`))
		case "/v1/tutores/4":
			w.Write([]byte(`{"id":4,"nome":"Ana"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	pets := NewPets(client, bus, testLogger())

	require.NotNil(t, pets.Get(context.Background(), 1))
	require.Equal(t, "Ana", pets.State().CurrentTutor.Nome)
}

func TestPetsGetResolvesTutorByScan(t *testing.T) {
	client, _, bus := newEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/pets/1":
			w.Write([]byte(`{"id":1,"nome":"Rex"}`))
		case "/v1/tutores":
			w.Write([]byte(`{"content":[{"id":4,"nome":"Ana","pets":[{"id":1}]}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	pets := NewPets(client, bus, testLogger())

	require.NotNil(t, pets.Get(context.Background(), 1))
	require.Equal(t, "Ana", pets.State().CurrentTutor.Nome)
}

func TestPetsGetNotFound(t *testing.T) {
	client, _, bus := newEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Pet não encontrado"}`))
	}))
	pets := NewPets(client, bus, testLogger())

	require.Nil(t, pets.Get(context.Background(), 99))
	require.Equal(t, "Pet não encontrado", pets.State().Err)
}

func TestPetsCreatePrepends(t *testing.T) {
	first := true
	client, _, bus := newEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if first {
			first = false
			w.Write([]byte(`{"content":[{"id":1,"nome":"Rex"}]}`))
			return
		}
		w.Write([]byte(`{"id":2,"nome":"Mimi"}`))
	}))
	pets := NewPets(client, bus, testLogger())
	pets.Load(context.Background(), 0, 10, "")

	created := pets.Create(context.Background(), models.PetForm{Nome: "Mimi"})
	require.NotNil(t, created)

	st := pets.State()
	require.Len(t, st.Pets, 2)
	require.Equal(t, "Mimi", st.Pets[0].Nome)
	require.Equal(t, "Rex", st.Pets[1].Nome)
}

func TestPetsDeleteDropsFromListing(t *testing.T) {
	client, _, bus := newEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.Write([]byte(`{"content":[{"id":1,"nome":"Rex"},{"id":2,"nome":"Mimi"}]}`))
	}))
	pets := NewPets(client, bus, testLogger())
	pets.Load(context.Background(), 0, 10, "")

	require.True(t, pets.Delete(context.Background(), 1))

	st := pets.State()
	require.Len(t, st.Pets, 1)
	require.Equal(t, int64(2), st.Pets[0].ID)
}

func TestPetsUploadPhotoPatchesURL(t *testing.T) {
	client, _, bus := newEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost:
			w.Write([]byte(`{"url":"https://cdn/rex.png"}`))
		case r.URL.Path == "/v1/pets/1":
			w.Write([]byte(`{"id":1,"nome":"Rex"}`))
		default:
			w.Write([]byte(`{"content":[{"id":1,"nome":"Rex"}]}`))
		}
	}))
	pets := NewPets(client, bus, testLogger())
	pets.Load(context.Background(), 0, 10, "")
	pets.Get(context.Background(), 1)

	url := pets.UploadPhoto(context.Background(), 1, "rex.png", []byte("png"))
	require.Equal(t, "https://cdn/rex.png", url)

	st := pets.State()
	require.Equal(t, "https://cdn/rex.png", st.Pets[0].URLFoto)
	require.Equal(t, "https://cdn/rex.png", st.Current.URLFoto)
}

func TestPetsUploadPhotoFailureKeepsState(t *testing.T) {
	client, _, bus := newEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	pets := NewPets(client, bus, testLogger())

	require.Equal(t, "", pets.UploadPhoto(context.Background(), 1, "rex.png", []byte("png")))
	require.Empty(t, pets.State().Err)
}

func TestPetsClearCurrent(t *testing.T) {
	client, _, bus := newEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":1,"nome":"Rex","tutor":{"id":4,"nome":"Ana"}}`))
	}))
	pets := NewPets(client, bus, testLogger())
	pets.Get(context.Background(), 1)
	require.NotNil(t, pets.State().Current)

	pets.ClearCurrent()
	st := pets.State()
	require.Nil(t, st.Current)
	require.Nil(t, st.CurrentTutor)
}
