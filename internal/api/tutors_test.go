package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLinkPet(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/tutores/4/pets/9", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, client.LinkPet(context.Background(), 4, 9))
}

func TestUnlinkPet(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/v1/tutores/4/pets/9", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, client.UnlinkPet(context.Background(), 4, 9))
}

func TestTutorPetsBareArray(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/tutores/4/pets", r.URL.Path)
		w.Write([]byte(`[{"id":1,"nome":"Rex"},{"id":2,"nome":"Mimi"}]`))
	}))

	pets, err := client.TutorPets(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, pets, 2)
	require.Equal(t, "Mimi", pets[1].Nome)
}

func TestTutorPetsPageObject(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"content":[{"id":1,"nome":"Rex"}],"totalElements":1}`))
	}))

	pets, err := client.TutorPets(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, pets, 1)
}

func TestGetTutorNestedPets(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/tutores/4", r.URL.Path)
		w.Write([]byte(`{"id":4,"nome":"Ana","pets":[{"id":1,"nome":"Rex"}]}`))
	}))

	tutor, err := client.GetTutor(context.Background(), 4)
	require.NoError(t, err)
	require.Equal(t, "Ana", tutor.Nome)
	require.Len(t, tutor.Pets, 1)
}

func TestAvailablePetsExcludesLinked(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/pets":
			// 1 has a direct tutor id, 2 is listed under a tutor, 3 is free.
			w.Write([]byte(`{"content":[
				{"id":1,"nome":"Rex","tutorId":4},
				{"id":2,"nome":"Mimi"},
				{"id":3,"nome":"Bob"}]}`))
		case "/v1/tutores":
			w.Write([]byte(`{"content":[{"id":4,"nome":"Ana","pets":[{"id":2}]}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	pets, err := client.AvailablePets(context.Background())
	require.NoError(t, err)
	require.Len(t, pets, 1)
	require.Equal(t, int64(3), pets[0].ID)
}
