package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/require"

	"petmanager/internal/models"
)

func TestListPetsQueryAndNormalization(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/pets", r.URL.Path)
		require.Equal(t, "1", r.URL.Query().Get("page"))
		require.Equal(t, "10", r.URL.Query().Get("size"))
		require.Equal(t, "rex", r.URL.Query().Get("nome"))
		w.Write([]byte(`{"content":[{"id":1,"name":"Rex","tutorId":"4"}],"number":1,"totalPages":3,"totalElements":23}`))
	}))

	page, err := client.ListPets(context.Background(), 1, 10, " rex ")
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	require.Equal(t, "Rex", page.Content[0].Nome)
	require.Equal(t, int64(4), page.Content[0].TutorID)
	require.Equal(t, 23, page.TotalElements)
	require.Equal(t, 3, page.TotalPages)
}

func TestListPetsOmitsEmptyNameFilter(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present := r.URL.Query()["nome"]
		require.False(t, present)
		w.Write([]byte(`[]`))
	}))

	_, err := client.ListPets(context.Background(), 0, 10, "  ")
	require.NoError(t, err)
}

func TestCreatePetSendsForm(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var form models.PetForm
		require.NoError(t, sonic.ConfigDefault.NewDecoder(r.Body).Decode(&form))
		require.Equal(t, "Rex", form.Nome)
		w.Write([]byte(`{"id":9,"nome":"Rex","especie":"Cachorro"}`))
	}))

	pet, err := client.CreatePet(context.Background(), models.PetForm{Nome: "Rex", Especie: "Cachorro"})
	require.NoError(t, err)
	require.Equal(t, int64(9), pet.ID)
}

func TestDeletePet(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/v1/pets/9", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, client.DeletePet(context.Background(), 9))
}

func TestUploadPetPhotoMultipart(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/pets/9/fotos", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		// The file travels under every known field name.
		for _, field := range []string{"foto", "file", "image"} {
			files := r.MultipartForm.File[field]
			require.Len(t, files, 1, "field %s", field)
			require.Equal(t, "rex.png", files[0].Filename)
		}
		w.Write([]byte(`{"url":"https://cdn/x/rex.png"}`))
	}))

	url, err := client.UploadPetPhoto(context.Background(), 9, "rex.png", []byte("png-bytes"))
	require.NoError(t, err)
	require.Equal(t, "https://cdn/x/rex.png", url)
}

func TestUploadPhotoBareStringResponse(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`"https://cdn/x/rex.png"`))
	}))

	url, err := client.UploadPetPhoto(context.Background(), 9, "rex.png", []byte("png"))
	require.NoError(t, err)
	require.Equal(t, "https://cdn/x/rex.png", url)
}
