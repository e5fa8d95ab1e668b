package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"petmanager/internal/models"
	"petmanager/internal/normalize"
)

func petPath(id int64) string {
	return "/v1/pets/" + strconv.FormatInt(id, 10)
}

// ListPets fetches one page of pets, optionally filtered by name.
func (c *Client) ListPets(ctx context.Context, page, size int, nome string) (models.Page[models.Pet], error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	if nome = strings.TrimSpace(nome); nome != "" {
		q.Set("nome", nome)
	}
	raw, err := c.getAny(ctx, "/v1/pets", q)
	if err != nil {
		return models.Page[models.Pet]{}, err
	}
	return normalize.Page(raw, page, size, normalize.Pet), nil
}

func (c *Client) GetPet(ctx context.Context, id int64) (models.Pet, error) {
	raw, err := c.getAny(ctx, petPath(id), nil)
	if err != nil {
		return models.Pet{}, err
	}
	return normalize.Pet(raw), nil
}

func (c *Client) CreatePet(ctx context.Context, form models.PetForm) (models.Pet, error) {
	raw, err := c.sendJSON(ctx, http.MethodPost, "/v1/pets", form)
	if err != nil {
		return models.Pet{}, err
	}
	return normalize.Pet(raw), nil
}

func (c *Client) UpdatePet(ctx context.Context, id int64, form models.PetForm) (models.Pet, error) {
	raw, err := c.sendJSON(ctx, http.MethodPut, petPath(id), form)
	if err != nil {
		return models.Pet{}, err
	}
	return normalize.Pet(raw), nil
}

func (c *Client) DeletePet(ctx context.Context, id int64) error {
	return c.deletePath(ctx, petPath(id))
}

// UploadPetPhoto uploads a photo for the pet and returns the stored URL
// (possibly "" when the backend response carried none).
func (c *Client) UploadPetPhoto(ctx context.Context, id int64, filename string, data []byte) (string, error) {
	return c.uploadPhoto(ctx, petPath(id)+"/fotos", filename, data)
}
