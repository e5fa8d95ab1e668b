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

// scanPageSize is the page size used when a full scan of a collection is
// needed (tutor lookup fallbacks, available-pets computation).
const scanPageSize = 1000

func tutorPath(id int64) string {
	return "/v1/tutores/" + strconv.FormatInt(id, 10)
}

// ListTutors fetches one page of tutors, optionally filtered by name.
func (c *Client) ListTutors(ctx context.Context, page, size int, nome string) (models.Page[models.Tutor], error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	if nome = strings.TrimSpace(nome); nome != "" {
		q.Set("nome", nome)
	}
	raw, err := c.getAny(ctx, "/v1/tutores", q)
	if err != nil {
		return models.Page[models.Tutor]{}, err
	}
	return normalize.Page(raw, page, size, normalize.Tutor), nil
}

func (c *Client) GetTutor(ctx context.Context, id int64) (models.Tutor, error) {
	raw, err := c.getAny(ctx, tutorPath(id), nil)
	if err != nil {
		return models.Tutor{}, err
	}
	return normalize.Tutor(raw), nil
}

func (c *Client) CreateTutor(ctx context.Context, form models.TutorForm) (models.Tutor, error) {
	raw, err := c.sendJSON(ctx, http.MethodPost, "/v1/tutores", form)
	if err != nil {
		return models.Tutor{}, err
	}
	return normalize.Tutor(raw), nil
}

func (c *Client) UpdateTutor(ctx context.Context, id int64, form models.TutorForm) (models.Tutor, error) {
	raw, err := c.sendJSON(ctx, http.MethodPut, tutorPath(id), form)
	if err != nil {
		return models.Tutor{}, err
	}
	return normalize.Tutor(raw), nil
}

func (c *Client) DeleteTutor(ctx context.Context, id int64) error {
	return c.deletePath(ctx, tutorPath(id))
}

// UploadTutorPhoto uploads a photo for the tutor and returns the stored URL.
func (c *Client) UploadTutorPhoto(ctx context.Context, id int64, filename string, data []byte) (string, error) {
	return c.uploadPhoto(ctx, tutorPath(id)+"/fotos", filename, data)
}

// LinkPet associates a pet with a tutor. The backend enforces the
// one-tutor-per-pet invariant: linking to a new tutor removes the pet from
// any previous one.
func (c *Client) LinkPet(ctx context.Context, tutorID, petID int64) error {
	_, err := c.sendJSON(ctx, http.MethodPost, tutorPath(tutorID)+"/pets/"+strconv.FormatInt(petID, 10), nil)
	return err
}

// UnlinkPet removes the association between a pet and a tutor.
func (c *Client) UnlinkPet(ctx context.Context, tutorID, petID int64) error {
	return c.deletePath(ctx, tutorPath(tutorID)+"/pets/"+strconv.FormatInt(petID, 10))
}

// TutorPets lists the pets associated with a tutor. The backend answers
// either with a bare array or with a page object.
func (c *Client) TutorPets(ctx context.Context, tutorID int64) ([]models.Pet, error) {
	raw, err := c.getAny(ctx, tutorPath(tutorID)+"/pets", nil)
	if err != nil {
		return nil, err
	}
	page := normalize.Page(raw, 0, scanPageSize, normalize.Pet)
	return page.Content, nil
}

// AvailablePets returns pets not linked to any tutor. The backend has no
// dedicated endpoint for this, so it is computed from a full scan of pets
// and tutors: a pet is taken when it carries no tutor reference and no
// tutor lists it.
func (c *Client) AvailablePets(ctx context.Context) ([]models.Pet, error) {
	pets, err := c.ListPets(ctx, 0, scanPageSize, "")
	if err != nil {
		return nil, err
	}
	tutors, err := c.ListTutors(ctx, 0, scanPageSize, "")
	if err != nil {
		return nil, err
	}

	linked := make(map[int64]struct{})
	for _, tutor := range tutors.Content {
		for _, pet := range tutor.Pets {
			if pet.ID != 0 {
				linked[pet.ID] = struct{}{}
			}
		}
	}

	available := make([]models.Pet, 0, len(pets.Content))
	for _, pet := range pets.Content {
		if pet.TutorID != 0 {
			continue
		}
		if _, ok := linked[pet.ID]; ok {
			continue
		}
		available = append(available, pet)
	}
	return available, nil
}
