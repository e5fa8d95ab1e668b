package facade

import (
	"context"

	"github.com/asaskevich/EventBus"

	"petmanager/internal/api"
	"petmanager/internal/logging"
	"petmanager/internal/models"
)

// TutorsState is the published tutor-listing state.
type TutorsState struct {
	Tutors     []models.Tutor
	Current    *models.Tutor
	TutorPets  []models.Pet
	Loading    bool
	Err        string
	Pagination Pagination
}

type Tutors struct {
	base   base[TutorsState]
	client *api.Client
	log    logging.Logger
}

func NewTutors(client *api.Client, bus EventBus.Bus, log logging.Logger) *Tutors {
	return &Tutors{
		base:   base[TutorsState]{bus: bus, topic: TopicTutors},
		client: client,
		log:    log,
	}
}

func (t *Tutors) State() TutorsState { return t.base.snapshot() }

func (t *Tutors) Subscribe(fn func(TutorsState)) error   { return t.base.subscribe(fn) }
func (t *Tutors) Unsubscribe(fn func(TutorsState)) error { return t.base.unsubscribe(fn) }

// Load fetches one page of tutors, optionally filtered by name.
func (t *Tutors) Load(ctx context.Context, page, size int, nome string) {
	t.base.update(func(s *TutorsState) {
		s.Loading = true
		s.Err = ""
	})

	result, err := t.client.ListTutors(ctx, page, size, nome)
	if err != nil {
		t.log.Error(ctx, "loading tutors failed", "error", err)
		t.base.update(func(s *TutorsState) {
			s.Loading = false
			s.Err = serverMessage(err, "Erro ao carregar tutores")
		})
		return
	}

	t.base.update(func(s *TutorsState) {
		s.Tutors = result.Content
		s.Loading = false
		s.Pagination = Pagination{
			Page:          result.Number,
			Size:          result.Size,
			TotalPages:    result.TotalPages,
			TotalElements: result.TotalElements,
		}
	})
}

// Get loads one tutor; when the backend omitted the nested pet list, the
// dedicated association endpoint is consulted as a fallback.
func (t *Tutors) Get(ctx context.Context, id int64) *models.Tutor {
	t.base.update(func(s *TutorsState) {
		s.Loading = true
		s.Err = ""
	})

	tutor, err := t.client.GetTutor(ctx, id)
	if err != nil {
		t.log.Error(ctx, "loading tutor failed", "id", id, "error", err)
		t.base.update(func(s *TutorsState) {
			s.Loading = false
			s.Err = serverMessage(err, "Erro ao carregar tutor")
		})
		return nil
	}

	pets := tutor.Pets
	if pets == nil {
		if fetched, err := t.client.TutorPets(ctx, id); err == nil {
			pets = fetched
		} else {
			t.log.Warn(ctx, "loading tutor's pets failed", "id", id, "error", err)
		}
	}

	t.base.update(func(s *TutorsState) {
		s.Current = &tutor
		s.TutorPets = pets
		s.Loading = false
	})
	return &tutor
}

// Create registers a new tutor and prepends it to the current listing.
func (t *Tutors) Create(ctx context.Context, form models.TutorForm) *models.Tutor {
	t.base.update(func(s *TutorsState) {
		s.Loading = true
		s.Err = ""
	})

	tutor, err := t.client.CreateTutor(ctx, form)
	if err != nil {
		t.log.Error(ctx, "creating tutor failed", "error", err)
		t.base.update(func(s *TutorsState) {
			s.Loading = false
			s.Err = serverMessage(err, "Erro ao criar tutor")
		})
		return nil
	}

	t.base.update(func(s *TutorsState) {
		s.Tutors = append([]models.Tutor{tutor}, s.Tutors...)
		s.Loading = false
	})
	return &tutor
}

// Update saves changes to a tutor and replaces it in the listing.
func (t *Tutors) Update(ctx context.Context, id int64, form models.TutorForm) *models.Tutor {
	t.base.update(func(s *TutorsState) {
		s.Loading = true
		s.Err = ""
	})

	tutor, err := t.client.UpdateTutor(ctx, id, form)
	if err != nil {
		t.log.Error(ctx, "updating tutor failed", "id", id, "error", err)
		t.base.update(func(s *TutorsState) {
			s.Loading = false
			s.Err = serverMessage(err, "Erro ao atualizar tutor")
		})
		return nil
	}

	t.base.update(func(s *TutorsState) {
		for i := range s.Tutors {
			if s.Tutors[i].ID == id {
				s.Tutors[i] = tutor
			}
		}
		s.Current = &tutor
		s.Loading = false
	})
	return &tutor
}

// Delete removes a tutor and drops it from the listing.
func (t *Tutors) Delete(ctx context.Context, id int64) bool {
	t.base.update(func(s *TutorsState) {
		s.Loading = true
		s.Err = ""
	})

	if err := t.client.DeleteTutor(ctx, id); err != nil {
		t.log.Error(ctx, "deleting tutor failed", "id", id, "error", err)
		t.base.update(func(s *TutorsState) {
			s.Loading = false
			s.Err = serverMessage(err, "Erro ao excluir tutor")
		})
		return false
	}

	t.base.update(func(s *TutorsState) {
		kept := s.Tutors[:0]
		for _, tutor := range s.Tutors {
			if tutor.ID != id {
				kept = append(kept, tutor)
			}
		}
		s.Tutors = kept
		s.Loading = false
	})
	return true
}

// UploadPhoto stores a photo for the tutor and patches the URL into state.
func (t *Tutors) UploadPhoto(ctx context.Context, id int64, filename string, data []byte) string {
	url, err := t.client.UploadTutorPhoto(ctx, id, filename, data)
	if err != nil {
		t.log.Error(ctx, "uploading tutor photo failed", "id", id, "error", err)
		return ""
	}
	if url == "" {
		return ""
	}

	t.base.update(func(s *TutorsState) {
		for i := range s.Tutors {
			if s.Tutors[i].ID == id {
				s.Tutors[i].URLFoto = url
			}
		}
		if s.Current != nil && s.Current.ID == id {
			updated := *s.Current
			updated.URLFoto = url
			s.Current = &updated
		}
	})
	return url
}

// LinkPet associates a pet with a tutor, then reloads the tutor so the
// published pet list reflects the backend's view (linking moves the pet
// away from any previous tutor).
func (t *Tutors) LinkPet(ctx context.Context, tutorID, petID int64) bool {
	t.base.update(func(s *TutorsState) {
		s.Loading = true
		s.Err = ""
	})

	if err := t.client.LinkPet(ctx, tutorID, petID); err != nil {
		t.log.Error(ctx, "linking pet failed", "tutor_id", tutorID, "pet_id", petID, "error", err)
		t.base.update(func(s *TutorsState) {
			s.Loading = false
			s.Err = linkErrorMessage(err)
		})
		return false
	}

	t.Get(ctx, tutorID)
	return true
}

// UnlinkPet removes the association and drops the pet from the local lists.
func (t *Tutors) UnlinkPet(ctx context.Context, tutorID, petID int64) bool {
	t.base.update(func(s *TutorsState) {
		s.Loading = true
		s.Err = ""
	})

	if err := t.client.UnlinkPet(ctx, tutorID, petID); err != nil {
		t.log.Error(ctx, "unlinking pet failed", "tutor_id", tutorID, "pet_id", petID, "error", err)
		t.base.update(func(s *TutorsState) {
			s.Loading = false
			s.Err = unlinkErrorMessage(err)
		})
		return false
	}

	t.base.update(func(s *TutorsState) {
		kept := s.TutorPets[:0]
		for _, pet := range s.TutorPets {
			if pet.ID != petID {
				kept = append(kept, pet)
			}
		}
		s.TutorPets = kept
		if s.Current != nil {
			updated := *s.Current
			pets := make([]models.Pet, 0, len(updated.Pets))
			for _, pet := range updated.Pets {
				if pet.ID != petID {
					pets = append(pets, pet)
				}
			}
			updated.Pets = pets
			s.Current = &updated
		}
		s.Loading = false
	})
	return true
}

// AvailablePets returns pets currently linked to no tutor.
func (t *Tutors) AvailablePets(ctx context.Context) []models.Pet {
	t.base.update(func(s *TutorsState) {
		s.Loading = true
		s.Err = ""
	})

	pets, err := t.client.AvailablePets(ctx)
	if err != nil {
		t.log.Error(ctx, "listing available pets failed", "error", err)
		t.base.update(func(s *TutorsState) {
			s.Loading = false
			s.Err = serverMessage(err, "Erro ao carregar pets disponíveis")
		})
		return nil
	}

	t.base.update(func(s *TutorsState) { s.Loading = false })
	return pets
}

func (t *Tutors) ClearError() {
	t.base.update(func(s *TutorsState) { s.Err = "" })
}

func (t *Tutors) ClearCurrent() {
	t.base.update(func(s *TutorsState) {
		s.Current = nil
		s.TutorPets = nil
	})
}

func linkErrorMessage(err error) string {
	switch api.StatusOf(err) {
	case 404:
		return "Pet ou tutor não encontrado"
	case 400:
		if msg := api.MessageOf(err); msg != "" {
			return msg
		}
		return "Pet já está vinculado a outro tutor"
	case 409:
		return "Conflito: Pet já está vinculado a este tutor"
	default:
		return serverMessage(err, "Erro ao vincular pet ao tutor")
	}
}

func unlinkErrorMessage(err error) string {
	if api.StatusOf(err) == 404 {
		return "Vínculo não encontrado"
	}
	return serverMessage(err, "Erro ao desvincular pet do tutor")
}
