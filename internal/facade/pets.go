package facade

import (
	"context"

	"github.com/asaskevich/EventBus"

	"petmanager/internal/api"
	"petmanager/internal/logging"
	"petmanager/internal/models"
)

// PetsState is the published pet-listing state: the current page of pets,
// the pet under detail view with its resolved tutor, and the usual
// loading/error pair.
type PetsState struct {
	Pets         []models.Pet
	Current      *models.Pet
	CurrentTutor *models.Tutor
	Loading      bool
	Err          string
	Pagination   Pagination
}

type Pets struct {
	base   base[PetsState]
	client *api.Client
	log    logging.Logger
}

func NewPets(client *api.Client, bus EventBus.Bus, log logging.Logger) *Pets {
	return &Pets{
		base:   base[PetsState]{bus: bus, topic: TopicPets},
		client: client,
		log:    log,
	}
}

func (p *Pets) State() PetsState { return p.base.snapshot() }

func (p *Pets) Subscribe(fn func(PetsState)) error   { return p.base.subscribe(fn) }
func (p *Pets) Unsubscribe(fn func(PetsState)) error { return p.base.unsubscribe(fn) }

// Load fetches one page of pets, optionally filtered by name.
func (p *Pets) Load(ctx context.Context, page, size int, nome string) {
	p.base.update(func(s *PetsState) {
		s.Loading = true
		s.Err = ""
	})

	result, err := p.client.ListPets(ctx, page, size, nome)
	if err != nil {
		p.log.Error(ctx, "loading pets failed", "error", err)
		p.base.update(func(s *PetsState) {
			s.Loading = false
			s.Err = serverMessage(err, "Erro ao carregar pets")
		})
		return
	}

	p.base.update(func(s *PetsState) {
		s.Pets = result.Content
		s.Loading = false
		s.Pagination = Pagination{
			Page:          result.Number,
			Size:          result.Size,
			TotalPages:    result.TotalPages,
			TotalElements: result.TotalElements,
		}
	})
}

// Get loads one pet and resolves its tutor: embedded object first, then a
// lookup by the referenced id, then a scan of the tutors' pet lists as a
// last resort (the backend inconsistently nests or omits the reference).
func (p *Pets) Get(ctx context.Context, id int64) *models.Pet {
	p.base.update(func(s *PetsState) {
		s.Loading = true
		s.Err = ""
		s.CurrentTutor = nil
	})

	pet, err := p.client.GetPet(ctx, id)
	if err != nil {
		p.log.Error(ctx, "loading pet failed", "id", id, "error", err)
		p.base.update(func(s *PetsState) {
			s.Loading = false
			s.Err = serverMessage(err, "Erro ao carregar pet")
		})
		return nil
	}

	tutor := pet.Tutor
	if tutor == nil && pet.TutorID != 0 {
		if t, err := p.client.GetTutor(ctx, pet.TutorID); err == nil {
			tutor = &t
		} else {
			p.log.Warn(ctx, "loading pet's tutor failed", "tutor_id", pet.TutorID, "error", err)
		}
	}
	if tutor == nil && pet.TutorID == 0 {
		tutor = p.findTutorForPet(ctx, id)
	}

	p.base.update(func(s *PetsState) {
		s.Current = &pet
		s.CurrentTutor = tutor
		s.Loading = false
	})
	return &pet
}

// findTutorForPet scans the tutor listing for one whose pets include petID.
func (p *Pets) findTutorForPet(ctx context.Context, petID int64) *models.Tutor {
	tutors, err := p.client.ListTutors(ctx, 0, 1000, "")
	if err != nil {
		p.log.Warn(ctx, "tutor scan failed", "error", err)
		return nil
	}
	for _, tutor := range tutors.Content {
		for _, pet := range tutor.Pets {
			if pet.ID == petID {
				t := tutor
				return &t
			}
		}
	}
	return nil
}

// Create registers a new pet and prepends it to the current listing.
func (p *Pets) Create(ctx context.Context, form models.PetForm) *models.Pet {
	p.base.update(func(s *PetsState) {
		s.Loading = true
		s.Err = ""
	})

	pet, err := p.client.CreatePet(ctx, form)
	if err != nil {
		p.log.Error(ctx, "creating pet failed", "error", err)
		p.base.update(func(s *PetsState) {
			s.Loading = false
			s.Err = serverMessage(err, "Erro ao criar pet")
		})
		return nil
	}

	p.base.update(func(s *PetsState) {
		s.Pets = append([]models.Pet{pet}, s.Pets...)
		s.Loading = false
	})
	return &pet
}

// Update saves changes to a pet and replaces it in the listing.
func (p *Pets) Update(ctx context.Context, id int64, form models.PetForm) *models.Pet {
	p.base.update(func(s *PetsState) {
		s.Loading = true
		s.Err = ""
	})

	pet, err := p.client.UpdatePet(ctx, id, form)
	if err != nil {
		p.log.Error(ctx, "updating pet failed", "id", id, "error", err)
		p.base.update(func(s *PetsState) {
			s.Loading = false
			s.Err = serverMessage(err, "Erro ao atualizar pet")
		})
		return nil
	}

	p.base.update(func(s *PetsState) {
		for i := range s.Pets {
			if s.Pets[i].ID == id {
				s.Pets[i] = pet
			}
		}
		s.Current = &pet
		s.Loading = false
	})
	return &pet
}

// Delete removes a pet and drops it from the listing.
func (p *Pets) Delete(ctx context.Context, id int64) bool {
	p.base.update(func(s *PetsState) {
		s.Loading = true
		s.Err = ""
	})

	if err := p.client.DeletePet(ctx, id); err != nil {
		p.log.Error(ctx, "deleting pet failed", "id", id, "error", err)
		p.base.update(func(s *PetsState) {
			s.Loading = false
			s.Err = serverMessage(err, "Erro ao excluir pet")
		})
		return false
	}

	p.base.update(func(s *PetsState) {
		kept := s.Pets[:0]
		for _, pet := range s.Pets {
			if pet.ID != id {
				kept = append(kept, pet)
			}
		}
		s.Pets = kept
		s.Loading = false
	})
	return true
}

// UploadPhoto stores a photo for the pet and patches the photo URL into the
// listing and the detail view. Failures are logged but do not publish an
// error state; the photo is cosmetic.
func (p *Pets) UploadPhoto(ctx context.Context, id int64, filename string, data []byte) string {
	url, err := p.client.UploadPetPhoto(ctx, id, filename, data)
	if err != nil {
		p.log.Error(ctx, "uploading pet photo failed", "id", id, "error", err)
		return ""
	}
	if url == "" {
		return ""
	}

	p.base.update(func(s *PetsState) {
		for i := range s.Pets {
			if s.Pets[i].ID == id {
				s.Pets[i].URLFoto = url
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

func (p *Pets) ClearError() {
	p.base.update(func(s *PetsState) { s.Err = "" })
}

func (p *Pets) ClearCurrent() {
	p.base.update(func(s *PetsState) {
		s.Current = nil
		s.CurrentTutor = nil
	})
}

// serverMessage prefers the backend's own message field, falling back to
// the given user-facing default.
func serverMessage(err error, fallback string) string {
	if msg := api.MessageOf(err); msg != "" {
		return msg
	}
	return fallback
}
