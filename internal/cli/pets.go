package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"petmanager/internal/models"
)

// listArgs parses optional [page] [nome] arguments for the listing
// commands. The page argument is 1-based on the command line and 0-based
// toward the API.
func (a *App) listArgs(args []string) (page int, nome string) {
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil && n > 0 {
			page = n - 1
			args = args[1:]
		}
	}
	if len(args) > 0 {
		nome = args[0]
	}
	return page, nome
}

func (a *App) ListPets(ctx context.Context, args []string) error {
	page, nome := a.listArgs(args)
	a.pets.Load(ctx, page, a.config.PageSize, nome)

	st := a.pets.State()
	if st.Err != "" {
		fmt.Fprintln(a.out, st.Err)
		return nil
	}
	for _, pet := range st.Pets {
		fmt.Fprintln(a.out, petLine(pet))
	}
	fmt.Fprintf(a.out, "page %d/%d (%d pets)\n",
		st.Pagination.Page+1, st.Pagination.TotalPages, st.Pagination.TotalElements)
	return nil
}

func (a *App) ShowPet(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return nil
	}

	pet := a.pets.Get(ctx, id)
	if pet == nil {
		fmt.Fprintln(a.out, a.pets.State().Err)
		return nil
	}

	fmt.Fprintln(a.out, petLine(*pet))
	if pet.URLFoto != "" {
		fmt.Fprintf(a.out, "  foto: %s\n", pet.URLFoto)
	}
	if tutor := a.pets.State().CurrentTutor; tutor != nil {
		fmt.Fprintf(a.out, "  tutor: #%d %s\n", tutor.ID, tutor.Nome)
	} else {
		fmt.Fprintln(a.out, "  tutor: (nenhum)")
	}
	return nil
}

func (a *App) AddPet(ctx context.Context) error {
	form, err := a.readPetForm(models.PetForm{})
	if err != nil {
		return err
	}

	pet := a.pets.Create(ctx, form)
	if pet == nil {
		fmt.Fprintln(a.out, a.pets.State().Err)
		return nil
	}
	fmt.Fprintf(a.out, "Created pet #%d\n", pet.ID)
	return nil
}

func (a *App) EditPet(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return nil
	}

	current := a.pets.Get(ctx, id)
	if current == nil {
		fmt.Fprintln(a.out, a.pets.State().Err)
		return nil
	}

	form, err := a.readPetForm(models.PetForm{
		Nome:    current.Nome,
		Especie: current.Especie,
		Raca:    current.Raca,
		Idade:   current.Idade,
	})
	if err != nil {
		return err
	}

	if a.pets.Update(ctx, id, form) == nil {
		fmt.Fprintln(a.out, a.pets.State().Err)
		return nil
	}
	fmt.Fprintf(a.out, "Updated pet #%d\n", id)
	return nil
}

func (a *App) DeletePet(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return nil
	}

	if !a.pets.Delete(ctx, id) {
		fmt.Fprintln(a.out, a.pets.State().Err)
		return nil
	}
	fmt.Fprintf(a.out, "Deleted pet #%d\n", id)
	return nil
}

func (a *App) PetPhoto(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil || len(args) < 2 {
		fmt.Fprintln(a.out, "usage: petphoto <id> <file>")
		return nil
	}

	data, err := os.ReadFile(args[1])
	if err != nil {
		fmt.Fprintln(a.out, "cannot read file:", err)
		return nil
	}

	url := a.pets.UploadPhoto(ctx, id, filepath.Base(args[1]), data)
	if url == "" {
		fmt.Fprintln(a.out, "Upload failed")
		return nil
	}
	fmt.Fprintln(a.out, "Photo uploaded:", url)
	return nil
}

// readPetForm prompts for every pet field, offering the previous values as
// defaults when editing.
func (a *App) readPetForm(prev models.PetForm) (models.PetForm, error) {
	var form models.PetForm
	var err error

	form.Nome, err = a.promptDefault("Nome", prev.Nome)
	if err != nil {
		return form, err
	}
	form.Especie, err = a.promptDefault("Espécie", prev.Especie)
	if err != nil {
		return form, err
	}
	form.Raca, err = a.promptDefault("Raça", prev.Raca)
	if err != nil {
		return form, err
	}
	form.Idade, err = GetInt(a.reader, fmt.Sprintf("Idade [%d]", prev.Idade), prev.Idade, a.out)
	if err != nil {
		return form, err
	}
	return form, nil
}

// promptDefault asks for a text field; empty input keeps the previous value.
func (a *App) promptDefault(label, prev string) (string, error) {
	prompt := label
	if prev != "" {
		prompt = fmt.Sprintf("%s [%s]", label, prev)
	}
	text, err := GetSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return "", err
	}
	if text == "" {
		return prev, nil
	}
	return text, nil
}

func petLine(pet models.Pet) string {
	s := fmt.Sprintf("#%-4d %-20s %-10s", pet.ID, pet.Nome, pet.Especie)
	if pet.Raca != "" {
		s += " " + pet.Raca
	}
	if pet.Idade > 0 {
		s += fmt.Sprintf(" (%d anos)", pet.Idade)
	}
	if pet.TutorID != 0 {
		s += fmt.Sprintf(" tutor=#%d", pet.TutorID)
	}
	return s
}
