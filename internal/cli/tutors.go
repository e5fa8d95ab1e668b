package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"petmanager/internal/models"
)

func (a *App) ListTutors(ctx context.Context, args []string) error {
	page, nome := a.listArgs(args)
	a.tutors.Load(ctx, page, a.config.PageSize, nome)

	st := a.tutors.State()
	if st.Err != "" {
		fmt.Fprintln(a.out, st.Err)
		return nil
	}
	for _, tutor := range st.Tutors {
		fmt.Fprintln(a.out, tutorLine(tutor))
	}
	fmt.Fprintf(a.out, "page %d/%d (%d tutors)\n",
		st.Pagination.Page+1, st.Pagination.TotalPages, st.Pagination.TotalElements)
	return nil
}

func (a *App) ShowTutor(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return nil
	}

	tutor := a.tutors.Get(ctx, id)
	if tutor == nil {
		fmt.Fprintln(a.out, a.tutors.State().Err)
		return nil
	}

	fmt.Fprintln(a.out, tutorLine(*tutor))
	if tutor.Endereco != "" {
		fmt.Fprintf(a.out, "  endereço: %s\n", tutor.Endereco)
	}
	if tutor.URLFoto != "" {
		fmt.Fprintf(a.out, "  foto: %s\n", tutor.URLFoto)
	}
	pets := a.tutors.State().TutorPets
	if len(pets) == 0 {
		fmt.Fprintln(a.out, "  pets: (nenhum)")
		return nil
	}
	for _, pet := range pets {
		fmt.Fprintln(a.out, "  "+petLine(pet))
	}
	return nil
}

func (a *App) AddTutor(ctx context.Context) error {
	form, err := a.readTutorForm(models.TutorForm{})
	if err != nil {
		return err
	}

	tutor := a.tutors.Create(ctx, form)
	if tutor == nil {
		fmt.Fprintln(a.out, a.tutors.State().Err)
		return nil
	}
	fmt.Fprintf(a.out, "Created tutor #%d\n", tutor.ID)
	return nil
}

func (a *App) EditTutor(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return nil
	}

	current := a.tutors.Get(ctx, id)
	if current == nil {
		fmt.Fprintln(a.out, a.tutors.State().Err)
		return nil
	}

	form, err := a.readTutorForm(models.TutorForm{
		Nome:     current.Nome,
		Telefone: current.Telefone,
		Endereco: current.Endereco,
	})
	if err != nil {
		return err
	}

	if a.tutors.Update(ctx, id, form) == nil {
		fmt.Fprintln(a.out, a.tutors.State().Err)
		return nil
	}
	fmt.Fprintf(a.out, "Updated tutor #%d\n", id)
	return nil
}

func (a *App) DeleteTutor(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return nil
	}

	if !a.tutors.Delete(ctx, id) {
		fmt.Fprintln(a.out, a.tutors.State().Err)
		return nil
	}
	fmt.Fprintf(a.out, "Deleted tutor #%d\n", id)
	return nil
}

func (a *App) TutorPhoto(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil || len(args) < 2 {
		fmt.Fprintln(a.out, "usage: tutorphoto <id> <file>")
		return nil
	}

	data, err := os.ReadFile(args[1])
	if err != nil {
		fmt.Fprintln(a.out, "cannot read file:", err)
		return nil
	}

	url := a.tutors.UploadPhoto(ctx, id, filepath.Base(args[1]), data)
	if url == "" {
		fmt.Fprintln(a.out, "Upload failed")
		return nil
	}
	fmt.Fprintln(a.out, "Photo uploaded:", url)
	return nil
}

func (a *App) Link(ctx context.Context, args []string) error {
	tutorID, petID, err := parseIDPair(args, "link")
	if err != nil {
		fmt.Fprintln(a.out, err)
		return nil
	}

	if !a.tutors.LinkPet(ctx, tutorID, petID) {
		fmt.Fprintln(a.out, a.tutors.State().Err)
		return nil
	}
	fmt.Fprintf(a.out, "Linked pet #%d to tutor #%d\n", petID, tutorID)
	return nil
}

func (a *App) Unlink(ctx context.Context, args []string) error {
	tutorID, petID, err := parseIDPair(args, "unlink")
	if err != nil {
		fmt.Fprintln(a.out, err)
		return nil
	}

	if !a.tutors.UnlinkPet(ctx, tutorID, petID) {
		fmt.Fprintln(a.out, a.tutors.State().Err)
		return nil
	}
	fmt.Fprintf(a.out, "Unlinked pet #%d from tutor #%d\n", petID, tutorID)
	return nil
}

func (a *App) Available(ctx context.Context) error {
	pets := a.tutors.AvailablePets(ctx)
	if err := a.tutors.State().Err; err != "" {
		fmt.Fprintln(a.out, err)
		return nil
	}
	if len(pets) == 0 {
		fmt.Fprintln(a.out, "No pets without a tutor")
		return nil
	}
	for _, pet := range pets {
		fmt.Fprintln(a.out, petLine(pet))
	}
	return nil
}

func (a *App) readTutorForm(prev models.TutorForm) (models.TutorForm, error) {
	var form models.TutorForm
	var err error

	form.Nome, err = a.promptDefault("Nome", prev.Nome)
	if err != nil {
		return form, err
	}
	form.Telefone, err = a.promptDefault("Telefone", prev.Telefone)
	if err != nil {
		return form, err
	}
	form.Endereco, err = a.promptDefault("Endereço", prev.Endereco)
	if err != nil {
		return form, err
	}
	return form, nil
}

// parseIDPair parses "<tutorId> <petId>" arguments.
func parseIDPair(args []string, cmd string) (int64, int64, error) {
	if len(args) < 2 {
		return 0, 0, fmt.Errorf("usage: %s <tutorId> <petId>", cmd)
	}
	tutorID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || tutorID <= 0 {
		return 0, 0, fmt.Errorf("invalid tutor id: %q", args[0])
	}
	petID, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil || petID <= 0 {
		return 0, 0, fmt.Errorf("invalid pet id: %q", args[1])
	}
	return tutorID, petID, nil
}

func tutorLine(tutor models.Tutor) string {
	s := fmt.Sprintf("#%-4d %-25s", tutor.ID, tutor.Nome)
	if tutor.Telefone != "" {
		s += " " + tutor.Telefone
	}
	if n := len(tutor.Pets); n > 0 {
		s += fmt.Sprintf(" (%d pets)", n)
	}
	return s
}
