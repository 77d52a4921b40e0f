package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/fusion-condo/fusion/internal/client/client"
	"github.com/fusion-condo/fusion/internal/client/models"
	"github.com/fusion-condo/fusion/internal/client/services"
	"github.com/fusion-condo/fusion/internal/filex"
	"github.com/fusion-condo/fusion/internal/format"
)

// SaveUser creates a user, or edits the one with the given id:
// save-user [id]. Current values are offered as defaults when editing.
func (a *App) SaveUser(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return usageError("save-user [id]")
	}

	var existing *models.User
	if len(args) == 1 {
		u, err := a.findUser(ctx, args[0])
		if err != nil {
			return err
		}
		existing = u
	}
	cur := existing
	if cur == nil {
		cur = &models.User{}
	}

	var f models.UserForm
	var err error

	if f.FullName, err = a.askDefault("Enter full name", cur.FullName); err != nil {
		return err
	}
	if existing == nil {
		if f.Email, err = a.ask("Enter email"); err != nil {
			return err
		}
	}

	steps := []struct {
		prompt string
		def    string
		dst    *string
	}{
		{"Enter phone", format.Phone(cur.Phone), &f.Phone},
		{"Enter emergency phone", format.Phone(cur.EmergencyPhone), &f.EmergencyPhone},
		{"Enter CPF", cur.CPF, &f.CPF},
		{"Enter block", cur.Block, &f.Block},
		{"Enter apartment", cur.Apartment, &f.Apartment},
		{"Enter CEP", format.CEP(cur.CEP), &f.CEP},
	}
	for _, s := range steps {
		if *s.dst, err = a.askDefault(s.prompt, s.def); err != nil {
			return err
		}
	}

	dob, err := a.askDefault("Enter date of birth (YYYY-MM-DD, optional)", cur.DateOfBirth)
	if err != nil {
		return err
	}
	if dob != "" {
		f.DateOfBirth = &dob
	}

	street, neighborhood := cur.Address, cur.Neighborhood
	if s, n := a.prefillAddress(ctx, f.CEP); s != "" {
		street, neighborhood = s, n
	}
	if f.Address, err = a.askDefault("Enter address", street); err != nil {
		return err
	}
	if f.AddressNumber, err = a.askDefault("Enter address number", cur.AddressNumber); err != nil {
		return err
	}
	if f.Neighborhood, err = a.askDefault("Enter neighborhood", neighborhood); err != nil {
		return err
	}

	userType := string(cur.UserType)
	if userType == "" {
		userType = string(models.UserTypeStudent)
	}
	ut, err := a.askDefault("Enter user type (student, instructor, admin)", userType)
	if err != nil {
		return err
	}
	f.UserType = models.UserType(ut)

	var condoDef string
	if cur.CondominiumID != nil {
		condoDef = strconv.FormatInt(*cur.CondominiumID, 10)
	}
	condo, err := a.askDefault("Enter condominium id (optional)", condoDef)
	if err != nil {
		return err
	}
	if condo != "" {
		id, err := strconv.ParseInt(condo, 10, 64)
		if err != nil {
			return &services.ValidationError{Fields: []services.FieldError{{Field: "condominium_id", Reason: "must be a number"}}}
		}
		f.CondominiumID = &id
	}

	raw, err := a.userService.SaveUser(ctx, existing, f)
	if err != nil {
		return err
	}
	a.println("Saved.")
	a.printJSON(raw)
	return nil
}

// findUser fetches one user by id through the generic users table. The
// backend may answer with a list or a single record.
func (a *App) findUser(ctx context.Context, id string) (*models.User, error) {
	raw, err := a.apiClient.Get(ctx, "users", client.Params{}.Add("id", id))
	if err != nil {
		return nil, err
	}

	var list []models.User
	if err := json.Unmarshal(raw, &list); err != nil {
		var one models.User
		if err := json.Unmarshal(raw, &one); err != nil {
			return nil, fmt.Errorf("decode users: %w", err)
		}
		list = []models.User{one}
	}

	for i := range list {
		if list[i].ID.String() == id {
			return &list[i], nil
		}
	}
	return nil, fmt.Errorf("user %s not found", id)
}

// Profile edits the signed-in administrator's own profile, optionally
// uploading a new avatar first.
func (a *App) Profile(ctx context.Context) error {
	cu, err := a.authService.CurrentUser(ctx)
	if err != nil {
		return err
	}
	if cu.Unauthenticated {
		return client.ErrNoToken
	}
	cur := cu.User
	if cur == nil {
		cur = &models.User{}
	}

	f := models.ProfileUpdate{AvatarURL: cur.AvatarURL}
	steps := []struct {
		prompt string
		def    string
		dst    *string
	}{
		{"Enter full name", cur.FullName, &f.FullName},
		{"Enter phone", format.Phone(cur.Phone), &f.Phone},
		{"Enter CPF", format.CPF(cur.CPF), &f.CPF},
		{"Enter address", cur.Address, &f.Address},
	}
	for _, s := range steps {
		if *s.dst, err = a.askDefault(s.prompt, s.def); err != nil {
			return err
		}
	}

	path, err := a.ask("Enter avatar file path (optional)")
	if err != nil {
		return err
	}
	var avatar *services.Avatar
	if path != "" {
		file, name, err := filex.OpenRegular(path)
		if err != nil {
			return err
		}
		defer file.Close()
		avatar = &services.Avatar{Filename: name, Content: file}
	}

	updated, err := a.userService.UpdateMyProfile(ctx, f, avatar)
	if err != nil {
		return err
	}
	a.println("Profile saved.")
	if updated.User != nil {
		a.printUser(updated.User)
	}
	return nil
}
