package cli

import (
	"context"
	"errors"

	"github.com/fusion-condo/fusion/internal/client/client"
	"github.com/fusion-condo/fusion/internal/client/models"
	"github.com/fusion-condo/fusion/internal/client/services"
	"github.com/fusion-condo/fusion/internal/format"
)

// Login prompts for credentials and signs in. The password never echoes.
func (a *App) Login(ctx context.Context) error {
	email, err := a.ask("Enter email")
	if err != nil {
		return err
	}
	password, err := a.askPassword()
	if err != nil {
		return err
	}

	res, err := a.authService.Login(ctx, email, password)
	if err != nil {
		return err
	}
	a.greet(res)
	return nil
}

// Register creates a generic account through /auth/register.
func (a *App) Register(ctx context.Context) error {
	email, err := a.ask("Enter email")
	if err != nil {
		return err
	}
	password, err := a.askPassword()
	if err != nil {
		return err
	}
	fullName, err := a.ask("Enter full name")
	if err != nil {
		return err
	}
	role, err := a.askDefault("Enter role", models.DefaultRegisterRole)
	if err != nil {
		return err
	}

	res, err := a.authService.Register(ctx, email, password, fullName, role)
	if err != nil {
		return err
	}
	a.greet(res)
	return nil
}

// RegisterStudent walks through the resident sign-up form. Guardian and
// doctor details are asked only for minors.
func (a *App) RegisterStudent(ctx context.Context) error {
	var f models.StudentRegistration
	var err error

	steps := []struct {
		prompt string
		dst    *string
	}{
		{"Enter email", &f.Email},
		{"Enter full name", &f.FullName},
		{"Enter condominium code", &f.CondoCode},
		{"Enter date of birth (YYYY-MM-DD)", &f.DateOfBirth},
		{"Enter CPF", &f.CPF},
		{"Enter phone", &f.Phone},
		{"Enter emergency phone", &f.EmergencyPhone},
		{"Enter block (optional)", &f.Block},
		{"Enter apartment (optional)", &f.Apartment},
	}
	for i, s := range steps {
		if *s.dst, err = a.ask(s.prompt); err != nil {
			return err
		}
		if i == 0 {
			if f.Password, err = a.askPassword(); err != nil {
				return err
			}
		}
	}

	if age, err := format.Age(f.DateOfBirth, a.now()); err == nil && age < services.AdultAge {
		a.println("Students under 18 need a guardian and a doctor on file.")
		minor := []struct {
			prompt string
			dst    *string
		}{
			{"Enter guardian name", &f.GuardianName},
			{"Enter guardian contact", &f.GuardianContact},
			{"Enter doctor name", &f.DoctorName},
			{"Enter doctor CRM", &f.DoctorCRM},
		}
		for _, s := range minor {
			if *s.dst, err = a.ask(s.prompt); err != nil {
				return err
			}
		}
	}

	res, err := a.authService.RegisterStudent(ctx, f)
	if err != nil {
		return err
	}
	a.greet(res)
	return nil
}

// RegisterInstructor walks through the instructor sign-up form. The address
// is prefilled from the postal code when the lookup succeeds.
func (a *App) RegisterInstructor(ctx context.Context) error {
	var f models.InstructorRegistration
	var err error

	if f.InviteCode, err = a.ask("Enter invite code"); err != nil {
		return err
	}
	if f.Email, err = a.ask("Enter email"); err != nil {
		return err
	}
	if f.Password, err = a.askPassword(); err != nil {
		return err
	}

	steps := []struct {
		prompt string
		dst    *string
	}{
		{"Enter full name", &f.FullName},
		{"Enter date of birth (YYYY-MM-DD)", &f.DateOfBirth},
		{"Enter CPF", &f.CPF},
		{"Enter phone", &f.Phone},
		{"Enter emergency phone", &f.EmergencyPhone},
		{"Enter CEP", &f.CEP},
	}
	for _, s := range steps {
		if *s.dst, err = a.ask(s.prompt); err != nil {
			return err
		}
	}

	street, neighborhood := a.prefillAddress(ctx, f.CEP)
	if f.Address, err = a.askDefault("Enter address", street); err != nil {
		return err
	}
	if f.AddressNumber, err = a.ask("Enter address number"); err != nil {
		return err
	}
	if f.Neighborhood, err = a.askDefault("Enter neighborhood", neighborhood); err != nil {
		return err
	}

	res, err := a.authService.RegisterInstructor(ctx, f)
	if err != nil {
		return err
	}
	a.greet(res)
	return nil
}

// prefillAddress returns street and neighborhood for code, or empty strings
// when the lookup fails. Failures are only logged.
func (a *App) prefillAddress(ctx context.Context, code string) (string, string) {
	if len(format.Digits(code)) != 8 {
		return "", ""
	}
	addr, err := a.addresses.Lookup(ctx, code)
	if err != nil {
		a.logger.Debug(ctx, "cep prefill skipped", "cep", code, "error", err)
		return "", ""
	}
	return addr.Street, addr.Neighborhood
}

func (a *App) greet(res *models.AuthResponse) {
	switch {
	case res.User != nil && res.User.FullName != "":
		a.printf("Welcome, %s!\n", res.User.FullName)
	case res.Token != "":
		a.println("Success!")
	default:
		a.println("Registration received.")
	}
}

// Me prints the current user.
func (a *App) Me(ctx context.Context) error {
	cu, err := a.authService.CurrentUser(ctx)
	if err != nil {
		return err
	}
	switch {
	case cu.Unauthenticated:
		a.println("Not signed in.")
	case cu.User == nil:
		a.println("Signed in, but the backend returned no user.")
	default:
		a.printUser(cu.User)
	}
	return nil
}

func (a *App) printUser(u *models.User) {
	a.printf("ID:        %s\n", u.ID)
	a.printf("Name:      %s\n", u.FullName)
	a.printf("Email:     %s\n", u.Email)
	if u.UserType != "" {
		a.printf("Type:      %s\n", u.UserType)
	}
	if u.Phone != "" {
		a.printf("Phone:     %s\n", format.Phone(u.Phone))
	}
	if u.CPF != "" {
		a.printf("CPF:       %s\n", format.CPF(u.CPF))
	}
	if u.PlanStatus != "" {
		a.printf("Plan:      %s\n", u.PlanStatus)
	}
}

// Session prints what the current token says about itself and when it was
// stored.
func (a *App) Session(ctx context.Context) error {
	s, err := a.authService.Session(ctx)
	if err != nil {
		if errors.Is(err, client.ErrNoToken) {
			a.println("Not signed in.")
			return nil
		}
		return err
	}

	if s.Opaque {
		a.println("Session token is opaque.")
	} else {
		a.printf("Subject:   %s\n", s.Subject)
		if s.Email != "" {
			a.printf("Email:     %s\n", s.Email)
		}
		if s.Role != "" {
			a.printf("Role:      %s\n", s.Role)
		}
		if !s.ExpiresAt.IsZero() {
			state := "valid"
			if s.Expired {
				state = "expired"
			}
			a.printf("Expires:   %s (%s)\n", s.ExpiresAt.Local().Format("2006-01-02 15:04"), state)
		}
	}

	if r, ok := a.store.(savedAtReporter); ok {
		if at, found, err := r.SavedAt(ctx); err == nil && found {
			a.printf("Stored:    %s\n", at.Local().Format("2006-01-02 15:04"))
		}
	}
	return nil
}

// Logout forgets the session locally.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.println("Logged out.")
	return nil
}
