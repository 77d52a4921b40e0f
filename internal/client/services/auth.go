package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fusion-condo/fusion/internal/client/client"
	"github.com/fusion-condo/fusion/internal/client/models"
	"github.com/fusion-condo/fusion/internal/format"
	"github.com/fusion-condo/fusion/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// AdultAge is the age from which a student registers without guardian and
// doctor details.
const AdultAge = 18

// AuthService defines the authentication flows of the CLI.
//
// Contract:
//   - Login/Register: generic /auth endpoints; the returned token becomes
//     the session token.
//   - RegisterStudent/RegisterInstructor: validated role sign-ups; a token
//     in the answer becomes the session token.
//   - CurrentUser/Logout: pass-through to the client.
//   - Session: what the current token says about itself, read without
//     signature verification (display only).
type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Register(ctx context.Context, email, password, fullName, role string) (*models.AuthResponse, error)
	RegisterStudent(ctx context.Context, form models.StudentRegistration) (*models.AuthResponse, error)
	RegisterInstructor(ctx context.Context, form models.InstructorRegistration) (*models.AuthResponse, error)
	CurrentUser(ctx context.Context) (*models.CurrentUser, error)
	Logout(ctx context.Context) error
	Session(ctx context.Context) (*Session, error)
}

// Session is the decoded view of a session token. Opaque tokens (not a JWT)
// only report Opaque.
type Session struct {
	Opaque    bool
	Subject   string
	Email     string
	Role      string
	ExpiresAt time.Time
	Expired   bool
}

type authService struct {
	client client.Client
	logger logging.Logger
	now    func() time.Time
}

func NewAuthService(c client.Client, logger logging.Logger) AuthService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &authService{client: c, logger: logger, now: time.Now}
}

func (a *authService) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	var v validator
	v.required("email", email)
	v.required("password", password)
	if err := v.err(); err != nil {
		return nil, err
	}

	res, err := a.client.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	a.logger.Info(ctx, "logged in", "email", email)
	return res, nil
}

func (a *authService) Register(ctx context.Context, email, password, fullName, role string) (*models.AuthResponse, error) {
	var v validator
	v.required("email", email)
	v.required("password", password)
	v.required("full_name", fullName)
	if err := v.err(); err != nil {
		return nil, err
	}

	res, err := a.client.Register(ctx, email, password, fullName, role)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	a.logger.Info(ctx, "registered", "email", email)
	return res, nil
}

// RegisterStudent signs up a resident. Students under AdultAge must also
// name a guardian and a doctor.
func (a *authService) RegisterStudent(ctx context.Context, form models.StudentRegistration) (*models.AuthResponse, error) {
	var v validator
	v.required("email", form.Email)
	v.required("password", form.Password)
	v.required("full_name", form.FullName)
	v.required("condo_code", form.CondoCode)
	v.required("date_of_birth", form.DateOfBirth)
	v.required("cpf", form.CPF)
	v.required("phone", form.Phone)
	v.required("emergency_phone", form.EmergencyPhone)

	if form.DateOfBirth != "" {
		age, err := format.Age(form.DateOfBirth, a.now())
		switch {
		case err != nil:
			v.invalid("date_of_birth", "must be YYYY-MM-DD")
		case age < AdultAge:
			v.required("guardian_name", form.GuardianName)
			v.required("guardian_contact", form.GuardianContact)
			v.required("doctor_name", form.DoctorName)
			v.required("doctor_crm", form.DoctorCRM)
		}
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	payload := form
	payload.Phone = format.Digits(form.Phone)
	payload.EmergencyPhone = format.Digits(form.EmergencyPhone)

	return a.registerRole(ctx, "/register/student", payload, form.Email)
}

// RegisterInstructor signs up an instructor with an invite code.
func (a *authService) RegisterInstructor(ctx context.Context, form models.InstructorRegistration) (*models.AuthResponse, error) {
	cpf := format.Digits(form.CPF)

	var v validator
	v.required("invite_code", form.InviteCode)
	v.required("email", form.Email)
	v.required("password", form.Password)
	v.required("full_name", form.FullName)
	v.required("date_of_birth", form.DateOfBirth)
	v.required("cpf", cpf)
	v.required("phone", form.Phone)
	v.required("emergency_phone", form.EmergencyPhone)
	v.required("cep", form.CEP)
	v.required("address", form.Address)
	v.required("neighborhood", form.Neighborhood)
	v.required("address_number", form.AddressNumber)
	if cpf != "" && len(cpf) != 11 {
		v.invalid("cpf", "must have 11 digits")
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	payload := form
	payload.InviteCode = strings.TrimSpace(form.InviteCode)
	payload.CPF = cpf
	payload.Phone = format.Digits(form.Phone)
	payload.EmergencyPhone = format.Digits(form.EmergencyPhone)
	payload.CEP = format.Digits(form.CEP)

	return a.registerRole(ctx, "/register/instructor", payload, form.Email)
}

func (a *authService) registerRole(ctx context.Context, endpoint string, payload any, email string) (*models.AuthResponse, error) {
	raw, err := a.client.Request(ctx, http.MethodPost, endpoint, payload, client.Public())
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	res, err := client.DecodeAuthResponse(raw)
	if err != nil {
		return nil, err
	}
	if res.Token != "" {
		a.client.SetToken(ctx, res.Token)
	}
	a.logger.Info(ctx, "registered", "endpoint", endpoint, "email", email)
	return res, nil
}

func (a *authService) CurrentUser(ctx context.Context) (*models.CurrentUser, error) {
	return a.client.CurrentUser(ctx)
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.client.Logout(ctx); err != nil {
		return err
	}
	a.logger.Info(ctx, "logged out")
	return nil
}

// Session decodes the current token's claims. It returns client.ErrNoToken
// when there is no session.
func (a *authService) Session(ctx context.Context) (*Session, error) {
	token := a.client.Token(ctx)
	if token == "" {
		return nil, client.ErrNoToken
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return &Session{Opaque: true}, nil
	}

	s := &Session{
		Subject: firstClaim(claims, "sub", "id", "user_id"),
		Email:   firstClaim(claims, "email"),
		Role:    firstClaim(claims, "role", "user_type"),
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		s.ExpiresAt = exp.Time
		s.Expired = !a.now().Before(exp.Time)
	}
	return s, nil
}

// firstClaim returns the first of keys present as a string or number.
func firstClaim(claims jwt.MapClaims, keys ...string) string {
	for _, k := range keys {
		switch v := claims[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		case json.Number:
			return v.String()
		}
	}
	return ""
}
