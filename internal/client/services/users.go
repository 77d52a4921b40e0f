package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/fusion-condo/fusion/internal/client/client"
	"github.com/fusion-condo/fusion/internal/client/models"
	"github.com/fusion-condo/fusion/internal/format"
	"github.com/fusion-condo/fusion/internal/logging"
)

const usersTable = "users"

// Avatar is an image to upload with a profile update.
type Avatar struct {
	Filename string
	Content  io.Reader
}

// UserService holds the administrator's user-management flows.
type UserService interface {
	// SaveUser updates existing when it is non-nil and creates a new user
	// otherwise.
	SaveUser(ctx context.Context, existing *models.User, form models.UserForm) (json.RawMessage, error)
	// UpdateMyProfile saves the administrator's own profile and returns the
	// refreshed current user. avatar may be nil.
	UpdateMyProfile(ctx context.Context, form models.ProfileUpdate, avatar *Avatar) (*models.CurrentUser, error)
}

type userService struct {
	client client.Client
	logger logging.Logger
}

func NewUserService(c client.Client, logger logging.Logger) UserService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &userService{client: c, logger: logger}
}

func (s *userService) SaveUser(ctx context.Context, existing *models.User, form models.UserForm) (json.RawMessage, error) {
	payload := form
	payload.Phone = format.Digits(form.Phone)
	payload.EmergencyPhone = format.Digits(form.EmergencyPhone)
	payload.CEP = format.Digits(form.CEP)
	if payload.UserType == "" {
		payload.UserType = models.UserTypeStudent
	}
	if payload.DateOfBirth != nil && *payload.DateOfBirth == "" {
		payload.DateOfBirth = nil
	}

	if existing != nil {
		if existing.ID == "" {
			return nil, &ValidationError{Fields: []FieldError{{Field: "id", Reason: reasonRequired}}}
		}
		// the email of an existing account cannot be changed from here
		payload.Email = existing.Email

		raw, err := s.client.Update(ctx, usersTable, existing.ID.String(), payload)
		if err != nil {
			return nil, fmt.Errorf("update user %s: %w", existing.ID, err)
		}
		s.logger.Info(ctx, "user updated", "id", existing.ID.String())
		return raw, nil
	}

	raw, err := s.client.Request(ctx, http.MethodPost, "/admin/users", payload)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.logger.Info(ctx, "user created", "email", payload.Email)
	return raw, nil
}

func (s *userService) UpdateMyProfile(ctx context.Context, form models.ProfileUpdate, avatar *Avatar) (*models.CurrentUser, error) {
	var v validator
	v.required("full_name", form.FullName)
	v.required("phone", form.Phone)
	v.required("cpf", form.CPF)
	v.required("address", form.Address)
	if err := v.err(); err != nil {
		return nil, err
	}

	payload := form
	if avatar != nil {
		up, err := s.client.UploadFile(ctx, avatar.Filename, avatar.Content)
		switch {
		case err != nil:
			s.logger.Warn(ctx, "avatar upload failed, keeping the previous one", "error", err)
		case up.URL != "":
			payload.AvatarURL = up.URL
		}
	}
	payload.Phone = format.Digits(form.Phone)
	payload.CPF = format.Digits(form.CPF)
	payload.PlanStatus = "active"
	payload.UserType = models.UserTypeAdmin

	if _, err := s.client.Request(ctx, http.MethodPut, "/me", payload); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	cu, err := s.client.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("refresh profile: %w", err)
	}
	return cu, nil
}
