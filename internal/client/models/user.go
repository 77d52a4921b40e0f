// Package models defines the records exchanged with the Fusion backend.
// The client only transports them; validation lives in the services layer.
package models

import "encoding/json"

// UserType is the role a user holds in the condominium.
type UserType string

const (
	UserTypeStudent    UserType = "student"
	UserTypeInstructor UserType = "instructor"
	UserTypeAdmin      UserType = "admin"
)

// DefaultRegisterRole is sent by Register when the caller gives no role.
const DefaultRegisterRole = "aluno"

// User is a user record as produced by the backend.
type User struct {
	ID              ID       `json:"id,omitempty"`
	Email           string   `json:"email,omitempty"`
	FullName        string   `json:"full_name,omitempty"`
	Phone           string   `json:"phone,omitempty"`
	EmergencyPhone  string   `json:"emergency_phone,omitempty"`
	CPF             string   `json:"cpf,omitempty"`
	DateOfBirth     string   `json:"date_of_birth,omitempty"`
	CEP             string   `json:"cep,omitempty"`
	Address         string   `json:"address,omitempty"`
	AddressNumber   string   `json:"address_number,omitempty"`
	Neighborhood    string   `json:"neighborhood,omitempty"`
	Block           string   `json:"block,omitempty"`
	Apartment       string   `json:"apartment,omitempty"`
	CondominiumID   *int64   `json:"condominium_id,omitempty"`
	CondoCode       string   `json:"condo_code,omitempty"`
	UserType        UserType `json:"user_type,omitempty"`
	Role            string   `json:"role,omitempty"`
	AvatarURL       string   `json:"avatar_url,omitempty"`
	PlanStatus      string   `json:"plan_status,omitempty"`
	GuardianName    string   `json:"guardian_name,omitempty"`
	GuardianContact string   `json:"guardian_contact,omitempty"`
	DoctorName      string   `json:"doctor_name,omitempty"`
	DoctorCRM       string   `json:"doctor_crm,omitempty"`
}

// CurrentUser is the normalized answer to "who am I".
type CurrentUser struct {
	User            *User `json:"user"`
	Unauthenticated bool  `json:"unauthenticated,omitempty"`
}

// AuthResponse is returned by the login and registration endpoints.
type AuthResponse struct {
	Token string `json:"token,omitempty"`
	User  *User  `json:"user,omitempty"`

	// Raw keeps the complete response for callers that need fields the
	// struct does not model.
	Raw json.RawMessage `json:"-"`
}

// UploadResult is returned by the upload endpoint.
type UploadResult struct {
	URL string `json:"url"`

	Raw json.RawMessage `json:"-"`
}
