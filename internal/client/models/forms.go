package models

// StudentRegistration is the self-service sign-up form for residents.
type StudentRegistration struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	FullName        string `json:"full_name"`
	CondoCode       string `json:"condo_code"`
	DateOfBirth     string `json:"date_of_birth"`
	Phone           string `json:"phone"`
	EmergencyPhone  string `json:"emergency_phone"`
	CPF             string `json:"cpf"`
	Block           string `json:"block"`
	Apartment       string `json:"apartment"`
	GuardianName    string `json:"guardian_name"`
	GuardianContact string `json:"guardian_contact"`
	DoctorName      string `json:"doctor_name"`
	DoctorCRM       string `json:"doctor_crm"`
}

// InstructorRegistration is the invite-based sign-up form for instructors.
type InstructorRegistration struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	FullName       string `json:"full_name"`
	InviteCode     string `json:"invite_code"`
	DateOfBirth    string `json:"date_of_birth"`
	CPF            string `json:"cpf"`
	Phone          string `json:"phone"`
	EmergencyPhone string `json:"emergency_phone"`
	CEP            string `json:"cep"`
	Address        string `json:"address"`
	AddressNumber  string `json:"address_number"`
	Neighborhood   string `json:"neighborhood"`
}

// UserForm is what an administrator fills in to create or edit a user.
type UserForm struct {
	FullName       string   `json:"full_name"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone"`
	EmergencyPhone string   `json:"emergency_phone"`
	CPF            string   `json:"cpf"`
	DateOfBirth    *string  `json:"date_of_birth"`
	Block          string   `json:"block"`
	Apartment      string   `json:"apartment"`
	CEP            string   `json:"cep"`
	Address        string   `json:"address"`
	AddressNumber  string   `json:"address_number"`
	Neighborhood   string   `json:"neighborhood"`
	UserType       UserType `json:"user_type"`
	CondominiumID  *int64   `json:"condominium_id"`
}

// ProfileUpdate is the administrator's own profile form.
type ProfileUpdate struct {
	FullName   string   `json:"full_name"`
	Phone      string   `json:"phone"`
	CPF        string   `json:"cpf"`
	Address    string   `json:"address"`
	AvatarURL  string   `json:"avatar_url"`
	PlanStatus string   `json:"plan_status"`
	UserType   UserType `json:"user_type"`
}
