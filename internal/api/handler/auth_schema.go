package handler

// --- Request types ---

// registerRequest is the "data" part of the multipart register form.
type registerRequest struct {
	Name     string `json:"name"     validate:"required,personname"`
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
}

// updateRegisterRequest is the "data" part of the multipart update form.
// Password is optional; when present it must satisfy the password policy.
type updateRegisterRequest struct {
	Name      string `json:"name"      validate:"required,personname"`
	Username  string `json:"username"  validate:"required"`
	Email     string `json:"email"     validate:"required,email"`
	Password  string `json:"password"  validate:"omitempty,password"`
	BirthDate string `json:"birthDate" validate:"required,datetime=2006-01-02"`
	JobTitle  string `json:"jobTitle"  validate:"required"`
	Location  string `json:"location"  validate:"required"`
}

type loginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail" validate:"required"`
	Password        string `json:"password"        validate:"required"`
}

type updatePasswordRequest struct {
	OldPassword     string `json:"oldPassword"     validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required,password"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,password"`
}

// --- Response types ---

// messageResponse wraps the plain confirmation strings the API returns on
// successful mutations.
type messageResponse struct {
	Message string `json:"message"`
}

type loginResponse struct {
	AccessToken     string `json:"accessToken"`
	TokenType       string `json:"tokenType"`
	Role            string `json:"role"`
	UsernameOrEmail string `json:"usernameOrEmail"`
}

// userResponse is the client view of an account. The password hash never
// leaves the domain layer.
type userResponse struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Username     string   `json:"username"`
	Email        string   `json:"email"`
	BirthDate    string   `json:"birthDate,omitempty"`
	JobTitle     string   `json:"jobTitle,omitempty"`
	Location     string   `json:"location,omitempty"`
	ProfilePhoto string   `json:"profilePhoto,omitempty"`
	Roles        []string `json:"roles"`
	CreatedBy    string   `json:"createdBy,omitempty"`
	UpdatedBy    string   `json:"updatedBy,omitempty"`
}

type pagedUsersResponse struct {
	Data          []userResponse `json:"data"`
	Page          int            `json:"page"`
	Size          int            `json:"size"`
	TotalElements int64          `json:"total_elements"`
	TotalPages    int            `json:"total_pages"`
}
