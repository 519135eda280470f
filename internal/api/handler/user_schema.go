package handler

type updateNameRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type updateEmailRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

type deleteMeRequest struct {
	Password string `json:"password" validate:"required"`
}

type validateEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}
