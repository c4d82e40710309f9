package dto

// EmailRequest carries the email-entry submission.
type EmailRequest struct {
	Email string `json:"email"`
}

// PasswordRequest carries the password-entry submission.
type PasswordRequest struct {
	Password string `json:"password"`
}

// CreatePasswordRequest carries the first-access password creation form.
type CreatePasswordRequest struct {
	Password string `json:"password"`
	Confirm  string `json:"confirm"`
}

// RegisterRequest carries the card-request form.
type RegisterRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	CPF       string `json:"cpf"`
	BirthDate string `json:"birthDate"`
	CardType  string `json:"cardType"`
}

// StepResponse reports the flow's next step.
type StepResponse struct {
	Step string `json:"step"`
}
