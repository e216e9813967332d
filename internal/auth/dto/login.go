package dto

type LoginInput struct {
	// IdentificationField accepts a username, email or phone number.
	IdentificationField string `json:"identification_field"`
	Password            string `json:"password"`
}
