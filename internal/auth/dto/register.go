package dto

type RegisterInput struct {
	Username    string `json:"username"`
	FullName    string `json:"full_name"`
	Password    string `json:"password"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	GroupNumber string `json:"group_number"`
	University  string `json:"university"`
}

type ConfirmInput struct {
	Code string `json:"code"`
}

type ResendInput struct {
	Email string `json:"email"`
}
