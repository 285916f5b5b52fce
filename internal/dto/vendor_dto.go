package dto

type CreateVendorRequest struct {
	Name          string `json:"name"          validate:"required,max=200"`
	Email         string `json:"email"         validate:"omitempty,email"`
	Phone         string `json:"phone"         validate:"omitempty,max=30"`
	Address       string `json:"address"       validate:"omitempty,max=500"`
	ContactPerson string `json:"contactPerson" validate:"omitempty,max=200"`
}
