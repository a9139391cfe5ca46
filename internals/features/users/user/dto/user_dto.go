package dto

import "strings"

type AddressRequest struct {
	Country     string  `json:"country" validate:"required,max=100"`
	City        string  `json:"city" validate:"required,max=100"`
	Street      string  `json:"street" validate:"required,max=255"`
	HouseNumber *string `json:"house_number,omitempty" validate:"omitempty,max=30"`
	Floor       *string `json:"floor,omitempty" validate:"omitempty,max=30"`
}

type UserCreateRequest struct {
	Name     string          `json:"name" validate:"required,min=2,max=50"`
	Email    string          `json:"email" validate:"required,email"`
	Password string          `json:"password" validate:"required,min=6"`
	Phone    *string         `json:"phone,omitempty" validate:"omitempty,max=30"`
	Role     *string         `json:"role,omitempty" validate:"omitempty,oneof=USER ADMIN"`
	Address  *AddressRequest `json:"address,omitempty"`
}

func (r *UserCreateRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

type UserUpdateRequest struct {
	Name    *string         `json:"name,omitempty" validate:"omitempty,min=2,max=50"`
	Email   *string         `json:"email,omitempty" validate:"omitempty,email"`
	Phone   *string         `json:"phone,omitempty" validate:"omitempty,max=30"`
	Role    *string         `json:"role,omitempty" validate:"omitempty,oneof=USER ADMIN"`
	Address *AddressRequest `json:"address,omitempty"`
}

func (r *UserUpdateRequest) Normalize() {
	if r.Email != nil {
		e := strings.ToLower(strings.TrimSpace(*r.Email))
		r.Email = &e
	}
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		r.Name = &n
	}
}

type PasswordUpdateRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=6"`
}
