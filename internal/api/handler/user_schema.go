package handler

import (
	"time"

	"github.com/meridianhq/user-directory/internal/core/domain"
	"github.com/meridianhq/user-directory/internal/core/ports"
)

const birthDateLayout = "2006-01-02"

// errorResponse is the standard error envelope returned on 4xx/5xx responses
// rendered directly by handlers.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Email     string `json:"email"     validate:"required,email"`
	Password  string `json:"password"  validate:"required,min=6"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"  validate:"required"`
	BirthDate string `json:"birthDate" validate:"required,datetime=2006-01-02"`
	City      string `json:"city"      validate:"required"`
	ZipCode   string `json:"zipCode"   validate:"required"`
}

type createUserRequest struct {
	Email     string `json:"email"     validate:"required,email"`
	Password  string `json:"password"  validate:"required,min=6"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"  validate:"required"`
	BirthDate string `json:"birthDate" validate:"required,datetime=2006-01-02"`
	City      string `json:"city"      validate:"required"`
	ZipCode   string `json:"zipCode"   validate:"required"`
}

// updateUserRequest is a partial update: absent fields leave the record
// untouched. The role is deliberately not accepted here.
type updateUserRequest struct {
	Email     *string `json:"email"     validate:"omitempty,email"`
	Password  *string `json:"password"  validate:"omitempty,min=6"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	BirthDate *string `json:"birthDate" validate:"omitempty,datetime=2006-01-02"`
	City      *string `json:"city"`
	ZipCode   *string `json:"zipCode"`
}

// --- Response types ---

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

type userEnvelope struct {
	Status string       `json:"status"`
	Data   *domain.User `json:"data"`
}

type userListEnvelope struct {
	Status string        `json:"status"`
	Data   []domain.User `json:"data"`
}

// --- Request → service input ---

func toRegisterInput(req registerRequest) ports.RegisterInput {
	birthDate, _ := time.Parse(birthDateLayout, req.BirthDate)
	return ports.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		BirthDate: birthDate,
		City:      req.City,
		ZipCode:   req.ZipCode,
	}
}

func toCreateInput(req createUserRequest) ports.CreateUserInput {
	birthDate, _ := time.Parse(birthDateLayout, req.BirthDate)
	return ports.CreateUserInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		BirthDate: birthDate,
		City:      req.City,
		ZipCode:   req.ZipCode,
	}
}

func toUpdateInput(req updateUserRequest) ports.UpdateUserInput {
	in := ports.UpdateUserInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		City:      req.City,
		ZipCode:   req.ZipCode,
	}
	if req.BirthDate != nil {
		if birthDate, err := time.Parse(birthDateLayout, *req.BirthDate); err == nil {
			in.BirthDate = &birthDate
		}
	}
	return in
}
