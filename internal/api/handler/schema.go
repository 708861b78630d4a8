package handler

import (
	"github.com/shopspring/decimal"

	"github.com/foodhub/ordering-system/internal/api/response"
	"github.com/foodhub/ordering-system/internal/core/domain"
)

// --- Auth ---

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type loginResponse struct {
	User *domain.User `json:"user"`
	domain.TokenPair
}

type registerRequest struct {
	Email       string `json:"email" validate:"required,email,min=6,max=50"`
	UserName    string `json:"userName" validate:"omitempty,min=6,max=50"`
	PhoneNumber string `json:"phoneNumber" validate:"omitempty,phone"`
	Password    string `json:"password" validate:"required,min=8,max=25,password"`
}

func (registerRequest) fieldErrors() map[string]*domain.Error {
	return map[string]*domain.Error{
		"email.required":    domain.ErrEmailRequired,
		"email.email":       domain.ErrEmailInvalid,
		"email.min":         domain.ErrEmailLength,
		"email.max":         domain.ErrEmailLength,
		"userName.min":      domain.ErrUsernameLength,
		"userName.max":      domain.ErrUsernameLength,
		"phoneNumber.phone": domain.ErrPhoneNumberInvalid,
		"password.required": domain.ErrPasswordRequired,
		"password.min":      domain.ErrPasswordLength,
		"password.max":      domain.ErrPasswordLength,
		"password.password": domain.ErrPasswordComplexity,
	}
}

// --- Users ---

type updateProfileRequest struct {
	Email       domain.Optional[string] `json:"email" swaggertype:"string"`
	UserName    domain.Optional[string] `json:"userName" swaggertype:"string"`
	PhoneNumber domain.Optional[string] `json:"phoneNumber" swaggertype:"string"`
}

// profileFields is the validated view of the non-empty fields of an
// updateProfileRequest.
type profileFields struct {
	Email       *string `json:"email" validate:"omitempty,email,min=6,max=50"`
	UserName    *string `json:"userName" validate:"omitempty,min=6,max=50"`
	PhoneNumber *string `json:"phoneNumber" validate:"omitempty,phone"`
}

func (profileFields) fieldErrors() map[string]*domain.Error {
	return map[string]*domain.Error{
		"email.email":       domain.ErrEmailInvalid,
		"email.min":         domain.ErrEmailLength,
		"email.max":         domain.ErrEmailLength,
		"userName.min":      domain.ErrUsernameLength,
		"userName.max":      domain.ErrUsernameLength,
		"phoneNumber.phone": domain.ErrPhoneNumberInvalid,
	}
}

func (r updateProfileRequest) fields() profileFields {
	present := func(o domain.Optional[string]) *string {
		if o.Present() && o.Value != "" {
			v := o.Value
			return &v
		}
		return nil
	}
	return profileFields{
		Email:       present(r.Email),
		UserName:    present(r.UserName),
		PhoneNumber: present(r.PhoneNumber),
	}
}

type userListResponse struct {
	response.Envelope
	TotalUsers  int64 `json:"totalUsers"`
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	HasNextPage bool  `json:"hasNextPage"`
}

// --- Categories ---

type createCategoryRequest struct {
	Name           string  `json:"name" validate:"required,max=50"`
	Description    string  `json:"description" validate:"required,min=5,max=250"`
	ParentCategory *string `json:"parentCategory"`
}

func (createCategoryRequest) fieldErrors() map[string]*domain.Error {
	return map[string]*domain.Error{
		"name.required":        domain.ErrCategoryNameRequired,
		"name.max":             domain.ErrCategoryNameLength,
		"description.required": domain.ErrDescriptionRequired,
		"description.min":      domain.ErrDescriptionLength,
		"description.max":      domain.ErrDescriptionLength,
	}
}

type updateCategoryRequest struct {
	Name           domain.Optional[string] `json:"name" swaggertype:"string"`
	Description    domain.Optional[string] `json:"description" swaggertype:"string"`
	ParentCategory domain.Optional[string] `json:"parentCategory" swaggertype:"string"`
}

type categoryListResponse struct {
	response.Envelope
	CurrentPage     int   `json:"currentPage"`
	TotalCategories int64 `json:"totalCategories"`
	HasNext         bool  `json:"hasNext"`
}

// --- Products ---

type createProductRequest struct {
	Name        string           `json:"name" validate:"required,max=50"`
	Description string           `json:"description" validate:"required,min=5,max=250"`
	Price       *decimal.Decimal `json:"price" validate:"required" swaggertype:"number"`
	CategoryID  string           `json:"categoryId" validate:"required"`
	Stock       *int             `json:"stock" validate:"required,min=0"`
}

func (createProductRequest) fieldErrors() map[string]*domain.Error {
	return map[string]*domain.Error{
		"name.required":        domain.ErrProductNameRequired,
		"name.max":             domain.ErrProductNameLength,
		"description.required": domain.ErrDescriptionRequired,
		"description.min":      domain.ErrDescriptionLength,
		"description.max":      domain.ErrDescriptionLength,
		"price.required":       domain.ErrPriceRequired,
		"categoryId.required":  domain.ErrCategoryIDRequired,
		"stock.required":       domain.ErrStockRequired,
		"stock.min":            domain.ErrInvalidStock,
	}
}

type updateProductRequest struct {
	Name        domain.Optional[string]          `json:"name" swaggertype:"string"`
	Description domain.Optional[string]          `json:"description" swaggertype:"string"`
	Price       domain.Optional[decimal.Decimal] `json:"price" swaggertype:"number"`
	CategoryID  domain.Optional[string]          `json:"categoryId" swaggertype:"string"`
	Stock       domain.Optional[int]             `json:"stock" swaggertype:"integer"`
}

type productListResponse struct {
	response.Envelope
	CurrentPage   int   `json:"currentPage"`
	TotalPages    int   `json:"totalPages"`
	HasNextPage   bool  `json:"hasNextPage"`
	TotalProducts int64 `json:"totalProducts"`
}
