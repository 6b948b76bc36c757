package handler

import "github.com/storerating/store-rating/internal/core/domain"

type signUpRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Address  string `json:"address"  validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required,min=6,nefield=CurrentPassword"`
}

type loginResponse struct {
	Token string          `json:"token"`
	User  domain.Identity `json:"user"`
}

type rateRequest struct {
	Rating int `json:"rating" validate:"required,min=1,max=5"`
}

type addUserRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Address  string `json:"address"  validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"     validate:"required,role"`
}

type addStoreRequest struct {
	Name    string `json:"storeName" validate:"required"`
	Email   string `json:"email"     validate:"omitempty,email"`
	Address string `json:"address"   validate:"required"`
	OwnerID string `json:"ownerId"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type passthroughResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}
