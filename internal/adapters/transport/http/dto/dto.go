package dto

import "github.com/halitkalayci/gyk-backend/internal/domain/plate"

type RegisterDTO struct {
	Email    string `json:"email"    validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=30"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginDTO struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateUserDTO struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type PlakaResponse struct {
	Detections      []plate.Detection `json:"detections"`
	TotalDetections int               `json:"total_detections"`
	Message         string            `json:"message"`
}

type ModelStatusResponse struct {
	ModelLoaded bool   `json:"model_loaded"`
	ModelURL    string `json:"model_url"`
	Status      string `json:"status"`
}
