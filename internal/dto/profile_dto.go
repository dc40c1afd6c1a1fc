package dto

import (
	"time"

	"planhub/internal/entity"
)

type ProfileRequest struct {
	FirstName         string     `json:"first_name" validate:"required,max=100"`
	LastName          string     `json:"last_name" validate:"required,max=100"`
	DateOfBirth       *time.Time `json:"date_of_birth" validate:"omitempty"`
	LanguagePreferred string     `json:"language_preferred" validate:"omitempty,max=10"`
}

type ProfileResponse struct {
	ID                string     `json:"id"`
	FirstName         string     `json:"first_name"`
	LastName          string     `json:"last_name"`
	DateOfBirth       *time.Time `json:"date_of_birth,omitempty"`
	LanguagePreferred string     `json:"language_preferred"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func ProfileResponseFromEntity(profile *entity.Profile) ProfileResponse {
	return ProfileResponse{
		ID:                profile.ID.String(),
		FirstName:         profile.FirstName,
		LastName:          profile.LastName,
		DateOfBirth:       profile.DateOfBirth,
		LanguagePreferred: profile.LanguagePreferred,
		CreatedAt:         profile.CreatedAt,
		UpdatedAt:         profile.UpdatedAt,
	}
}
