package dto

import (
	"time"

	"planhub/internal/entity"
)

type OrganizationRequest struct {
	Name string `json:"name" validate:"required,max=255"`
	Slug string `json:"slug" validate:"omitempty,max=255"`
}

type OrganizationResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func OrganizationResponseFromEntity(org *entity.Organization) OrganizationResponse {
	return OrganizationResponse{
		ID:        org.ID.String(),
		Name:      org.Name,
		Slug:      org.Slug,
		CreatedAt: org.CreatedAt,
		UpdatedAt: org.UpdatedAt,
	}
}

func OrganizationResponsesFromEntities(orgs []entity.Organization) []OrganizationResponse {
	responses := make([]OrganizationResponse, 0, len(orgs))
	for i := range orgs {
		responses = append(responses, OrganizationResponseFromEntity(&orgs[i]))
	}
	return responses
}

type AddMemberRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"omitempty,oneof=owner member"`
}

type MemberResponse struct {
	ID       string    `json:"id"`
	UserID   string    `json:"user_id"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

func MemberResponseFromEntity(member *entity.Member) MemberResponse {
	return MemberResponse{
		ID:       member.ID.String(),
		UserID:   member.UserID.String(),
		Role:     string(member.Role),
		JoinedAt: member.JoinedAt,
	}
}

func MemberResponsesFromEntities(members []entity.Member) []MemberResponse {
	responses := make([]MemberResponse, 0, len(members))
	for i := range members {
		responses = append(responses, MemberResponseFromEntity(&members[i]))
	}
	return responses
}
