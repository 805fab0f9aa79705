package dto

import (
	"zifaf/internal/domains/user/model"
	"zifaf/shared"
	gDto "zifaf/shared/dto"
)

// UpdateUserRequest represents the request for updating a user (admin)
type UpdateUserRequest struct {
	Email        *string `db:"email"         json:"email"         validate:"omitempty,email"`
	FullName     *string `db:"full_name"     json:"full_name"     validate:"omitempty,min=2,max=100"`
	Phone        *string `db:"phone"         json:"phone"         validate:"omitempty,max=20"`
	City         *string `db:"city"          json:"city"          validate:"omitempty,max=100"`
	Role         *string `db:"role"          json:"role"          validate:"omitempty,oneof=admin vendor customer"`
	Active       *bool   `db:"active"        json:"active"`
	ProfileImage *string `db:"profile_image" json:"profile_image"`
}

// UpdateProfileRequest represents the request for updating user profile (self)
type UpdateProfileRequest struct {
	Email        *string `db:"email"         json:"email"         validate:"omitempty,email"`
	FullName     *string `db:"full_name"     json:"full_name"     validate:"omitempty,min=2,max=100"`
	Phone        *string `db:"phone"         json:"phone"         validate:"omitempty,max=20"`
	City         *string `db:"city"          json:"city"          validate:"omitempty,max=100"`
	ProfileImage *string `db:"profile_image" json:"profile_image"`
}

// UserResponse represents the response for a single user
type UserResponse struct {
	ID           string  `json:"id"`
	Email        string  `json:"email"`
	FullName     *string `json:"full_name"`
	Phone        *string `json:"phone"`
	City         *string `json:"city"`
	Role         string  `json:"role"`
	ProfileImage *string `json:"profile_image"`
	LastLogin    *string `json:"last_login"`
	Active       bool    `json:"active"`
	gDto.Metadata
}

// FromModel converts a user model to UserResponse
func (r *UserResponse) FromModel(user model.User) {
	r.ID = user.ID
	r.Email = user.Email
	r.FullName = user.FullName
	r.Phone = user.Phone
	r.City = user.City
	r.Role = user.Role
	r.ProfileImage = user.ProfileImage
	r.LastLogin = user.LastLogin
	r.Active = user.Active
	r.Metadata.FromModel(user.Metadata)
}

// GetUsersResponse represents the response for getting multiple users
type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

// FromModels converts user models to GetUsersResponse
func (r *GetUsersResponse) FromModels(users []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(users))
	for i, user := range users {
		r.Users[i].FromModel(user)
	}
}
