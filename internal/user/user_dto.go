package user

import "time"

type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"fullName" binding:"required"`
}

type UpdateEmailRequest struct {
	UserID   string `json:"userId" binding:"required,uuid"`
	OldEmail string `json:"oldEmail" binding:"required,email"`
	NewEmail string `json:"newEmail" binding:"required,email"`
}

type DeleteUserRequest struct {
	UserID string `json:"userId" binding:"required,uuid"`
}

type ToggleStatusRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

type InviteRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

type UserWithRolesResponse struct {
	ID       string   `json:"id"`
	Email    string   `json:"email"`
	FullName string   `json:"fullName"`
	IsActive bool     `json:"isActive"`
	Roles    []string `json:"roles"`
}

type InvitationResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	InvitedBy string    `json:"invitedBy"`
	CreatedAt time.Time `json:"createdAt"`
}

func mapInvitationResponse(inv *TeamInvitation) InvitationResponse {
	return InvitationResponse{
		ID:        inv.ID.String(),
		Email:     inv.Email,
		Role:      inv.Role,
		Status:    inv.Status,
		InvitedBy: inv.InvitedBy.String(),
		CreatedAt: inv.CreatedAt,
	}
}
