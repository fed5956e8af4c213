package profile

type UpdateProfileRequest struct {
	FullName  *string `json:"full_name" binding:"omitempty,min=1,max=255"`
	Phone     *string `json:"phone" binding:"omitempty,max=32"`
	AvatarURL *string `json:"avatar_url" binding:"omitempty,url"`
}

type ForgotEmailRequest struct {
	SearchBy string `json:"searchBy" binding:"required"`
	Value    string `json:"value" binding:"required"`
}

type ForgotEmailResponse struct {
	Email string `json:"email"`
}

type ProfileResponse struct {
	UserID        string `json:"user_id"`
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone,omitempty"`
	AvatarURL     string `json:"avatar_url,omitempty"`
	SignupMethod  string `json:"signup_method"`
	EmailVerified bool   `json:"email_verified"`
	PasswordSet   bool   `json:"password_set"`
	IsActive      bool   `json:"is_active"`
	CreatedAt     string `json:"created_at"`
}

func mapProfileResponse(p *Profile) ProfileResponse {
	return ProfileResponse{
		UserID:        p.UserID.String(),
		FullName:      p.FullName,
		Email:         p.Email,
		Phone:         p.Phone,
		AvatarURL:     p.AvatarURL,
		SignupMethod:  p.SignupMethod,
		EmailVerified: p.EmailVerified,
		PasswordSet:   p.PasswordSet,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
