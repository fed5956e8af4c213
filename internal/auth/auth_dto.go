package auth

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type CheckUserRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type CheckUserResponse struct {
	Exists       bool   `json:"exists"`
	UserID       string `json:"userId,omitempty"`
	FullName     string `json:"fullName,omitempty"`
	SignupMethod string `json:"signupMethod,omitempty"`
	IsActive     *bool  `json:"isActive,omitempty"`
}

type SendOtpRequest struct {
	Email string `json:"email" binding:"required,email"`
	Flow  string `json:"flow" binding:"omitempty,oneof=signup password_reset"`
}

// VerifyOtpRequest menuntaskan signup: kode, nama, dan password dalam satu
// call supaya seluruh flow bisa dibungkus satu transaksi.
type VerifyOtpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Otp      string `json:"otp" binding:"required,len=6"`
	FullName string `json:"fullName" binding:"omitempty,max=255"`
	Password string `json:"password" binding:"omitempty,min=6"`
}

type VerifyOtpResponse struct {
	Success bool   `json:"success"`
	UserID  string `json:"userId,omitempty"`
}

type VerifyOtpForgotRequest struct {
	Email string `json:"email" binding:"required,email"`
	Otp   string `json:"otp" binding:"required,len=6"`
}

type ResetPasswordRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Otp      string `json:"otp" binding:"required,len=6"`
	Password string `json:"password" binding:"required,min=6"`
}

type StartEmailChangeRequest struct {
	NewEmail string `json:"newEmail" binding:"required,email"`
}

type VerifyCurrentEmailRequest struct {
	Otp      string `json:"otp" binding:"required,len=6"`
	NewEmail string `json:"newEmail" binding:"required,email"`
}

type ConfirmEmailChangeRequest struct {
	NewEmail string `json:"newEmail" binding:"required,email"`
	Otp      string `json:"otp" binding:"required,len=6"`
}

type AuthResponse struct {
	ID       string   `json:"id"`
	Email    string   `json:"email"`
	FullName string   `json:"full_name"`
	Roles    []string `json:"roles"`
	IsActive bool     `json:"is_active"`
}
