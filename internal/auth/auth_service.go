package auth

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"strings"
	"time"

	"go-workforce/internal/activitylog"
	autherrors "go-workforce/internal/auth/errors"
	"go-workforce/internal/notification"
	"go-workforce/internal/otp"
	"go-workforce/internal/profile"
	"go-workforce/internal/rbac"
	"go-workforce/internal/shared/apperror"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, resp AuthResponse, err error)
	RefreshToken(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, resp AuthResponse, err error)
	GetMe(ctx context.Context, userID string) (*AuthResponse, error)

	CheckUser(ctx context.Context, email string) (CheckUserResponse, error)
	SendOtp(ctx context.Context, email, flow string) error

	// CompleteSignup: verify OTP, buat/perbarui identity, upsert profile,
	// assign role default. Seluruhnya satu transaksi supaya crash di tengah
	// tidak meninggalkan OTP verified tanpa akun.
	CompleteSignup(ctx context.Context, req VerifyOtpRequest) (VerifyOtpResponse, error)

	VerifyOtpForgot(ctx context.Context, email, code string) error
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error

	// Ganti email dua tahap: OTP ke email lama dulu, lalu OTP kedua ke email
	// baru. Hanya verifikasi OTP email baru yang mengubah kolom email.
	StartEmailChange(ctx context.Context, userID, newEmail string) error
	VerifyCurrentEmail(ctx context.Context, userID, code, newEmail string) error
	ConfirmEmailChange(ctx context.Context, userID, newEmail, code string) error
}

type service struct {
	db       *sql.DB
	repo     Repository
	profiles profile.Repository
	rbacRepo rbac.Repository
	rbacSvc  rbac.Service
	otpSvc   otp.Service
	activity activitylog.Writer
	notifier notification.Service
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	profiles profile.Repository,
	rbacRepo rbac.Repository,
	rbacSvc rbac.Service,
	otpSvc otp.Service,
	activity activitylog.Writer,
	notifier notification.Service,
	logger *zap.Logger,
) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		db:       db,
		repo:     repo,
		profiles: profiles,
		rbacRepo: rbacRepo,
		rbacSvc:  rbacSvc,
		otpSvc:   otpSvc,
		activity: activity,
		notifier: notifier,
		logger:   logger.Named("auth"),
	}
}

func (s *service) Login(ctx context.Context, email, password string) (string, string, AuthResponse, error) {
	// 1. Ambil identity
	identity, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	// 2. Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(identity.Password), []byte(password)); err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	// 3. Profile nonaktif memblokir login, bukan sekadar flag tampilan admin.
	prof, err := s.profiles.FindByUserID(ctx, identity.ID.String())
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", "", AuthResponse{}, err
	}
	if prof != nil && !prof.IsActive {
		return "", "", AuthResponse{}, autherrors.ErrAccountDeactivated
	}

	// 4. Generate token
	accessToken, err := s.generateToken(identity.ID.String(), time.Minute*15)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	refreshToken, err := s.generateToken(identity.ID.String(), time.Hour*24*7)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return accessToken, refreshToken, s.buildAuthResponse(ctx, identity, prof), nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, string, AuthResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidUserID
	}

	identity, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrUserNotFound
	}

	prof, err := s.profiles.FindByUserID(ctx, identity.ID.String())
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", "", AuthResponse{}, err
	}
	if prof != nil && !prof.IsActive {
		return "", "", AuthResponse{}, autherrors.ErrAccountDeactivated
	}

	newAccessToken, err := s.generateToken(identity.ID.String(), time.Minute*15)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	newRefreshToken, err := s.generateToken(identity.ID.String(), time.Hour*24*7)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return newAccessToken, newRefreshToken, s.buildAuthResponse(ctx, identity, prof), nil
}

func (s *service) GetMe(ctx context.Context, userID string) (*AuthResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, autherrors.ErrInvalidUserID
	}

	identity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, autherrors.ErrUserNotFound
	}

	prof, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	resp := s.buildAuthResponse(ctx, identity, prof)
	return &resp, nil
}

func (s *service) CheckUser(ctx context.Context, email string) (CheckUserResponse, error) {
	prof, err := s.profiles.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CheckUserResponse{Exists: false}, nil
		}
		return CheckUserResponse{}, err
	}

	isActive := prof.IsActive
	return CheckUserResponse{
		Exists:       true,
		UserID:       prof.UserID.String(),
		FullName:     prof.FullName,
		SignupMethod: prof.SignupMethod,
		IsActive:     &isActive,
	}, nil
}

func (s *service) SendOtp(ctx context.Context, email, flow string) error {
	// Endpoint publik hanya boleh menerbitkan flow publik. OTP ganti email
	// diterbitkan service sendiri setelah tahap sebelumnya terverifikasi.
	switch flow {
	case "":
		flow = otp.FlowSignup
	case otp.FlowSignup, otp.FlowPasswordReset:
	default:
		return apperror.InvalidField("flow")
	}
	return s.otpSvc.Request(ctx, email, flow)
}

func (s *service) CompleteSignup(ctx context.Context, req VerifyOtpRequest) (VerifyOtpResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return VerifyOtpResponse{}, err
	}
	defer tx.Rollback()

	// 1. Konsumsi OTP di transaksi yang sama dengan pembuatan akun.
	if err := s.otpSvc.WithTx(tx).Verify(ctx, req.Email, req.Otp, otp.FlowSignup); err != nil {
		return VerifyOtpResponse{}, err
	}

	// 2. Buat atau perbarui identity.
	repoTx := s.repo.WithTx(tx)
	identity, err := repoTx.GetByEmail(ctx, req.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return VerifyOtpResponse{}, err
		}
		if req.Password == "" {
			return VerifyOtpResponse{}, apperror.RequiredField("password")
		}
		hashed, hashErr := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if hashErr != nil {
			return VerifyOtpResponse{}, hashErr
		}
		identity = &Identity{
			ID:       uuid.New(),
			Email:    req.Email,
			Password: string(hashed),
		}
		if err := repoTx.Create(ctx, identity); err != nil {
			return VerifyOtpResponse{}, err
		}
	} else if req.Password != "" {
		hashed, hashErr := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if hashErr != nil {
			return VerifyOtpResponse{}, hashErr
		}
		if err := repoTx.UpdatePassword(ctx, identity.ID, string(hashed)); err != nil {
			return VerifyOtpResponse{}, err
		}
	}

	// 3. Upsert profile; retry signup tidak boleh menghasilkan row ganda.
	if err := s.profiles.WithTx(tx).Upsert(ctx, &profile.Profile{
		ID:            uuid.New(),
		UserID:        identity.ID,
		FullName:      strings.TrimSpace(req.FullName),
		Email:         req.Email,
		SignupMethod:  profile.SignupMethodManual,
		EmailVerified: true,
		PasswordSet:   req.Password != "",
		IsActive:      true,
	}); err != nil {
		return VerifyOtpResponse{}, err
	}

	// 4. Role default employee, idempotent: assignment yang sudah ada
	// (termasuk hasil promosi admin) tidak ditimpa.
	rbacTx := s.rbacRepo.WithTx(tx)
	assignments, err := rbacTx.ListAssignments(ctx, identity.ID.String())
	if err != nil {
		return VerifyOtpResponse{}, err
	}
	if len(assignments) == 0 {
		row := rbac.NewUserRole(identity.ID, rbac.SystemRoleRef(rbac.RoleEmployee), identity.ID)
		if err := rbacTx.ReplaceAssignment(ctx, row); err != nil {
			return VerifyOtpResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return VerifyOtpResponse{}, err
	}

	if err := s.rbacSvc.Invalidate(ctx, identity.ID.String()); err != nil {
		s.logger.Warn("access invalidation failed", zap.Error(err))
	}

	s.audit(ctx, identity.ID.String(), activitylog.Entry{
		UserID:      identity.ID.String(),
		ActionType:  activitylog.ActionSignup,
		Description: "Account created via OTP signup",
		Module:      "auth",
	})

	return VerifyOtpResponse{Success: true, UserID: identity.ID.String()}, nil
}

func (s *service) VerifyOtpForgot(ctx context.Context, email, code string) error {
	return s.otpSvc.Verify(ctx, email, code, otp.FlowPasswordReset)
}

func (s *service) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Verify di sini idempotent untuk kode yang sama: flow dua-call (verify
	// dulu, reset belakangan) lolos hanya dengan kode yang tadi diverifikasi.
	if err := s.otpSvc.WithTx(tx).Verify(ctx, req.Email, req.Otp, otp.FlowPasswordReset); err != nil {
		return err
	}

	repoTx := s.repo.WithTx(tx)
	identity, err := repoTx.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return autherrors.ErrUserNotFound
		}
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := repoTx.UpdatePassword(ctx, identity.ID, string(hashed)); err != nil {
		return err
	}

	profTx := s.profiles.WithTx(tx)
	prof, err := profTx.FindByUserID(ctx, identity.ID.String())
	if err == nil {
		prof.PasswordSet = true
		if err := profTx.Update(ctx, prof); err != nil {
			return err
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.audit(ctx, identity.ID.String(), activitylog.Entry{
		UserID:      identity.ID.String(),
		ActionType:  activitylog.ActionPasswordReset,
		Description: "Password reset via OTP",
		Module:      "auth",
	})

	return nil
}

func (s *service) StartEmailChange(ctx context.Context, userID, newEmail string) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return autherrors.ErrInvalidUserID
	}
	identity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return autherrors.ErrUserNotFound
	}

	if err := s.ensureEmailFree(ctx, newEmail); err != nil {
		return err
	}

	// OTP pertama ke email yang sekarang; pemilik lama harus setuju dulu.
	return s.otpSvc.Request(ctx, identity.Email, otp.FlowEmailChangeCurrent)
}

func (s *service) VerifyCurrentEmail(ctx context.Context, userID, code, newEmail string) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return autherrors.ErrInvalidUserID
	}
	identity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return autherrors.ErrUserNotFound
	}

	// Verifikasi email lama tidak pernah menyentuh kolom email.
	if err := s.otpSvc.Verify(ctx, identity.Email, code, otp.FlowEmailChangeCurrent); err != nil {
		return err
	}

	return s.otpSvc.Request(ctx, newEmail, otp.FlowEmailChangeNew)
}

func (s *service) ConfirmEmailChange(ctx context.Context, userID, newEmail, code string) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return autherrors.ErrInvalidUserID
	}
	identity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return autherrors.ErrUserNotFound
	}

	if err := s.ensureEmailFree(ctx, newEmail); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Hanya kode ber-flow email-change-new yang diterima; endpoint send-otp
	// publik tidak pernah menerbitkan flow ini.
	if err := s.otpSvc.WithTx(tx).Verify(ctx, newEmail, code, otp.FlowEmailChangeNew); err != nil {
		return err
	}
	if err := s.repo.WithTx(tx).UpdateEmail(ctx, identity.ID, newEmail); err != nil {
		return err
	}
	if err := s.profiles.WithTx(tx).UpdateEmail(ctx, identity.ID.String(), newEmail); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.audit(ctx, userID, activitylog.Entry{
		UserID:      userID,
		ActionType:  activitylog.ActionEmailChanged,
		Description: "Email address changed",
		Module:      "auth",
		Target:      newEmail,
	})

	if s.notifier != nil {
		s.notifier.Notify(ctx, userID, notification.TypeEmailChanged,
			"Email address changed",
			"Your login email was updated to "+newEmail+".",
		)
	}

	return nil
}

func (s *service) ensureEmailFree(ctx context.Context, email string) error {
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return autherrors.ErrEmailAlreadyRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

func (s *service) buildAuthResponse(ctx context.Context, identity *Identity, prof *profile.Profile) AuthResponse {
	resp := AuthResponse{
		ID:       identity.ID.String(),
		Email:    identity.Email,
		IsActive: true,
	}
	if prof != nil {
		resp.FullName = prof.FullName
		resp.IsActive = prof.IsActive
	}

	if s.rbacSvc != nil {
		if access, err := s.rbacSvc.ResolveAccess(ctx, identity.ID.String()); err == nil {
			for _, r := range access.Roles {
				resp.Roles = append(resp.Roles, r.Label)
			}
		}
	}
	return resp
}

func (s *service) audit(ctx context.Context, actorID string, entry activitylog.Entry) {
	if s.activity == nil {
		return
	}
	entry.PerformedBy = actorID
	if entry.Status == "" {
		entry.Status = activitylog.StatusSuccess
	}
	s.activity.Log(ctx, entry)
}

// reusable token generator
func (s *service) generateToken(userID string, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
