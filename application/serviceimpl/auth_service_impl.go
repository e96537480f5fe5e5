package serviceimpl

import (
	"context"
	"errors"
	"regexp"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Nihalturkar/Event-System-backend/domain/models"
	"github.com/Nihalturkar/Event-System-backend/domain/repositories"
	"github.com/Nihalturkar/Event-System-backend/domain/services"
	"github.com/Nihalturkar/Event-System-backend/infrastructure/redis"
	"github.com/Nihalturkar/Event-System-backend/infrastructure/sms"
	"github.com/Nihalturkar/Event-System-backend/pkg/config"
	"github.com/Nihalturkar/Event-System-backend/pkg/logger"
	"github.com/Nihalturkar/Event-System-backend/pkg/utils"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

type AuthServiceImpl struct {
	userRepo  repositories.UserRepository
	otpStore  *redis.OTPStore
	smsClient *sms.Client
	jwtCfg    config.JWTConfig
}

func NewAuthService(
	userRepo repositories.UserRepository,
	otpStore *redis.OTPStore,
	smsClient *sms.Client,
	jwtCfg config.JWTConfig,
) services.AuthService {
	return &AuthServiceImpl{
		userRepo:  userRepo,
		otpStore:  otpStore,
		smsClient: smsClient,
		jwtCfg:    jwtCfg,
	}
}

// SendOTP generates a 6-digit code, stores it with a TTL and hands it to
// the SMS gateway.
func (s *AuthServiceImpl) SendOTP(ctx context.Context, phone string) (*services.OTPResult, error) {
	if !phonePattern.MatchString(phone) {
		return nil, services.ErrInvalidPhone
	}

	otp := utils.GenerateOTP()
	if err := s.otpStore.Save(ctx, phone, otp); err != nil {
		logger.AuthError("send_otp", "Failed to store OTP", err, map[string]interface{}{"phone": phone})
		return nil, err
	}

	if err := s.smsClient.SendOTP(ctx, phone, otp); err != nil {
		logger.AuthError("send_otp", "Failed to send OTP", err, map[string]interface{}{"phone": phone})
		return nil, err
	}

	logger.Auth("send_otp", "OTP issued", map[string]interface{}{"phone": phone})

	result := &services.OTPResult{
		ExpiresIn: int(redis.OTPTTL.Seconds()),
	}
	if s.smsClient.DevMode() {
		result.DevOTP = otp
	}
	return result, nil
}

// VerifyOTP checks the code and signs the user in, creating the account
// on first login.
func (s *AuthServiceImpl) VerifyOTP(ctx context.Context, phone, otp string, role models.UserRole, name string) (*services.AuthResult, error) {
	ok, err := s.otpStore.Verify(ctx, phone, otp)
	if errors.Is(err, redis.ErrOTPNotFound) {
		return nil, services.ErrInvalidOTP
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		logger.Auth("verify_otp", "OTP mismatch", map[string]interface{}{"phone": phone})
		return nil, services.ErrInvalidOTP
	}

	user, err := s.userRepo.GetByPhone(ctx, phone)
	isNew := false
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if role != models.RolePhotographer && role != models.RoleGuest {
			return nil, services.ErrRoleRequired
		}
		user = &models.User{
			Phone:      phone,
			Name:       name,
			Role:       role,
			IsVerified: true,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
		isNew = true
		logger.Auth("register", "New user created", map[string]interface{}{
			"user_id": user.ID.String(),
			"role":    string(role),
		})
	} else if err != nil {
		return nil, err
	} else if !user.IsVerified {
		user.IsVerified = true
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	token, err := utils.GenerateToken(user.ID, user.Phone, string(user.Role), s.jwtCfg.Secret, s.jwtCfg.Expiry)
	if err != nil {
		return nil, err
	}

	logger.Auth("login", "User authenticated", map[string]interface{}{"user_id": user.ID.String()})

	return &services.AuthResult{
		Token:     token,
		User:      user,
		IsNewUser: isNew,
	}, nil
}

// RefreshToken issues a fresh JWT for an already authenticated user.
func (s *AuthServiceImpl) RefreshToken(ctx context.Context, userID string) (string, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return "", services.ErrUserNotFound
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", services.ErrUserNotFound
	}
	if err != nil {
		return "", err
	}

	return utils.GenerateToken(user.ID, user.Phone, string(user.Role), s.jwtCfg.Secret, s.jwtCfg.Expiry)
}

func (s *AuthServiceImpl) Profile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, services.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies the non-nil fields and saves the user.
func (s *AuthServiceImpl) UpdateProfile(ctx context.Context, userID uuid.UUID, input services.UpdateProfileInput) (*models.User, error) {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.ProfilePic != nil {
		user.ProfilePic = *input.ProfilePic
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	logger.Auth("update_profile", "Profile updated", map[string]interface{}{"user_id": user.ID.String()})
	return user, nil
}
