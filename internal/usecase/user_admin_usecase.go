package usecase

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"clinic-booking/internal/converter"
	"clinic-booking/internal/delivery/dto"
	"clinic-booking/internal/domain/entity"
	"clinic-booking/internal/domain/repository"
	"clinic-booking/internal/service"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrCannotModifySelf = errors.New("cannot change your own account state")

// UserAdminUsecase covers the admin-side user management surface.
type UserAdminUsecase interface {
	ListUsers(ctx context.Context, filter *entity.UserFilter) ([]dto.UserResponse, int64, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	VerifyDoctor(ctx context.Context, adminID, doctorUserID uuid.UUID) (*dto.UserResponse, error)
	SetUserActive(ctx context.Context, adminID, userID uuid.UUID, active bool) (*dto.UserResponse, error)
}

type userAdminUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	auditService service.AuditService
	redisClient  *redis.Client
}

func NewUserAdminUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	auditService service.AuditService,
	redisClient *redis.Client,
) UserAdminUsecase {
	return &userAdminUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		auditService: auditService,
		redisClient:  redisClient,
	}
}

func (u *userAdminUsecase) ListUsers(ctx context.Context, filter *entity.UserFilter) ([]dto.UserResponse, int64, error) {
	tx := u.db.WithContext(ctx).Begin(&sql.TxOptions{ReadOnly: true})
	defer tx.Rollback()

	users, total, err := u.userRepo.FindFiltered(tx, filter)
	if err != nil {
		u.log.Warnf("Failed to list users: %+v", err)
		return nil, 0, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, 0, err
	}

	return converter.UsersToResponses(users), total, nil
}

func (u *userAdminUsecase) GetUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return converter.UserToResponse(user), nil
}

// VerifyDoctor marks a doctor account as reviewed, making it visible in
// the directory and bookable. Verifying twice is a no-op.
func (u *userAdminUsecase) VerifyDoctor(ctx context.Context, adminID, doctorUserID uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), doctorUserID)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return nil, err
	}
	if user == nil || user.RoleID != entity.RoleIDDoctor {
		return nil, ErrDoctorNotFound
	}

	if user.IsVerified != nil && *user.IsVerified {
		return converter.UserToResponse(user), nil
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	verified := true
	user.IsVerified = &verified
	if err := u.userRepo.Update(tx, user); err != nil {
		u.log.Warnf("Failed to verify doctor: %+v", err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, tx, &adminID, entity.AuditActionDoctorVerify, "user", user.ID.String(),
		map[string]interface{}{"is_verified": false},
		map[string]interface{}{"is_verified": true},
	)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

// SetUserActive toggles an account. Deactivation also revokes every live
// token, so the account drops out immediately instead of at token expiry.
func (u *userAdminUsecase) SetUserActive(ctx context.Context, adminID, userID uuid.UUID, active bool) (*dto.UserResponse, error) {
	if adminID == userID {
		return nil, ErrCannotModifySelf
	}

	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	wasActive := user.IsActive == nil || *user.IsActive
	if wasActive == active {
		return converter.UserToResponse(user), nil
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user.IsActive = &active
	if err := u.userRepo.Update(tx, user); err != nil {
		u.log.Warnf("Failed to update user active state: %+v", err)
		return nil, err
	}

	action := entity.AuditActionUserActivate
	if !active {
		action = entity.AuditActionUserDeactivate
	}
	u.auditService.LogUpdate(ctx, tx, &adminID, action, "user", user.ID.String(),
		map[string]interface{}{"is_active": wasActive},
		map[string]interface{}{"is_active": active},
	)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	if !active {
		u.revokeAllTokens(ctx, userID)
	}

	return converter.UserToResponse(user), nil
}

// revokeAllTokens drops every access and refresh token of a user from
// Redis. Best effort: a failure here only delays the lockout.
func (u *userAdminUsecase) revokeAllTokens(ctx context.Context, userID uuid.UUID) {
	for _, pattern := range []string{
		fmt.Sprintf("access_token:%s:*", userID.String()),
		fmt.Sprintf("refresh_token:%s:*", userID.String()),
	} {
		keys, err := u.redisClient.Keys(ctx, pattern).Result()
		if err != nil {
			u.log.Warnf("Failed to list token keys %s: %+v", pattern, err)
			continue
		}
		if len(keys) == 0 {
			continue
		}
		if err := u.redisClient.Del(ctx, keys...).Err(); err != nil {
			u.log.Warnf("Failed to revoke tokens for user %s: %+v", userID, err)
		}
	}
}
