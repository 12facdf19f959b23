package services

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/gamenest/cafe-booking-backend/internal/apperrors"
	"github.com/gamenest/cafe-booking-backend/internal/models"
)

// RoleRepo looks up stored role strings
type RoleRepo interface {
	GetRole(userID uuid.UUID) (string, error)
}

// RoleService resolves user identities to platform roles. Resolution
// failures always fail closed: an error never grants access.
type RoleService struct {
	repo   RoleRepo
	logger *logrus.Logger
}

// NewRoleService creates a new role service
func NewRoleService(repo RoleRepo, logger *logrus.Logger) *RoleService {
	return &RoleService{repo: repo, logger: logger}
}

// ResolveRole looks up and normalizes a user's role. A missing user is a
// guest; a lookup error denies access with an AuthorizationError.
func (s *RoleService) ResolveRole(userID uuid.UUID) (models.Role, error) {
	raw, err := s.repo.GetRole(userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.RoleGuest, nil
		}
		s.logger.WithError(err).WithField("user_id", userID).Error("Role lookup failed, denying access")
		return models.RoleGuest, &apperrors.AuthorizationError{Reason: "role lookup failed"}
	}

	return models.NormalizeRole(raw), nil
}

// AuthorizeOwner resolves the role and requires owner-dashboard privilege
func (s *RoleService) AuthorizeOwner(userID uuid.UUID) (models.Role, error) {
	role, err := s.ResolveRole(userID)
	if err != nil {
		return models.RoleGuest, err
	}
	if !role.IsOwnerPrivileged() {
		return role, &apperrors.AuthorizationError{Reason: "owner dashboard requires owner, admin or super_admin role"}
	}
	return role, nil
}
