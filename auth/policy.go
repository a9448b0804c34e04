package auth

import (
	"fmt"

	"vilolog/common"
	"vilolog/models"
)

// CanEditPage allows page mutation for admins and for the page's own author.
// A deactivated user must never reach this check; session resolution already
// rejects that role.
func CanEditPage(user *models.User, page *models.Page) error {
	switch user.Role {
	case models.RoleAdmin:
		return nil
	case models.RoleAuthor:
		if user.ID == page.AuthorID {
			return nil
		}
		return common.ErrAccessDenied
	case models.RoleDeactivated:
		return fmt.Errorf("deactivated user reached authorization: %w", common.ErrAccessDenied)
	default:
		return common.ErrAccessDenied
	}
}

// RequireAdmin gates user management: creating, editing and listing users is
// admin-only.
func RequireAdmin(user *models.User) error {
	if user.Role != models.RoleAdmin {
		return common.ErrAccessDenied
	}
	return nil
}
