package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"vilolog/common"
	"vilolog/models"
)

func TestCanEditPage_Admin(t *testing.T) {
	admin := &models.User{ID: "u1", Role: models.RoleAdmin}
	page := &models.Page{ID: "p1", AuthorID: "someone-else"}

	assert.NoError(t, CanEditPage(admin, page))
}

func TestCanEditPage_AuthorOwnPage(t *testing.T) {
	author := &models.User{ID: "u1", Role: models.RoleAuthor}
	page := &models.Page{ID: "p1", AuthorID: "u1"}

	assert.NoError(t, CanEditPage(author, page))
}

func TestCanEditPage_AuthorForeignPage(t *testing.T) {
	author := &models.User{ID: "u1", Role: models.RoleAuthor}
	page := &models.Page{ID: "p1", AuthorID: "u2"}

	assert.ErrorIs(t, CanEditPage(author, page), common.ErrAccessDenied)
}

func TestCanEditPage_Deactivated(t *testing.T) {
	user := &models.User{ID: "u1", Role: models.RoleDeactivated}
	page := &models.Page{ID: "p1", AuthorID: "u1"}

	assert.ErrorIs(t, CanEditPage(user, page), common.ErrAccessDenied)
}

func TestRequireAdmin(t *testing.T) {
	assert.NoError(t, RequireAdmin(&models.User{Role: models.RoleAdmin}))
	assert.ErrorIs(t, RequireAdmin(&models.User{Role: models.RoleAuthor}), common.ErrAccessDenied)
	assert.ErrorIs(t, RequireAdmin(&models.User{Role: models.RoleDeactivated}), common.ErrAccessDenied)
}
