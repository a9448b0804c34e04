package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vilolog/auth"
	"vilolog/common"
	"vilolog/models"
)

// requireAdmin resolves the current user and checks the admin role in one
// step. User management is admin-only across the board.
func (a *AdminModule) requireAdmin(c *gin.Context) bool {
	user, ok := a.currentUser(c)
	if !ok {
		return false
	}
	if err := auth.RequireAdmin(user); err != nil {
		a.fail(c, err)
		return false
	}
	return true
}

func (a *AdminModule) listUsers(c *gin.Context) {
	if !a.requireAdmin(c) {
		return
	}
	users, err := models.GetAllUsers(a.store, a.cfg.BlogID)
	if err != nil {
		a.fail(c, err)
		return
	}
	a.render(c, "users.html", "ViloLog ~ All Users", map[string]any{
		"userList": users,
	})
}

func (a *AdminModule) newUserForm(c *gin.Context) {
	if !a.requireAdmin(c) {
		return
	}
	a.render(c, "user_editor.html", "ViloLog: User Editor", nil)
}

func (a *AdminModule) createUser(c *gin.Context) {
	if !a.requireAdmin(c) {
		return
	}
	email := c.PostForm("email")
	existing, err := models.GetUserByEmail(a.store, email, a.cfg.BlogID)
	if err != nil {
		a.fail(c, err)
		return
	}
	if existing != nil {
		a.fail(c, common.ErrEmailTaken)
		return
	}
	user, err := models.BuildUser(
		c.PostForm("name"), email, c.PostForm("password"),
		c.PostForm("role"), a.cfg.BlogID,
	)
	if err != nil {
		a.fail(c, err)
		return
	}
	if err := models.InsertUser(a.store, user, a.cfg.BlogID); err != nil {
		a.fail(c, err)
		return
	}
	a.message(c, http.StatusOK, "Done! User saved. See: /_users")
}

func (a *AdminModule) editUserForm(c *gin.Context) {
	if !a.requireAdmin(c) {
		return
	}
	user, err := models.GetUserByID(a.store, c.Param("userId"), a.cfg.BlogID)
	if err != nil {
		a.fail(c, err)
		return
	}
	if user == nil {
		a.fail(c, common.ErrNotFound)
		return
	}
	a.render(c, "user_editor.html", "ViloLog: User Editor", map[string]any{
		"thatUser": user,
	})
}

// updateUser changes name and role, and rehashes the password only when a new
// one was supplied. Email is immutable once registered.
func (a *AdminModule) updateUser(c *gin.Context) {
	if !a.requireAdmin(c) {
		return
	}
	user, err := models.GetUserByID(a.store, c.Param("userId"), a.cfg.BlogID)
	if err != nil {
		a.fail(c, err)
		return
	}
	if user == nil {
		a.fail(c, common.ErrNotFound)
		return
	}
	user.Name = c.PostForm("name")
	user.Role = c.PostForm("role")
	if password := c.PostForm("password"); password != "" {
		hpw, err := common.HashPassword(password)
		if err != nil {
			a.fail(c, err)
			return
		}
		user.PasswordHash = hpw
	}
	if err := models.ReplaceUser(a.store, user, a.cfg.BlogID); err != nil {
		a.fail(c, err)
		return
	}
	a.message(c, http.StatusOK, "Done! User updated. See: /_users")
}
