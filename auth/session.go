// Package auth implements the login-session and anti-CSRF scheme: a signed,
// http-only "userId" cookie establishes identity, while a script-readable
// "xCsrfToken" cookie carries the same user id signed under a separate secret.
// Client-side script copies the token into form submissions, so every non-GET
// request proves it originated from a page that held a valid session, without
// exposing the identity-bearing secret to script.
package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/securecookie"

	"vilolog/common"
	"vilolog/docstore"
	"vilolog/models"
)

const (
	UserCookie = "userId"
	CSRFCookie = "xCsrfToken"

	cookieMaxAge = 86400 * 7
)

type Sessions struct {
	userCodec *securecookie.SecureCookie
	csrfCodec *securecookie.SecureCookie
	store     *docstore.Store
	blogID    string
}

func NewSessions(cookieSecret, csrfSecret []byte, store *docstore.Store, blogID string) *Sessions {
	return &Sessions{
		userCodec: securecookie.New(cookieSecret, nil),
		csrfCodec: securecookie.New(csrfSecret, nil),
		store:     store,
		blogID:    blogID,
	}
}

// Start establishes a login session for user on the outgoing response.
func (s *Sessions) Start(c *gin.Context, user *models.User) error {
	signed, err := s.userCodec.Encode(UserCookie, user.ID)
	if err != nil {
		return err
	}
	token, err := s.csrfCodec.Encode(CSRFCookie, user.ID)
	if err != nil {
		return err
	}
	c.SetCookie(UserCookie, signed, cookieMaxAge, "/", "", false, true)
	// Not http-only: client script must be able to copy it into forms.
	c.SetCookie(CSRFCookie, token, cookieMaxAge, "/", "", false, false)
	return nil
}

// End clears both session cookies.
func (s *Sessions) End(c *gin.Context) {
	c.SetCookie(UserCookie, "", -1, "/", "", false, true)
	c.SetCookie(CSRFCookie, "", -1, "/", "", false, false)
}

// CurrentUser resolves and validates the requesting user:
//  1. unsign the userId cookie (missing/invalid -> ErrSessionExpired);
//  2. for non-GET verbs, unsign the form's xCsrfToken and require it to match
//     the resolved user id (mismatch -> ErrCSRFInvalid);
//  3. look the user up (absent -> ErrSessionExpired);
//  4. reject deactivated users (ErrAccessDeactivated).
func (s *Sessions) CurrentUser(c *gin.Context) (*models.User, error) {
	raw, err := c.Cookie(UserCookie)
	if err != nil {
		return nil, common.ErrSessionExpired
	}
	var userID string
	if err := s.userCodec.Decode(UserCookie, raw, &userID); err != nil || userID == "" {
		return nil, common.ErrSessionExpired
	}

	if c.Request.Method != http.MethodGet {
		token := c.PostForm(CSRFCookie)
		var xUserID string
		if err := s.csrfCodec.Decode(CSRFCookie, token, &xUserID); err != nil || xUserID != userID {
			return nil, common.ErrCSRFInvalid
		}
	}

	user, err := models.GetUserByID(s.store, userID, s.blogID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, common.ErrSessionExpired
	}
	if user.Role == models.RoleDeactivated {
		return nil, common.ErrAccessDeactivated
	}
	return user, nil
}
