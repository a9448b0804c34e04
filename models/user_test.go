package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"vilolog/common"
	"vilolog/docstore"
)

const testBlogID = "blog1"

func setupTestStore(t *testing.T) *docstore.Store {
	store, err := docstore.Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	return store
}

func createTestUser(t *testing.T, store *docstore.Store, email, role string) *User {
	user, err := BuildUser("Test User", email, "secret123", role, testBlogID)
	if err != nil {
		t.Fatalf("failed to build user: %v", err)
	}
	if err := InsertUser(store, user, testBlogID); err != nil {
		t.Fatalf("failed to insert user: %v", err)
	}
	return user
}

func TestBuildUser(t *testing.T) {
	user, err := BuildUser("Alice", "alice@example.com", "secret123", RoleAdmin, testBlogID)
	assert.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "user", user.Type)
	assert.Equal(t, UserVersion, user.Version)
	assert.Equal(t, testBlogID, user.BlogID)
	assert.NotEqual(t, "secret123", user.PasswordHash)
	assert.True(t, common.CheckPassword("secret123", user.PasswordHash))
	assert.NotZero(t, user.CreatedAt)
}

func TestBuildUser_BadEmail(t *testing.T) {
	_, err := BuildUser("Alice", "not-an-email", "secret123", RoleAdmin, testBlogID)
	assert.Error(t, err)

	var schemaErr *common.SchemaError
	assert.ErrorAs(t, err, &schemaErr)
}

func TestBuildUser_BadRole(t *testing.T) {
	_, err := BuildUser("Alice", "alice@example.com", "secret123", "superuser", testBlogID)
	assert.Error(t, err)
}

func TestBuildUser_EmptyName(t *testing.T) {
	_, err := BuildUser("", "alice@example.com", "secret123", RoleAuthor, testBlogID)
	assert.Error(t, err)
}

func TestGetUserByEmail(t *testing.T) {
	store := setupTestStore(t)
	created := createTestUser(t, store, "alice@example.com", RoleAdmin)

	user, err := GetUserByEmail(store, "alice@example.com", testBlogID)
	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.Equal(t, created.ID, user.ID)
	assert.Equal(t, created.Role, user.Role)
}

func TestGetUserByID_Absent(t *testing.T) {
	store := setupTestStore(t)

	user, err := GetUserByID(store, "no-such-id", testBlogID)
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestGetUser_WrongTenant(t *testing.T) {
	store := setupTestStore(t)
	createTestUser(t, store, "alice@example.com", RoleAdmin)

	user, err := GetUserByEmail(store, "alice@example.com", "another-blog")
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestGetAnyUser(t *testing.T) {
	store := setupTestStore(t)

	user, err := GetAnyUser(store, testBlogID)
	assert.NoError(t, err)
	assert.Nil(t, user)

	createTestUser(t, store, "alice@example.com", RoleAdmin)

	user, err = GetAnyUser(store, testBlogID)
	assert.NoError(t, err)
	assert.NotNil(t, user)
}

func TestReplaceUser_RoleChange(t *testing.T) {
	store := setupTestStore(t)
	user := createTestUser(t, store, "alice@example.com", RoleAuthor)

	user.Role = RoleDeactivated
	assert.NoError(t, ReplaceUser(store, user, testBlogID))

	got, err := GetUserByID(store, user.ID, testBlogID)
	assert.NoError(t, err)
	assert.Equal(t, RoleDeactivated, got.Role)
}

func TestReplaceUser_InvalidRejected(t *testing.T) {
	store := setupTestStore(t)
	user := createTestUser(t, store, "alice@example.com", RoleAuthor)

	user.Name = ""
	assert.Error(t, ReplaceUser(store, user, testBlogID))
}

func TestDeleteAllUsers(t *testing.T) {
	store := setupTestStore(t)
	createTestUser(t, store, "alice@example.com", RoleAdmin)
	createTestUser(t, store, "bob@example.com", RoleAuthor)

	assert.NoError(t, DeleteAllUsers(store, testBlogID))

	users, err := GetAllUsers(store, testBlogID)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(users))
}
