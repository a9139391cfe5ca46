package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"maktabati_backend/internals/configs"
	"maktabati_backend/internals/constants"
	userModel "maktabati_backend/internals/features/users/user/model"
	helper "maktabati_backend/internals/helpers"
)

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	configs.JWTSecret = "test-secret"

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&userModel.UserModel{}))

	app := fiber.New()
	app.Get("/protected", AuthMiddleware(db), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(helper.LocUserID).(string))
	})
	app.Get("/admin",
		AuthMiddleware(db),
		OnlyRoles("admins only", constants.AdminOnly...),
		func(c *fiber.Ctx) error { return c.SendString("ok") },
	)
	return app, db
}

func seedUser(t *testing.T, db *gorm.DB, role string) *userModel.UserModel {
	t.Helper()
	user := userModel.UserModel{
		Email:    uuid.NewString() + "@example.com",
		Password: "hashed",
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func signToken(t *testing.T, userID uuid.UUID, iat, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID.String(),
		"iat":     iat.Unix(),
		"exp":     exp.Unix(),
	})
	signed, err := token.SignedString([]byte(configs.JWTSecret))
	require.NoError(t, err)
	return signed
}

func doGet(t *testing.T, app *fiber.App, path, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	app, db := setupApp(t)
	user := seedUser(t, db, constants.RoleUser)
	token := signToken(t, user.ID, time.Now(), time.Now().Add(time.Hour))

	resp := doGet(t, app, "/protected", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthMiddlewareRejections(t *testing.T) {
	app, db := setupApp(t)
	user := seedUser(t, db, constants.RoleUser)

	resp := doGet(t, app, "/protected", "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doGet(t, app, "/protected", "not-a-token")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	expired := signToken(t, user.ID, time.Now().Add(-2*time.Hour), time.Now().Add(-time.Hour))
	resp = doGet(t, app, "/protected", expired)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	unknown := signToken(t, uuid.New(), time.Now(), time.Now().Add(time.Hour))
	resp = doGet(t, app, "/protected", unknown)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareRejectsTokenOlderThanPasswordChange(t *testing.T) {
	app, db := setupApp(t)
	user := seedUser(t, db, constants.RoleUser)

	stale := signToken(t, user.ID, time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
	changedAt := time.Now().Add(-time.Minute)
	require.NoError(t, db.Model(user).Update("password_changed_at", changedAt).Error)

	resp := doGet(t, app, "/protected", stale)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	fresh := signToken(t, user.ID, time.Now(), time.Now().Add(time.Hour))
	resp = doGet(t, app, "/protected", fresh)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthMiddlewareRejectsDeactivatedAccount(t *testing.T) {
	app, db := setupApp(t)
	user := seedUser(t, db, constants.RoleUser)
	require.NoError(t, db.Model(user).Update("is_active", false).Error)

	token := signToken(t, user.ID, time.Now(), time.Now().Add(time.Hour))
	resp := doGet(t, app, "/protected", token)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRoleMiddleware(t *testing.T) {
	app, db := setupApp(t)
	admin := seedUser(t, db, constants.RoleAdmin)
	user := seedUser(t, db, constants.RoleUser)

	adminToken := signToken(t, admin.ID, time.Now(), time.Now().Add(time.Hour))
	resp := doGet(t, app, "/admin", adminToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	userToken := signToken(t, user.ID, time.Now(), time.Now().Add(time.Hour))
	resp = doGet(t, app, "/admin", userToken)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}
