package service

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"maktabati_backend/internals/configs"
	"maktabati_backend/internals/features/users/auth/dto"
	authModel "maktabati_backend/internals/features/users/auth/model"
	userModel "maktabati_backend/internals/features/users/user/model"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	configs.JWTSecret = "test-secret"

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&userModel.UserModel{},
		&authModel.PasswordResetModel{},
	))
	return db
}

func requireFiberStatus(t *testing.T, err error, status int) {
	t.Helper()
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	require.Equal(t, status, fe.Code)
}

func TestSignUpIssuesUsableToken(t *testing.T) {
	db := setupDB(t)

	user, token, err := SignUp(db, &dto.SignUpRequest{
		Email:    "reader@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := jwt.Parse(token, func(tok *jwt.Token) (interface{}, error) {
		return []byte(configs.JWTSecret), nil
	})
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	require.Equal(t, user.ID.String(), claims["user_id"])
	require.Equal(t, "reader@example.com", claims["email"])

	exp := time.Unix(int64(claims["exp"].(float64)), 0)
	require.WithinDuration(t, time.Now().Add(7*24*time.Hour), exp, time.Minute)

	// The stored password is hashed, never plaintext.
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")))
}

func TestSignUpDuplicateEmail(t *testing.T) {
	db := setupDB(t)

	_, _, err := SignUp(db, &dto.SignUpRequest{Email: "dup@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, _, err = SignUp(db, &dto.SignUpRequest{Email: "dup@example.com", Password: "other456"})
	requireFiberStatus(t, err, fiber.StatusConflict)
}

func TestSignIn(t *testing.T) {
	db := setupDB(t)
	_, _, err := SignUp(db, &dto.SignUpRequest{Email: "login@example.com", Password: "secret123"})
	require.NoError(t, err)

	user, token, err := SignIn(db, &dto.SignInRequest{Email: "login@example.com", Password: "secret123"})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, "login@example.com", user.Email)

	// Unknown email and wrong password report the same 401.
	_, _, err = SignIn(db, &dto.SignInRequest{Email: "nobody@example.com", Password: "secret123"})
	requireFiberStatus(t, err, fiber.StatusUnauthorized)

	_, _, err = SignIn(db, &dto.SignInRequest{Email: "login@example.com", Password: "wrong"})
	requireFiberStatus(t, err, fiber.StatusUnauthorized)
}

func TestSignInDeactivatedAccount(t *testing.T) {
	db := setupDB(t)
	user, _, err := SignUp(db, &dto.SignUpRequest{Email: "gone@example.com", Password: "secret123"})
	require.NoError(t, err)
	require.NoError(t, db.Model(user).Update("is_active", false).Error)

	_, _, err = SignIn(db, &dto.SignInRequest{Email: "gone@example.com", Password: "secret123"})
	requireFiberStatus(t, err, fiber.StatusUnauthorized)
}

func seedResetCode(t *testing.T, db *gorm.DB, userID uuid.UUID, code string, expiresAt time.Time) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&authModel.PasswordResetModel{
		UserID:    userID,
		CodeHash:  string(hash),
		ExpiresAt: expiresAt,
	}).Error)
}

func TestVerifyResetCode(t *testing.T) {
	db := setupDB(t)
	user, _, err := SignUp(db, &dto.SignUpRequest{Email: "forgot@example.com", Password: "secret123"})
	require.NoError(t, err)
	seedResetCode(t, db, user.ID, "123456", time.Now().Add(10*time.Minute))

	err = VerifyResetCode(db, "forgot@example.com", "000000")
	requireFiberStatus(t, err, fiber.StatusBadRequest)

	require.NoError(t, VerifyResetCode(db, "forgot@example.com", "123456"))

	err = VerifyResetCode(db, "missing@example.com", "123456")
	requireFiberStatus(t, err, fiber.StatusNotFound)
}

func TestVerifyResetCodeExpired(t *testing.T) {
	db := setupDB(t)
	user, _, err := SignUp(db, &dto.SignUpRequest{Email: "late@example.com", Password: "secret123"})
	require.NoError(t, err)
	seedResetCode(t, db, user.ID, "123456", time.Now().Add(-time.Minute))

	err = VerifyResetCode(db, "late@example.com", "123456")
	requireFiberStatus(t, err, fiber.StatusBadRequest)
}

func TestResetPasswordConsumesCode(t *testing.T) {
	db := setupDB(t)
	user, _, err := SignUp(db, &dto.SignUpRequest{Email: "reset@example.com", Password: "secret123"})
	require.NoError(t, err)
	seedResetCode(t, db, user.ID, "654321", time.Now().Add(10*time.Minute))

	// Not verified yet.
	err = ResetPassword(db, "reset@example.com", "654321", "brandnew789")
	requireFiberStatus(t, err, fiber.StatusBadRequest)

	require.NoError(t, VerifyResetCode(db, "reset@example.com", "654321"))
	require.NoError(t, ResetPassword(db, "reset@example.com", "654321", "brandnew789"))

	// Old password is dead, new one works, outstanding tokens invalidated.
	_, _, err = SignIn(db, &dto.SignInRequest{Email: "reset@example.com", Password: "secret123"})
	requireFiberStatus(t, err, fiber.StatusUnauthorized)

	reloaded, _, err := SignIn(db, &dto.SignInRequest{Email: "reset@example.com", Password: "brandnew789"})
	require.NoError(t, err)
	require.NotNil(t, reloaded.PasswordChangedAt)

	// The code is single-use.
	err = ResetPassword(db, "reset@example.com", "654321", "another000")
	requireFiberStatus(t, err, fiber.StatusBadRequest)
}
