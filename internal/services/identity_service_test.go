package services

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yukikurage/task-management-services/internal/database"
	apierrors "github.com/yukikurage/task-management-services/internal/errors"
	"github.com/yukikurage/task-management-services/internal/models"
	"github.com/yukikurage/task-management-services/internal/repository"
)

func openTestDB(t *testing.T, tables ...interface{}) *gorm.DB {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	db, err := database.Open(database.Options{Driver: database.DriverSQLite, DSN: ":memory:", Logger: log})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, log, tables...))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func setupIdentityService(t *testing.T) (*IdentityService, *gorm.DB) {
	t.Helper()
	db := openTestDB(t, &models.User{})
	return NewIdentityService(repository.NewUserRepository(db), bcrypt.MinCost), db
}

func registerAda(t *testing.T, svc *IdentityService) *models.User {
	t.Helper()
	user, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "Password1!",
	})
	require.NoError(t, err)
	return user
}

func TestIdentityService_Register(t *testing.T) {
	svc, db := setupIdentityService(t)

	user := registerAda(t, svc)

	assert.NotZero(t, user.ID)
	assert.Equal(t, "Ada", user.Name)

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.NotEqual(t, "Password1!", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("Password1!")))
}

func TestIdentityService_RegisterDuplicateEmail(t *testing.T) {
	svc, db := setupIdentityService(t)
	registerAda(t, svc)

	_, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Another Ada",
		Email:    "ada@example.com",
		Password: "Password2!",
	})

	appErr := apierrors.From(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apierrors.KindConflict, appErr.Kind)
	assert.Equal(t, MsgEmailTaken, appErr.Message)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestIdentityService_Authenticate(t *testing.T) {
	svc, _ := setupIdentityService(t)
	registered := registerAda(t, svc)

	user, err := svc.Authenticate(context.Background(), LoginInput{Email: "ada@example.com", Password: "Password1!"})

	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
}

func TestIdentityService_AuthenticateFailuresAreIndistinguishable(t *testing.T) {
	svc, _ := setupIdentityService(t)
	registerAda(t, svc)

	_, wrongPassword := svc.Authenticate(context.Background(), LoginInput{Email: "ada@example.com", Password: "Wrong123!"})
	_, unknownEmail := svc.Authenticate(context.Background(), LoginInput{Email: "bob@example.com", Password: "Password1!"})

	wp, ue := apierrors.From(wrongPassword), apierrors.From(unknownEmail)
	require.NotNil(t, wp)
	require.NotNil(t, ue)
	assert.Equal(t, apierrors.KindUnauthorized, wp.Kind)
	assert.Equal(t, wp.Kind, ue.Kind)
	assert.Equal(t, wp.PublicMessage(), ue.PublicMessage())
	assert.Equal(t, wp.Status(), ue.Status())
}

func TestIdentityService_GetUser(t *testing.T) {
	svc, _ := setupIdentityService(t)
	registered := registerAda(t, svc)

	user, err := svc.GetUser(context.Background(), registered.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)

	_, err = svc.GetUser(context.Background(), registered.ID+100)
	assert.Equal(t, apierrors.KindNotFound, apierrors.KindOf(err))
}

func TestNewIdentityService_InvalidCostFallsBack(t *testing.T) {
	svc := NewIdentityService(nil, 99)

	assert.Equal(t, bcrypt.DefaultCost, svc.hashCost)
}
