package database

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/yukikurage/task-management-services/internal/models"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestOpen_SQLiteAndMigrate(t *testing.T) {
	log := quietLogger()
	db, err := Open(Options{Driver: DriverSQLite, DSN: ":memory:", Logger: log})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, Migrate(db, log, &models.User{}, &models.Task{}))

	assert.True(t, db.Migrator().HasTable(&models.User{}))
	assert.True(t, db.Migrator().HasTable(&models.Task{}))
	assert.True(t, db.Migrator().HasIndex(&models.Task{}, "idx_tasks_user_created"))
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(Options{Driver: "oracle", DSN: "x"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "oracle")
}

func TestLogLevelFor(t *testing.T) {
	assert.Equal(t, logger.Info, LogLevelFor("debug"))
	assert.Equal(t, logger.Warn, LogLevelFor("info"))
	assert.Equal(t, logger.Error, LogLevelFor("ERROR"))
}

func TestScopes(t *testing.T) {
	log := quietLogger()
	db, err := Open(Options{Driver: DriverSQLite, DSN: ":memory:", Logger: log})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })
	require.NoError(t, Migrate(db, log, &models.Task{}))

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []models.Task{
		{Title: "old", Description: "d", UserID: 1, CreatedAt: base},
		{Title: "new", Description: "d", UserID: 1, CreatedAt: base.Add(time.Hour)},
		{Title: "tie", Description: "d", UserID: 1, CreatedAt: base.Add(time.Hour)},
		{Title: "other", Description: "d", UserID: 2, CreatedAt: base.Add(2 * time.Hour)},
	}
	require.NoError(t, db.Create(&rows).Error)

	var tasks []models.Task
	require.NoError(t, db.Scopes(OwnedBy(1), NewestFirst()).Find(&tasks).Error)

	require.Len(t, tasks, 3)
	assert.Equal(t, "tie", tasks[0].Title)
	assert.Equal(t, "new", tasks[1].Title)
	assert.Equal(t, "old", tasks[2].Title)
}
