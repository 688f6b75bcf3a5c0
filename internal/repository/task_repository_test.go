package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/service-task-manager/internal/models"
	"github.com/yukikurage/service-task-manager/internal/testutil"
	"github.com/yukikurage/service-task-manager/internal/utils"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return db, mock
}

func TestTaskRepository_CreateWithMediaRollsBackOnMediaFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `tasks`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO `task_media`").WillReturnError(errors.New("media insert failed"))
	mock.ExpectRollback()

	task := &models.Task{CustomerID: 1, PropertyID: 1, ServiceID: 1, StatusID: 1}
	err := repo.CreateWithMedia(context.Background(), task, []string{"https://cdn.example.com/a.jpg"})

	assert.EqualError(t, err, "media insert failed")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_CreateWithMediaRollsBackOnTaskFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `tasks`").WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := repo.CreateWithMedia(context.Background(), &models.Task{StatusID: 1}, []string{"https://cdn.example.com/a.jpg"})

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_DeleteMissingTask(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `task_media`").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM `tasks`").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), 42)

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_FindWithRelations(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewTaskRepository(db)
	fixture := testutil.SeedFixture(t, db, "owner@example.com", "5551234567")
	status := testutil.Status(t, db, "Completed")

	task := &models.Task{
		CustomerID: fixture.Customer.ID,
		PropertyID: fixture.Property.ID,
		ServiceID:  fixture.Service.ID,
		StatusID:   status.ID,
	}
	require.NoError(t, repo.CreateWithMedia(context.Background(), task, []string{"https://a.example.com/1.jpg"}))
	require.NoError(t, repo.UpdateWithMedia(context.Background(), task, []string{"https://a.example.com/2.jpg"}))

	loaded, err := repo.FindWithRelations(context.Background(), task.ID)
	require.NoError(t, err)

	assert.Equal(t, "owner@example.com", loaded.Customer.EmailAddress())
	assert.Equal(t, "12 Elm Street", loaded.Property.Address)
	assert.Equal(t, "Lawn Care", loaded.Service.Name)
	assert.True(t, loaded.Status.NotifyClient)
	assert.Equal(t, []string{"https://a.example.com/1.jpg", "https://a.example.com/2.jpg"}, loaded.MediaURLs())

	_, err = repo.FindWithRelations(context.Background(), 999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestTaskRepository_ListAndCount(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewTaskRepository(db)
	fixture := testutil.SeedFixture(t, db, "", "")
	scheduled := testutil.Status(t, db, "Scheduled")
	completed := testutil.Status(t, db, "Completed")

	for _, statusID := range []uint64{scheduled.ID, completed.ID, completed.ID} {
		task := &models.Task{
			CustomerID: fixture.Customer.ID,
			PropertyID: fixture.Property.ID,
			ServiceID:  fixture.Service.ID,
			StatusID:   statusID,
		}
		require.NoError(t, repo.CreateWithMedia(context.Background(), task, nil))
	}

	tasks, total, err := repo.List(context.Background(), TaskFilter{
		StatusID:   &completed.ID,
		Pagination: utils.PaginationParams{Page: 1, Limit: 1, Offset: 0},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, tasks, 1)
	assert.Equal(t, "Completed", tasks[0].Status.Name)

	count, err := repo.CountByReference(context.Background(), "customer_id", fixture.Customer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	_, err = repo.CountByReference(context.Background(), "notes; DROP TABLE tasks", 1)
	assert.Error(t, err)
}
