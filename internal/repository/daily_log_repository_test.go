package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/habitloop/habit-tracking-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return db, mock
}

// The sync insert must let the unique index on (user_id, date,
// session_item_id) absorb duplicate rows instead of failing.
func TestCreateIgnoringDuplicates_EmitsConflictClause(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewDailyLogRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `daily_logs` .* ON DUPLICATE KEY UPDATE").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.CreateIgnoringDuplicates([]models.DailyLog{
		{
			UserID:        "user-1",
			Date:          "2025-06-15",
			SessionItemID: "item-1",
			Status:        models.DailyLogStatusPending,
		},
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateIgnoringDuplicates_EmptyBatchIsNoop(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewDailyLogRepository(db)

	// No SQL expected at all.
	require.NoError(t, repo.CreateIgnoringDuplicates(nil))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteOwned_SoftDeletesOnlyOwnedRows(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewDailyLogRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `daily_logs` SET `deleted_at`=.* WHERE .*id = .* AND user_id = .*").
		WithArgs(sqlmock.AnyArg(), "log-1", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.DeleteOwned("log-1", "user-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteOwned_MissingRowIsNotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewDailyLogRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `daily_logs` SET `deleted_at`=.*").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.DeleteOwned("missing", "user-1")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
