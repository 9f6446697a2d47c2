package repository_test

import (
	"context"
	"testing"
	"time"

	"todos/config"
	"todos/infras/otel/mocks"
	"todos/infras/postgres"
	"todos/internal/domains/todo/model"
	"todos/internal/domains/todo/repository"
	gDto "todos/shared/dto"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostgres(t *testing.T) (repository.Todo, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	conn := sqlx.NewDb(db, "postgres")

	return repository.NewPostgres(&postgres.Connection{Read: conn, Write: conn}, mocks.NewOtel()), mock
}

func TestPostgres_Insert(t *testing.T) {
	repo, mock := newPostgres(t)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO todos \(title, completed, created_at, modified_at\) VALUES \(\$1, \$2, \$3, \$4\) RETURNING id`).
		WithArgs("buy milk", false, now, now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

	todo := model.Todo{Title: "buy milk"}
	todo.CreatedAt, todo.ModifiedAt = now, now

	id, err := repo.Insert(context.Background(), todo)
	require.NoError(t, err)

	assert.Equal(t, int64(1), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_GetAll(t *testing.T) {
	repo, mock := newPostgres(t)

	mock.ExpectPrepare(`SELECT todos.id, todos.title, todos.completed, todos.created_at, todos.modified_at FROM todos WHERE \(LOWER\(title\) LIKE LOWER\(\$1\)\) ORDER BY id ASC`).
		ExpectQuery().
		WithArgs("%milk%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "completed", "created_at", "modified_at"}).
			AddRow(int64(1), "buy milk", false, time.Time{}, time.Time{}))

	todos, err := repo.GetAll(context.Background(),
		gDto.QueryParams{SortBy: model.FieldID, SortDir: gDto.SortDirAsc},
		gDto.FilterGroup{Filters: []any{gDto.Filter{Field: model.FieldTitle, Value: "milk", Operator: gDto.FilterOperatorLike}}})
	require.NoError(t, err)

	require.Len(t, todos, 1)
	assert.Equal(t, "buy milk", todos[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Delete(t *testing.T) {
	repo, mock := newPostgres(t)

	mock.ExpectExec(`DELETE FROM todos WHERE \(todos.id = \$1\)`).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := repo.Delete(context.Background(), byID(3))
	require.NoError(t, err)

	assert.Equal(t, int64(1), affected)
}

func TestNew_Drivers(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Driver = config.DriverMemory

	repo, cleanup, err := repository.New(cfg, mocks.NewOtel())
	require.NoError(t, err)
	require.NotNil(t, repo)

	cleanup()

	cfg.DB.Driver = "oracle"

	_, _, err = repository.New(cfg, mocks.NewOtel())
	assert.ErrorContains(t, err, "oracle")
}
