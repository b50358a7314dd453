package remote

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eleven-am/taskdeck/internal/model"
)

func expectInitialize(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	for _, stmt := range createStatements {
		mock.ExpectExec(regexp.QuoteMeta(stmt)).WillReturnResult(sqlmock.NewResult(0, 0))
	}
	for _, stmt := range migrateStatements {
		mock.ExpectExec(regexp.QuoteMeta(stmt)).WillReturnResult(sqlmock.NewResult(0, 0))
	}

	defaults := model.DefaultSettings()
	mock.ExpectExec(regexp.QuoteMeta(seedSettings)).
		WithArgs(defaults.UserID, defaults.Language, defaults.Theme, string(defaults.Notifications), string(defaults.CustomColors)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	for _, tmpl := range model.DefaultReportTemplates() {
		mock.ExpectExec(regexp.QuoteMeta(seedReportTemplate)).
			WithArgs(tmpl.Name, tmpl.Description, string(tmpl.TemplateData), tmpl.Category, tmpl.CreatedBy).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()
}

func TestInitializeTables(t *testing.T) {
	store, mock := newMockStore(t)
	ctx := context.Background()

	t.Run("runs twice without error", func(t *testing.T) {
		expectInitialize(mock)
		expectInitialize(mock)

		require.NoError(t, store.InitializeTables(ctx))
		require.NoError(t, store.InitializeTables(ctx))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on failure", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(createStatements[0])).WillReturnError(assert.AnError)
		mock.ExpectRollback()

		err := store.InitializeTables(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "create table")
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSeedsAreGuarded(t *testing.T) {
	assert.Contains(t, seedSettings, "WHERE NOT EXISTS")
	assert.Contains(t, seedReportTemplate, "WHERE NOT EXISTS")
	for _, stmt := range createStatements {
		assert.Contains(t, stmt, "IF NOT EXISTS")
	}
	for _, stmt := range migrateStatements {
		assert.Contains(t, stmt, "IF NOT EXISTS")
	}
}

func TestDeleteReportTemplate(t *testing.T) {
	store, mock := newMockStore(t)
	ctx := context.Background()

	t.Run("default template is protected", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT is_default FROM report_templates WHERE id = \$1 FOR UPDATE`).
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows([]string{"is_default"}).AddRow(true))
		mock.ExpectRollback()

		err := store.DeleteReportTemplate(ctx, 1)
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrDefaultTemplate)
		assert.Contains(t, err.Error(), "cannot delete default templates")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("custom template is deleted", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT is_default FROM report_templates`).
			WithArgs(7).
			WillReturnRows(sqlmock.NewRows([]string{"is_default"}).AddRow(false))
		mock.ExpectExec(`DELETE FROM report_templates WHERE id = \$1`).
			WithArgs(7).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, store.DeleteReportTemplate(ctx, 7))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
