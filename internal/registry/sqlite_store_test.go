// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package registry

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-key-enroll/internal/logger"
	"github.com/MKhiriev/go-key-enroll/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLiteStore(t *testing.T) (Store, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.NewLogger("test")
	store := NewSQLiteStore(&DB{DB: db, logger: l}, l)
	return store, mock, db
}

var keyColumns = []string{"handle", "status", "type", "public_key", "private_key", "symmetric_key"}
var keyDirectiveColumns = []string{"policy_name", "policy_version", "enroll_time_millis"}
var clientDirectiveColumns = []string{"checkin_delay_millis", "retry_attempts", "retry_period_millis", "policy_name", "policy_version"}

// ── GetKeyBundle ──

func TestSQLiteStore_GetKeyBundle(t *testing.T) {
	ctx := context.Background()

	t.Run("success: keys and directive", func(t *testing.T) {
		store, mock, db := newTestSQLiteStore(t)
		defer db.Close()

		keyRows := sqlmock.NewRows(keyColumns).
			AddRow("device_key", "active", "p256", []byte("pub"), []byte("priv"), nil).
			AddRow("old_key", "inactive", "p256", []byte("pub-old"), []byte("priv-old"), nil)
		mock.ExpectQuery("SELECT handle, status").
			WithArgs("device_identity").
			WillReturnRows(keyRows)

		directiveRows := sqlmock.NewRows(keyDirectiveColumns).
			AddRow("policy", int64(2), int64(1700000000000))
		mock.ExpectQuery("FROM key_directives").
			WithArgs("device_identity").
			WillReturnRows(directiveRows)

		bundle, err := store.GetKeyBundle(ctx, models.KeyBundleDeviceIdentity)
		require.NoError(t, err)
		assert.Equal(t, models.KeyBundleDeviceIdentity, bundle.Name)
		require.Len(t, bundle.Keys, 2)
		assert.Equal(t, "device_key", bundle.Keys[0].Handle)
		assert.Equal(t, models.KeyStatusActive, bundle.Keys[0].Status)
		assert.Equal(t, models.KeyTypeP256, bundle.Keys[0].Type)
		require.NotNil(t, bundle.KeyDirective)
		require.NotNil(t, bundle.KeyDirective.PolicyReference)
		assert.Equal(t, "policy", bundle.KeyDirective.PolicyReference.Name)
		assert.Equal(t, int64(1700000000000), bundle.KeyDirective.EnrollTimeMillis)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success: empty bundle without directive", func(t *testing.T) {
		store, mock, db := newTestSQLiteStore(t)
		defer db.Close()

		mock.ExpectQuery("SELECT handle, status").
			WithArgs("remote_unlock").
			WillReturnRows(sqlmock.NewRows(keyColumns))
		mock.ExpectQuery("FROM key_directives").
			WithArgs("remote_unlock").
			WillReturnRows(sqlmock.NewRows(keyDirectiveColumns))

		bundle, err := store.GetKeyBundle(ctx, models.KeyBundleRemoteUnlock)
		require.NoError(t, err)
		assert.Equal(t, models.KeyBundleRemoteUnlock, bundle.Name)
		assert.Empty(t, bundle.Keys)
		assert.Nil(t, bundle.KeyDirective)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error: query fails", func(t *testing.T) {
		store, mock, db := newTestSQLiteStore(t)
		defer db.Close()

		mock.ExpectQuery("SELECT handle, status").
			WillReturnError(errors.New("db is down"))

		_, err := store.GetKeyBundle(ctx, models.KeyBundleDeviceIdentity)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrExecutingQuery)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error: scan fails on wrong row shape", func(t *testing.T) {
		store, mock, db := newTestSQLiteStore(t)
		defer db.Close()

		rows := sqlmock.NewRows([]string{"handle"}).AddRow("only-handle")
		mock.ExpectQuery("SELECT handle, status").
			WillReturnRows(rows)

		_, err := store.GetKeyBundle(ctx, models.KeyBundleDeviceIdentity)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrScanningRow)
	})
}

// ── AddEnrolledKey ──

func TestSQLiteStore_AddEnrolledKey(t *testing.T) {
	ctx := context.Background()

	t.Run("success: active key demotes the rest first", func(t *testing.T) {
		store, mock, db := newTestSQLiteStore(t)
		defer db.Close()

		key := models.NewAsymmetricKey("new_key", models.KeyStatusActive, models.KeyTypeP256, []byte("pub"), []byte("priv"))

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE keys SET status").
			WithArgs("inactive", "device_identity", "new_key").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO keys").
			WithArgs("device_identity", "new_key", "active", "p256", []byte("pub"), []byte("priv"), []byte(nil)).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		err := store.AddEnrolledKey(ctx, models.KeyBundleDeviceIdentity, key)
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success: inactive key skips the demotion", func(t *testing.T) {
		store, mock, db := newTestSQLiteStore(t)
		defer db.Close()

		key := models.NewSymmetricKey("backup", models.KeyStatusInactive, models.KeyTypeRaw256, []byte("material"))

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO keys").
			WithArgs("remote_unlock", "backup", "inactive", "raw256", []byte(nil), []byte(nil), []byte("material")).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		err := store.AddEnrolledKey(ctx, models.KeyBundleRemoteUnlock, key)
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error: begin transaction fails", func(t *testing.T) {
		store, mock, db := newTestSQLiteStore(t)
		defer db.Close()

		mock.ExpectBegin().WillReturnError(errors.New("cannot begin"))

		err := store.AddEnrolledKey(ctx, models.KeyBundleRemoteUnlock,
			models.NewSymmetricKey("h", models.KeyStatusInactive, models.KeyTypeRaw256, []byte("m")))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrBeginningTransaction)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error: upsert fails and rolls back", func(t *testing.T) {
		store, mock, db := newTestSQLiteStore(t)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO keys").
			WillReturnError(errors.New("disk full"))
		mock.ExpectRollback()

		err := store.AddEnrolledKey(ctx, models.KeyBundleRemoteUnlock,
			models.NewSymmetricKey("h", models.KeyStatusInactive, models.KeyTypeRaw256, []byte("m")))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrExecutingStatement)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

// ── DeleteKey ──

func TestSQLiteStore_DeleteKey(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		store, mock, db := newTestSQLiteStore(t)
		defer db.Close()

		mock.ExpectExec("DELETE FROM keys").
			WithArgs("message_relay", "doomed").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := store.DeleteKey(ctx, models.KeyBundleMessageRelay, "doomed")
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success: absent key is not an error", func(t *testing.T) {
		store, mock, db := newTestSQLiteStore(t)
		defer db.Close()

		mock.ExpectExec("DELETE FROM keys").
			WithArgs("message_relay", "never-existed").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := store.DeleteKey(ctx, models.KeyBundleMessageRelay, "never-existed")
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error: exec fails", func(t *testing.T) {
		store, mock, db := newTestSQLiteStore(t)
		defer db.Close()

		mock.ExpectExec("DELETE FROM keys").
			WillReturnError(errors.New("locked"))

		err := store.DeleteKey(ctx, models.KeyBundleMessageRelay, "doomed")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrExecutingStatement)
	})
}

// ── SetActiveKey ──

func TestSQLiteStore_SetActiveKey(t *testing.T) {
	ctx := context.Background()

	t.Run("success: activates and demotes the rest", func(t *testing.T) {
		store, mock, db := newTestSQLiteStore(t)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE keys SET status").
			WithArgs("active", "remote_unlock", "b").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE keys SET status").
			WithArgs("inactive", "remote_unlock", "b").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := store.SetActiveKey(ctx, models.KeyBundleRemoteUnlock, "b")
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error: unknown handle reports ErrKeyNotFound", func(t *testing.T) {
		store, mock, db := newTestSQLiteStore(t)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE keys SET status").
			WithArgs("active", "remote_unlock", "missing").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := store.SetActiveKey(ctx, models.KeyBundleRemoteUnlock, "missing")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrKeyNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error: activation exec fails", func(t *testing.T) {
		store, mock, db := newTestSQLiteStore(t)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE keys SET status").
			WillReturnError(errors.New("locked"))
		mock.ExpectRollback()

		err := store.SetActiveKey(ctx, models.KeyBundleRemoteUnlock, "b")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrExecutingStatement)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

// ── directives ──

func TestSQLiteStore_SetKeyDirective(t *testing.T) {
	ctx := context.Background()

	t.Run("success: with policy reference", func(t *testing.T) {
		store, mock, db := newTestSQLiteStore(t)
		defer db.Close()

		mock.ExpectExec("INSERT INTO key_directives").
			WithArgs("device_identity", "policy", int64(3), int64(42)).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := store.SetKeyDirective(ctx, models.KeyBundleDeviceIdentity, models.KeyDirective{
			PolicyReference:  &models.PolicyReference{Name: "policy", Version: 3},
			EnrollTimeMillis: 42,
		})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success: nil policy reference stored as empty", func(t *testing.T) {
		store, mock, db := newTestSQLiteStore(t)
		defer db.Close()

		mock.ExpectExec("INSERT INTO key_directives").
			WithArgs("device_identity", "", int64(0), int64(42)).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := store.SetKeyDirective(ctx, models.KeyBundleDeviceIdentity, models.KeyDirective{EnrollTimeMillis: 42})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSQLiteStore_ClientDirective(t *testing.T) {
	ctx := context.Background()

	t.Run("get: no stored directive returns nil", func(t *testing.T) {
		store, mock, db := newTestSQLiteStore(t)
		defer db.Close()

		mock.ExpectQuery("FROM client_directive").
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows(clientDirectiveColumns))

		directive, err := store.GetClientDirective(ctx)
		require.NoError(t, err)
		assert.Nil(t, directive)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("get: success with policy reference", func(t *testing.T) {
		store, mock, db := newTestSQLiteStore(t)
		defer db.Close()

		rows := sqlmock.NewRows(clientDirectiveColumns).
			AddRow(int64(43200000), int64(3), int64(600000), "default", int64(1))
		mock.ExpectQuery("FROM client_directive").
			WithArgs(1).
			WillReturnRows(rows)

		directive, err := store.GetClientDirective(ctx)
		require.NoError(t, err)
		require.NotNil(t, directive)
		assert.Equal(t, int64(43200000), directive.CheckinDelayMillis)
		assert.Equal(t, int32(3), directive.RetryAttempts)
		require.NotNil(t, directive.PolicyReference)
		assert.Equal(t, "default", directive.PolicyReference.Name)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("get: empty policy columns leave reference nil", func(t *testing.T) {
		store, mock, db := newTestSQLiteStore(t)
		defer db.Close()

		rows := sqlmock.NewRows(clientDirectiveColumns).
			AddRow(int64(1000), int64(1), int64(2000), "", int64(0))
		mock.ExpectQuery("FROM client_directive").
			WithArgs(1).
			WillReturnRows(rows)

		directive, err := store.GetClientDirective(ctx)
		require.NoError(t, err)
		require.NotNil(t, directive)
		assert.Nil(t, directive.PolicyReference)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("set: upsert", func(t *testing.T) {
		store, mock, db := newTestSQLiteStore(t)
		defer db.Close()

		mock.ExpectExec("INSERT INTO client_directive").
			WithArgs(1, int64(43200000), int32(3), int64(600000), "default", int64(1)).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := store.SetClientDirective(ctx, models.ClientDirective{
			CheckinDelayMillis: 43200000,
			RetryAttempts:      3,
			RetryPeriodMillis:  600000,
			PolicyReference:    &models.PolicyReference{Name: "default", Version: 1},
		})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
