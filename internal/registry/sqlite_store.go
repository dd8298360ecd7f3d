package registry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-key-enroll/internal/logger"
	"github.com/MKhiriev/go-key-enroll/models"
)

type sqliteStore struct {
	*DB
	logger *logger.Logger
}

// NewSQLiteStore wraps an open registry database in a [Store]. The schema is
// managed by the migrations package; callers run [DB.Migrate] before handing
// the database over.
func NewSQLiteStore(db *DB, logger *logger.Logger) Store {
	return &sqliteStore{
		DB:     db,
		logger: logger,
	}
}

func (s *sqliteStore) GetKeyBundle(ctx context.Context, name models.KeyBundleName) (models.KeyBundle, error) {
	log := logger.FromContext(ctx)

	query, args, err := sq.
		Select("handle", "status", "type", "public_key", "private_key", "symmetric_key").
		From("keys").
		Where(sq.Eq{"bundle_name": name}).
		OrderBy("rowid").
		ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "sqliteStore.GetKeyBundle").
			Str("bundle_name", string(name)).
			Msg("failed to build key bundle query")
		return models.KeyBundle{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "sqliteStore.GetKeyBundle").
			Str("bundle_name", string(name)).
			Msg("failed to query key bundle")
		return models.KeyBundle{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	bundle := models.NewKeyBundle(name)

	for rows.Next() {
		var key models.Key

		scanErr := rows.Scan(
			&key.Handle,
			&key.Status,
			&key.Type,
			&key.PublicKey,
			&key.PrivateKey,
			&key.SymmetricKey,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "sqliteStore.GetKeyBundle").
				Str("bundle_name", string(name)).
				Msg("failed to scan key row")
			return models.KeyBundle{}, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		bundle.Keys = append(bundle.Keys, key)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "sqliteStore.GetKeyBundle").
			Str("bundle_name", string(name)).
			Msg("error occurred during rows iteration")
		return models.KeyBundle{}, fmt.Errorf("%w: %w", ErrExecutingQuery, rowsErr)
	}

	directive, err := s.getKeyDirective(ctx, name)
	if err != nil {
		return models.KeyBundle{}, err
	}
	bundle.KeyDirective = directive

	return bundle, nil
}

func (s *sqliteStore) AddEnrolledKey(ctx context.Context, name models.KeyBundleName, key models.Key) error {
	log := logger.FromContext(ctx)

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "sqliteStore.AddEnrolledKey").
			Str("bundle_name", string(name)).
			Str("handle", key.Handle).
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	// An active key replaces the bundle's active member.
	if key.Status == models.KeyStatusActive {
		if err = s.demoteBundleKeys(ctx, tx, name, key.Handle); err != nil {
			return err
		}
	}

	query, args, err := sq.
		Insert("keys").
		Columns("bundle_name", "handle", "status", "type", "public_key", "private_key", "symmetric_key").
		Values(name, key.Handle, key.Status, key.Type, key.PublicKey, key.PrivateKey, key.SymmetricKey).
		Suffix(`ON CONFLICT (bundle_name, handle) DO UPDATE SET
			status        = excluded.status,
			type          = excluded.type,
			public_key    = excluded.public_key,
			private_key   = excluded.private_key,
			symmetric_key = excluded.symmetric_key`).
		ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "sqliteStore.AddEnrolledKey").
			Str("bundle_name", string(name)).
			Str("handle", key.Handle).
			Msg("failed to build key upsert")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "sqliteStore.AddEnrolledKey").
			Str("bundle_name", string(name)).
			Str("handle", key.Handle).
			Msg("failed to upsert enrolled key")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "sqliteStore.AddEnrolledKey").
			Str("bundle_name", string(name)).
			Str("handle", key.Handle).
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	return nil
}

func (s *sqliteStore) DeleteKey(ctx context.Context, name models.KeyBundleName, handle string) error {
	log := logger.FromContext(ctx)

	query, args, err := sq.
		Delete("keys").
		Where(sq.Eq{"bundle_name": name, "handle": handle}).
		ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "sqliteStore.DeleteKey").
			Str("bundle_name", string(name)).
			Str("handle", handle).
			Msg("failed to build key delete")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "sqliteStore.DeleteKey").
			Str("bundle_name", string(name)).
			Str("handle", handle).
			Msg("failed to delete key")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *sqliteStore) SetActiveKey(ctx context.Context, name models.KeyBundleName, handle string) error {
	log := logger.FromContext(ctx)

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "sqliteStore.SetActiveKey").
			Str("bundle_name", string(name)).
			Str("handle", handle).
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	query, args, err := sq.
		Update("keys").
		Set("status", models.KeyStatusActive).
		Where(sq.Eq{"bundle_name": name, "handle": handle}).
		ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "sqliteStore.SetActiveKey").
			Str("bundle_name", string(name)).
			Str("handle", handle).
			Msg("failed to build activate statement")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "sqliteStore.SetActiveKey").
			Str("bundle_name", string(name)).
			Str("handle", handle).
			Msg("failed to activate key")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).
			Str("func", "sqliteStore.SetActiveKey").
			Str("bundle_name", string(name)).
			Str("handle", handle).
			Msg("failed to get rows affected after activation")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if rowsAffected == 0 {
		log.Warn().
			Str("func", "sqliteStore.SetActiveKey").
			Str("bundle_name", string(name)).
			Str("handle", handle).
			Msg("no rows affected during activation: key not found")
		return fmt.Errorf("%w: bundle %q handle %q", ErrKeyNotFound, name, handle)
	}

	if err = s.demoteBundleKeys(ctx, tx, name, handle); err != nil {
		return err
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "sqliteStore.SetActiveKey").
			Str("bundle_name", string(name)).
			Str("handle", handle).
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	return nil
}

func (s *sqliteStore) SetKeyDirective(ctx context.Context, name models.KeyBundleName, directive models.KeyDirective) error {
	log := logger.FromContext(ctx)

	var policyName string
	var policyVersion int64
	if directive.PolicyReference != nil {
		policyName = directive.PolicyReference.Name
		policyVersion = directive.PolicyReference.Version
	}

	query, args, err := sq.
		Insert("key_directives").
		Columns("bundle_name", "policy_name", "policy_version", "enroll_time_millis").
		Values(name, policyName, policyVersion, directive.EnrollTimeMillis).
		Suffix(`ON CONFLICT (bundle_name) DO UPDATE SET
			policy_name        = excluded.policy_name,
			policy_version     = excluded.policy_version,
			enroll_time_millis = excluded.enroll_time_millis`).
		ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "sqliteStore.SetKeyDirective").
			Str("bundle_name", string(name)).
			Msg("failed to build key directive upsert")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "sqliteStore.SetKeyDirective").
			Str("bundle_name", string(name)).
			Msg("failed to upsert key directive")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *sqliteStore) GetClientDirective(ctx context.Context) (*models.ClientDirective, error) {
	log := logger.FromContext(ctx)

	query, args, err := sq.
		Select("checkin_delay_millis", "retry_attempts", "retry_period_millis", "policy_name", "policy_version").
		From("client_directive").
		Where(sq.Eq{"id": 1}).
		ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "sqliteStore.GetClientDirective").
			Msg("failed to build client directive query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var directive models.ClientDirective
	var policyName string
	var policyVersion int64

	scanErr := s.DB.QueryRowContext(ctx, query, args...).Scan(
		&directive.CheckinDelayMillis,
		&directive.RetryAttempts,
		&directive.RetryPeriodMillis,
		&policyName,
		&policyVersion,
	)
	if errors.Is(scanErr, sql.ErrNoRows) {
		return nil, nil
	}
	if scanErr != nil {
		log.Err(scanErr).
			Str("func", "sqliteStore.GetClientDirective").
			Msg("failed to scan client directive row")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
	}

	if policyName != "" || policyVersion != 0 {
		directive.PolicyReference = &models.PolicyReference{Name: policyName, Version: policyVersion}
	}

	return &directive, nil
}

func (s *sqliteStore) SetClientDirective(ctx context.Context, directive models.ClientDirective) error {
	log := logger.FromContext(ctx)

	var policyName string
	var policyVersion int64
	if directive.PolicyReference != nil {
		policyName = directive.PolicyReference.Name
		policyVersion = directive.PolicyReference.Version
	}

	query, args, err := sq.
		Insert("client_directive").
		Columns("id", "checkin_delay_millis", "retry_attempts", "retry_period_millis", "policy_name", "policy_version").
		Values(1, directive.CheckinDelayMillis, directive.RetryAttempts, directive.RetryPeriodMillis, policyName, policyVersion).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			checkin_delay_millis = excluded.checkin_delay_millis,
			retry_attempts       = excluded.retry_attempts,
			retry_period_millis  = excluded.retry_period_millis,
			policy_name          = excluded.policy_name,
			policy_version       = excluded.policy_version`).
		ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "sqliteStore.SetClientDirective").
			Msg("failed to build client directive upsert")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "sqliteStore.SetClientDirective").
			Msg("failed to upsert client directive")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// demoteBundleKeys marks every key of the bundle except keptHandle inactive.
// Runs inside the caller's transaction.
func (s *sqliteStore) demoteBundleKeys(ctx context.Context, tx *sql.Tx, name models.KeyBundleName, keptHandle string) error {
	log := logger.FromContext(ctx)

	query, args, err := sq.
		Update("keys").
		Set("status", models.KeyStatusInactive).
		Where(sq.Eq{"bundle_name": name}).
		Where(sq.NotEq{"handle": keptHandle}).
		ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "sqliteStore.demoteBundleKeys").
			Str("bundle_name", string(name)).
			Msg("failed to build demote statement")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "sqliteStore.demoteBundleKeys").
			Str("bundle_name", string(name)).
			Msg("failed to demote bundle keys")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *sqliteStore) getKeyDirective(ctx context.Context, name models.KeyBundleName) (*models.KeyDirective, error) {
	log := logger.FromContext(ctx)

	query, args, err := sq.
		Select("policy_name", "policy_version", "enroll_time_millis").
		From("key_directives").
		Where(sq.Eq{"bundle_name": name}).
		ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "sqliteStore.getKeyDirective").
			Str("bundle_name", string(name)).
			Msg("failed to build key directive query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var policyName string
	var policyVersion, enrollTimeMillis int64

	scanErr := s.DB.QueryRowContext(ctx, query, args...).Scan(&policyName, &policyVersion, &enrollTimeMillis)
	if errors.Is(scanErr, sql.ErrNoRows) {
		return nil, nil
	}
	if scanErr != nil {
		log.Err(scanErr).
			Str("func", "sqliteStore.getKeyDirective").
			Str("bundle_name", string(name)).
			Msg("failed to scan key directive row")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
	}

	directive := &models.KeyDirective{EnrollTimeMillis: enrollTimeMillis}
	if policyName != "" || policyVersion != 0 {
		directive.PolicyReference = &models.PolicyReference{Name: policyName, Version: policyVersion}
	}

	return directive, nil
}
