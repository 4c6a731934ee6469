package bootstrap

import (
	"context"
	"fmt"

	"github.com/locvowork/hrms_gateway/internal/config"
	"github.com/locvowork/hrms_gateway/internal/credential"
	"github.com/locvowork/hrms_gateway/internal/database"
)

var _ credential.Store = (*database.DatastoreClient)(nil)

// OpenCredentialStore opens the store selected by CREDENTIAL_STORE. The
// returned func releases it.
func OpenCredentialStore(ctx context.Context, cfg *config.EnvConfig) (credential.Store, func() error, error) {
	switch cfg.CREDENTIAL_STORE {
	case "postgres":
		db, err := database.NewPostgresDB(ctx, database.Config{
			Host:            cfg.DB_HOST,
			Port:            cfg.DB_PORT,
			User:            cfg.DB_USER,
			Password:        cfg.DB_PASSWORD,
			DBName:          cfg.DB_NAME,
			SSLMode:         cfg.DB_SSL_MODE,
			MaxOpenConns:    cfg.DB_MAX_OPEN_CONNS,
			MaxIdleConns:    cfg.DB_MAX_IDLE_CONNS,
			ConnMaxLifetime: cfg.DB_CONN_MAX_LIFETIME,
		})
		if err != nil {
			return nil, nil, err
		}
		store := credential.NewSQLStore(db, "")
		if err := store.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return store, db.Close, nil
	case "datastore":
		dc, err := database.NewDatastoreClient(ctx, cfg.DATASTORE_PROJECT)
		if err != nil {
			return nil, nil, err
		}
		return dc, dc.Close, nil
	case "file", "":
		return credential.NewFileStore(cfg.CREDENTIAL_FILE), func() error { return nil }, nil
	}
	return nil, nil, fmt.Errorf("unknown credential store %q", cfg.CREDENTIAL_STORE)
}
