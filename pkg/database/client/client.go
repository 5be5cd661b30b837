/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package client

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	"k8s.io/klog/v2"

	"github.com/AMD-AIG-AIMA/artifact-manager/pkg/config"
	"github.com/AMD-AIG-AIMA/artifact-manager/pkg/database/utils"
	commonerrors "github.com/AMD-AIG-AIMA/artifact-manager/pkg/errors"
)

var (
	once     sync.Once
	instance *Client
)

// Client represents a database client that manages both sqlx and gorm database connections.
// The metadata path runs on sqlx; the gorm handle backs the vector store.
type Client struct {
	db              *sqlx.DB
	gorm            *gorm.DB
	*utils.DBConfig // Embedded database configuration
}

// NewClient creates a singleton instance of the database Client.
// It initializes the database configuration from common configuration,
// validates the parameters, establishes connections using both sqlx and gorm.
// The initialization happens only once even if called multiple times.
func NewClient() *Client {
	once.Do(func() {
		cfg := &utils.DBConfig{
			DBName:         config.GetDBName(),
			Username:       config.GetDBUser(),
			Password:       config.GetDBPassword(),
			Host:           config.GetDBHost(),
			Port:           config.GetDBPort(),
			SSLMode:        config.GetDBSslMode(),
			MaxOpenConns:   config.GetDBMaxOpenConns(),
			MaxIdleConns:   config.GetDBMaxIdleConns(),
			MaxLifetime:    time.Duration(config.GetDBMaxLifetimeSecond()) * time.Second,
			MaxIdleTime:    time.Duration(config.GetDBMaxIdleTimeSecond()) * time.Second,
			ConnectTimeout: config.GetDBConnectTimeoutSecond(),
			RequestTimeout: time.Duration(config.GetDBRequestTimeoutSecond()) * time.Second,
		}
		if err := checkParams(cfg); err != nil {
			klog.ErrorS(err, "failed to check db params")
			return
		}
		db, err := utils.Connect(cfg, utils.PgDriver)
		if err != nil {
			klog.Errorf("%s", err.Error())
			return
		}
		err = db.Ping()
		if err != nil {
			klog.ErrorS(err, "failed to ping db")
			return
		}
		gormDb, err := utils.ConnectGorm(cfg)
		if err != nil {
			klog.ErrorS(err, "failed to connect gorm")
			return
		}
		instance = &Client{db: db, DBConfig: cfg, gorm: gormDb}
		klog.Infof("init db-client successfully! conn-timeout: %d(s), request-timeout: %d(s)",
			cfg.ConnectTimeout, config.GetDBRequestTimeoutSecond())
	})
	return instance
}

// NewClientWithDB wraps an existing connection; used by tests.
func NewClientWithDB(db *sqlx.DB) *Client {
	return &Client{db: db, DBConfig: &utils.DBConfig{}}
}

// Close performs the Close operation.
func (c *Client) Close() {
	err := c.db.Close()
	if err != nil {
		klog.ErrorS(err, "failed to close db connection")
	}
}

// Gorm returns the gorm handle backing the vector store.
func (c *Client) Gorm() *gorm.DB {
	return c.gorm
}

// getDB retrieves DB for internal use.
func (c *Client) getDB() (*sqlx.DB, error) {
	if c.db == nil {
		return nil, commonerrors.NewInternalError("The client of db has not been initialized")
	}
	return c.db.Unsafe(), nil
}

// Session is a transaction-scoped view of the artifacts table. Read-only
// sessions always roll back on Close; writable ones roll back unless
// Commit was called.
type Session struct {
	tx       *sqlx.Tx
	readOnly bool
	done     bool
	timeout  time.Duration
}

// BeginSession opens a transaction.
func (c *Client) BeginSession(ctx context.Context, readOnly bool) (*Session, error) {
	if c.db == nil {
		return nil, commonerrors.NewInternalError("The client of db has not been initialized")
	}
	tx, err := c.db.Unsafe().BeginTxx(ctx, &sql.TxOptions{ReadOnly: readOnly})
	if err != nil {
		klog.ErrorS(err, "failed to begin transaction", "readOnly", readOnly)
		return nil, err
	}
	return &Session{tx: tx, readOnly: readOnly, timeout: c.RequestTimeout}, nil
}

// Commit commits the transaction. Read-only sessions refuse.
func (s *Session) Commit() error {
	if s.readOnly {
		return commonerrors.NewInternalError("cannot commit a read-only session")
	}
	s.done = true
	return s.tx.Commit()
}

// Close rolls back the transaction if it has not been committed.
func (s *Session) Close() {
	if s.done {
		return
	}
	s.done = true
	if err := s.tx.Rollback(); err != nil && err != sql.ErrTxDone {
		klog.ErrorS(err, "failed to rollback transaction")
	}
}

func (s *Session) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout > 0 {
		return context.WithTimeout(ctx, s.timeout)
	}
	return ctx, func() {}
}

// checkParams checks Params and returns the result.
func checkParams(cfg *utils.DBConfig) error {
	var errs []error
	if cfg.DBName == "" {
		errs = append(errs, fmt.Errorf("dbname not found"))
	}
	if cfg.Username == "" {
		errs = append(errs, fmt.Errorf("username not found"))
	}
	if cfg.Password == "" {
		errs = append(errs, fmt.Errorf("password not found"))
	}
	if cfg.Host == "" {
		errs = append(errs, fmt.Errorf("host not found"))
	}
	if cfg.SSLMode == "" {
		errs = append(errs, fmt.Errorf("ssl_mode not found"))
	}
	if cfg.Port == 0 {
		errs = append(errs, fmt.Errorf("port not found"))
	}
	return utilerrors.NewAggregate(errs)
}
