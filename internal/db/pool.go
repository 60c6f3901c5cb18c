package db

import (
	"context"
	"fmt"
	"net"
	"net/url"

	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"
)

type NewDBPoolParams struct {
	DBHost         string
	DBPort         string
	DBName         string
	DBUser         string
	DBPassword     string
	MaxConns       int32
	TracingEnabled bool
}

func NewDBPool(ctx context.Context, params NewDBPoolParams) (*pgxpool.Pool, error) {
	user := params.DBUser
	if user == "" {
		user = "postgres"
	}
	dbURL := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(user, params.DBPassword),
		Host:   net.JoinHostPort(params.DBHost, params.DBPort),
		Path:   "/" + params.DBName,
	}
	if params.DBPassword == "" {
		dbURL.User = url.User(user)
	}

	poolConfig, err := pgxpool.ParseConfig(dbURL.String())
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}
	if params.MaxConns > 0 {
		poolConfig.MaxConns = params.MaxConns
	}

	if params.TracingEnabled {
		poolConfig.ConnConfig.Tracer = otelpgx.NewTracer()
	}

	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	return db, nil
}
