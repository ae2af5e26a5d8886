package main

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"conductor/internal/audit"
	authservice "conductor/internal/auth/service"
	sessionstore "conductor/internal/auth/store/session"
	userstore "conductor/internal/auth/store/user"
	courseservice "conductor/internal/course/service"
	coursestore "conductor/internal/course/store/course"
	enrollmentstore "conductor/internal/course/store/enrollment"
	lecturestore "conductor/internal/course/store/lecture"
	"conductor/internal/platform/config"
	"conductor/internal/platform/postgres"
	"conductor/internal/platform/redis"
	"conductor/pkg/platform/tx"
)

// infra holds the external connections; either may be nil.
type infra struct {
	db    *sql.DB
	redis *redis.Client
	log   *slog.Logger
}

func buildInfra(ctx context.Context, cfg *config.Config, log *slog.Logger) (*infra, error) {
	in := &infra{log: log}
	if cfg.StorageDriver == config.BackendPostgres {
		db, err := postgres.Open(ctx, cfg.Database.URL, postgres.Options{
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		})
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		in.db = db
	}
	if cfg.SessionBackend == config.BackendRedis {
		client, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			in.Close()
			return nil, err
		}
		in.redis = client
	}
	return in, nil
}

func (in *infra) Close() {
	if in.redis != nil {
		if err := in.redis.Close(); err != nil {
			in.log.Warn("failed to close redis", "error", err)
		}
	}
	if in.db != nil {
		if err := in.db.Close(); err != nil {
			in.log.Warn("failed to close postgres", "error", err)
		}
	}
}

type userStore interface {
	authservice.UserStore
	courseservice.UserReader
}

type stores struct {
	users       userStore
	sessions    authservice.SessionStore
	courses     courseservice.CourseStore
	enrollments courseservice.EnrollmentStore
	lectures    courseservice.LectureStore
	tx          tx.Runner
}

func buildStores(ctx context.Context, cfg *config.Config, in *infra) (*stores, error) {
	s := &stores{}
	switch cfg.StorageDriver {
	case config.BackendPostgres:
		s.users = userstore.NewPostgres(in.db)
		s.courses = coursestore.NewPostgres(in.db)
		s.enrollments = enrollmentstore.NewPostgres(in.db)
		s.lectures = lecturestore.NewPostgres(in.db)
		s.tx = tx.NewPostgresRunner(in.db)
	default:
		s.users = userstore.New()
		s.courses = coursestore.New()
		s.enrollments = enrollmentstore.New()
		s.lectures = lecturestore.New()
		s.tx = tx.NoopRunner{}
	}

	switch cfg.SessionBackend {
	case config.BackendPostgres:
		s.sessions = sessionstore.NewPostgres(in.db)
	case config.BackendRedis:
		if in.redis == nil {
			return nil, errors.New("redis session backend selected without a redis client")
		}
		s.sessions = sessionstore.NewRedis(in.redis.Client)
	default:
		s.sessions = sessionstore.New()
	}
	in.log.InfoContext(ctx, "stores ready",
		"storage_driver", cfg.StorageDriver,
		"session_backend", cfg.SessionBackend,
	)
	return s, nil
}

// buildAudit fans events out to the log and, when brokers are configured, to
// Kafka. The returned func drains the buffer and flushes the producer.
func buildAudit(cfg *config.Config, log *slog.Logger) (*audit.Publisher, func(), error) {
	sinks := audit.MultiStore{audit.NewLogStore(log)}
	var kafka *audit.KafkaStore
	if len(cfg.Audit.KafkaBrokers) > 0 {
		var err error
		kafka, err = audit.NewKafkaStore(cfg.Audit.KafkaBrokers, cfg.Audit.Topic, log)
		if err != nil {
			return nil, nil, err
		}
		sinks = append(sinks, kafka)
	}
	publisher := audit.NewPublisher(sinks,
		audit.WithAsyncBuffer(cfg.Audit.BufferSize),
		audit.WithLogger(log),
	)
	closeFn := func() {
		publisher.Close()
		if kafka == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := kafka.Close(ctx); err != nil {
			log.Warn("failed to flush audit events", "error", err)
		}
	}
	return publisher, closeFn, nil
}

func ephemeralSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}
