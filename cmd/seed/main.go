// Seed creates the workflow tables and loads the demo fixtures: four
// pinners, a dozen animal images, and three reviewers.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/boliek/contentsafety/internal/config"
	"github.com/boliek/contentsafety/internal/domain/enums"
	"github.com/boliek/contentsafety/internal/infra/logger"
	pgrepo "github.com/boliek/contentsafety/internal/repo/postgres"
)

const mediaBaseURL = "https://s3-us-west-2.amazonaws.com/boliek-public/animals/"

var schema = []string{
	`CREATE TABLE IF NOT EXISTS pinners (
		pinner_id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		name      VARCHAR(40) NOT NULL,
		email     VARCHAR(40) NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS contents (
		content_id     BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		url            VARCHAR(80) NOT NULL,
		display_status VARCHAR(20) NOT NULL DEFAULT 'good',
		pinner_id      BIGINT NOT NULL REFERENCES pinners (pinner_id)
	)`,
	`CREATE TABLE IF NOT EXISTS reviewers (
		reviewer_id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		name        VARCHAR(40) NOT NULL,
		email       VARCHAR(40) NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS complaints (
		complaint_id        BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		complaint_timestamp TIMESTAMPTZ NOT NULL,
		complaint_type      VARCHAR(80) NOT NULL,
		process_status      VARCHAR(20) NOT NULL DEFAULT 'complaint',
		display_status      VARCHAR(20) NOT NULL DEFAULT 'good',
		review_timestamp    TIMESTAMPTZ,
		pinner_id           BIGINT NOT NULL REFERENCES pinners (pinner_id),
		reviewer_id         BIGINT REFERENCES reviewers (reviewer_id),
		content_id          BIGINT NOT NULL REFERENCES contents (content_id)
	)`,
	`CREATE INDEX IF NOT EXISTS complaints_content_status_idx
		ON complaints (content_id, process_status)`,
}

type person struct {
	name  string
	email string
}

var pinners = []person{
	{"Mary", "mary@example.com"},
	{"John", "john@whatits.com"},
	{"Susan", "susan@gadit.com"},
	{"Carl", "carl@where.com"},
}

var reviewers = []person{
	{"Alice", "alice@example.com"},
	{"Bob", "bob@whatits.com"},
	{"Carol", "carol@gadit.com"},
}

// contents maps image file name to the seeded pinner owning it, in insert
// order so content ids are stable across runs against a fresh database.
var contents = []struct {
	file   string
	pinner string
}{
	{"cat0.jpg", "carl@where.com"},
	{"cat1.jpg", "carl@where.com"},
	{"cat2.jpg", "mary@example.com"},
	{"cat3.jpg", "carl@where.com"},
	{"dog0.jpg", "mary@example.com"},
	{"dog1.jpg", "mary@example.com"},
	{"dog2.jpg", "john@whatits.com"},
	{"dog3.jpg", "john@whatits.com"},
	{"reptile0.jpg", "mary@example.com"},
	{"reptile1.jpg", "john@whatits.com"},
	{"reptile2.jpg", "susan@gadit.com"},
	{"reptile3.jpg", "susan@gadit.com"},
}

func main() {
	cfgPath := os.Getenv("APP_CONFIG")
	if cfgPath == "" {
		cfgPath = "configs/config.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = log.Sync()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("seed failed", zap.Error(err))
	}
	log.Info("seed completed")
}

func run(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	pool, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()

	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	log.Info("schema ready")

	var existing int64
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM pinners`).Scan(&existing); err != nil {
		return fmt.Errorf("count pinners: %w", err)
	}
	if existing > 0 {
		log.Info("fixtures already loaded, skipping", zap.Int64("pinners", existing))
		return nil
	}

	pinnerRepo := pgrepo.NewPinnerRepo(pool)
	reviewerRepo := pgrepo.NewReviewerRepo(pool)
	contentRepo := pgrepo.NewContentRepo(pool)

	pinnerIDs := make(map[string]int64, len(pinners))
	for _, p := range pinners {
		id, err := pinnerRepo.Create(ctx, p.name, p.email)
		if err != nil {
			return fmt.Errorf("seed pinner %s: %w", p.email, err)
		}
		pinnerIDs[p.email] = id
	}

	for _, rv := range reviewers {
		if _, err := reviewerRepo.Create(ctx, rv.name, rv.email); err != nil {
			return fmt.Errorf("seed reviewer %s: %w", rv.email, err)
		}
	}

	for _, c := range contents {
		pinnerID, ok := pinnerIDs[c.pinner]
		if !ok {
			return fmt.Errorf("seed content %s: unknown pinner %s", c.file, c.pinner)
		}
		if _, err := contentRepo.Create(ctx, mediaBaseURL+c.file, enums.DisplayStatusGood, pinnerID); err != nil {
			return fmt.Errorf("seed content %s: %w", c.file, err)
		}
	}

	log.Info("fixtures loaded",
		zap.Int("pinners", len(pinners)),
		zap.Int("reviewers", len(reviewers)),
		zap.Int("contents", len(contents)),
	)
	return nil
}
