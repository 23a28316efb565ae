package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"taaza-khabar/internal/config"
	apphttp "taaza-khabar/internal/http"
	"taaza-khabar/internal/news"
	"taaza-khabar/internal/repository/sqlite"
	"taaza-khabar/internal/service"
	"taaza-khabar/internal/session"
	"taaza-khabar/internal/storage"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	configureLogger(logger, cfg)

	if strings.TrimSpace(cfg.News.APIKey) == "" {
		logger.Warn("news api key is not set; /get-news will fail")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	repos := sqlite.NewRepositories(db)
	if err := repos.Init(ctx); err != nil {
		logger.Fatalf("init database: %v", err)
	}

	hasher, err := service.NewPasswordHasher(cfg.Auth.PasswordHashing)
	if err != nil {
		logger.Fatalf("password hashing: %v", err)
	}
	if _, plain := hasher.(service.PlainPasswords); plain {
		logger.Warn("passwords are stored in plain text; set auth.password_hashing=bcrypt")
	}

	sessionStore, err := buildSessionStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("setup sessions: %v", err)
	}
	sessions := session.NewManager(sessionStore, session.Config{
		Secret:     []byte(cfg.Session.Secret),
		CookieName: cfg.Session.CookieName,
		TTL:        cfg.Session.TTL,
		Secure:     cfg.Session.Secure,
	})

	gateway := news.NewClient(news.Config{
		BaseURL: cfg.News.BaseURL,
		APIKey:  cfg.News.APIKey,
		Timeout: cfg.News.Timeout,
	})

	backup, err := buildBackup(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("setup backup: %v", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(apphttp.Recovery(logger), apphttp.RequestLogger(logger))
	handler := apphttp.NewHandler(apphttp.Services{
		Users:    service.NewUserService(repos.Users, hasher),
		Search:   service.NewSearchService(gateway, repos.History),
		Feedback: service.NewFeedbackService(repos.Feedback),
		Tags:     service.NewTagService(repos.Tags),
		Dump:     service.NewDumpService(repos.Users, repos.History, repos.Feedback, repos.Tags),
	}, sessions, apphttp.Options{
		IndexPath:     cfg.Server.IndexPath,
		NewsPerMinute: cfg.RateLimit.NewsPerMinute,
		Logger:        logger,
	})
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	if backup != nil {
		backupCtx, cancelBackup := context.WithTimeout(context.Background(), 2*time.Minute)
		if err := uploadSnapshot(backupCtx, backup, cfg, logger, db); err != nil {
			logger.Warnf("database backup: %v", err)
		}
		cancelBackup()
	}

	logger.Info("bye")
}

func configureLogger(logger *logrus.Logger, cfg config.Config) {
	if strings.EqualFold(cfg.Log.Format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.Warnf("unknown log level %q, using info", cfg.Log.Level)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
}

func buildSessionStore(ctx context.Context, cfg config.Config, logger *logrus.Logger) (session.Store, error) {
	if cfg.Session.RedisAddr == "" {
		logger.Info("using in-memory session store")
		return session.NewMemoryStore(cfg.Session.TTL), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Session.RedisAddr,
		Password: cfg.Session.RedisPassword,
		DB:       cfg.Session.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Session.RedisAddr, err)
	}
	logger.Infof("using redis session store at %s", cfg.Session.RedisAddr)
	return session.NewRedisStore(client, cfg.Session.RedisPrefix, cfg.Session.TTL), nil
}

// buildBackup returns nil when no bucket is configured.
func buildBackup(ctx context.Context, cfg config.Config, logger *logrus.Logger) (*storage.Backup, error) {
	if cfg.Backup.Bucket == "" {
		return nil, nil
	}

	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Backup.Region),
	}
	if cfg.AWS.Profile != "" {
		loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(cfg.AWS.Profile))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Backup.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Backup.Endpoint)
			o.UsePathStyle = true
		}
	})
	logger.Infof("backing up to s3 bucket %s (region %s)", cfg.Backup.Bucket, cfg.Backup.Region)
	return storage.NewBackup(storage.NewS3Service(client), storage.BackupConfig{
		Bucket: cfg.Backup.Bucket,
		Prefix: cfg.Backup.Prefix,
		Keep:   cfg.Backup.Keep,
	}), nil
}

func uploadSnapshot(ctx context.Context, backup *storage.Backup, cfg config.Config, logger *logrus.Logger, db *sql.DB) error {
	dir, err := os.MkdirTemp("", "taaza-khabar-snapshot-")
	if err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	snapshot := filepath.Join(dir, filepath.Base(cfg.Database.Path))
	if err := sqlite.Snapshot(ctx, db, snapshot); err != nil {
		return err
	}

	location, err := backup.Upload(ctx, snapshot, func(done, total int64) {
		logger.Debugf("snapshot upload %d/%d bytes", done, total)
	})
	if location != "" {
		logger.Infof("database snapshot stored at %s", location)
	}
	return err
}
