package bootstrap

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"microblog/internal/config"
	"microblog/internal/event"
	"microblog/internal/model"
	mysqlClient "microblog/internal/platform/mysql"
	rabbitmqClient "microblog/internal/platform/rabbitmq"
	redisClient "microblog/internal/platform/redis"
	"microblog/internal/repository"
	"microblog/internal/session"
	"microblog/internal/worker"
)

type App struct {
	Config *config.Config
	MySQL  *gorm.DB
	Redis  *redis.Client
	MQConn *amqp.Connection

	Users  repository.UserRepository
	Tweets repository.TweetRepository
	Audits repository.AuditRepository

	Sessions    *session.RedisStore
	TweetEvents *event.TweetEventPublisher
	AuditWorker *worker.AuditWorker

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	app := &App{
		Config:    cfg,
		StartedAt: time.Now(),
	}

	switch cfg.Storage.Driver {
	case config.StorageDriverMySQL:
		mysqlDB, err := mysqlClient.New(ctx, cfg.MySQLDSN())
		if err != nil {
			return nil, err
		}
		if err := mysqlDB.AutoMigrate(&model.User{}, &model.Tweet{}, &model.AuditEntry{}); err != nil {
			return nil, fmt.Errorf("auto migrate tables failed: %w", err)
		}
		app.MySQL = mysqlDB
		app.Users = repository.NewGormUserRepository(mysqlDB)
		app.Tweets = repository.NewGormTweetRepository(mysqlDB)
		app.Audits = repository.NewGormAuditRepository(mysqlDB)
	default:
		app.Users = repository.NewMemoryUserRepository()
		app.Tweets = repository.NewMemoryTweetRepository()
		app.Audits = repository.NewMemoryAuditRepository()
	}

	redisCli, err := redisClient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, err
	}
	app.Redis = redisCli
	app.Sessions = session.NewRedisStore(redisCli, time.Duration(cfg.Auth.JWTExpireMinute)*time.Minute)

	mqConn, err := rabbitmqClient.New(ctx, cfg.RabbitMQ.URL)
	if err != nil {
		return nil, err
	}
	app.MQConn = mqConn
	app.TweetEvents = event.NewTweetEventPublisher(mqConn, cfg.RabbitMQ.TweetEventQueue)

	app.AuditWorker = worker.NewAuditWorker(mqConn, app.Audits, cfg.RabbitMQ.TweetEventQueue)
	if err := app.AuditWorker.Start(ctx); err != nil {
		return nil, fmt.Errorf("start audit worker failed: %w", err)
	}

	return app, nil
}

func (a *App) Close() error {
	var closeErr error
	if a.AuditWorker != nil {
		a.AuditWorker.Close()
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MySQL != nil {
		sqlDB, err := a.MySQL.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	return closeErr
}
