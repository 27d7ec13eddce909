package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BloggingApp/engagement-service/internal/config"
	"github.com/BloggingApp/engagement-service/internal/handler"
	"github.com/BloggingApp/engagement-service/internal/rabbitmq"
	"github.com/BloggingApp/engagement-service/internal/repository"
	"github.com/BloggingApp/engagement-service/internal/repository/mongorepo"
	"github.com/BloggingApp/engagement-service/internal/repository/postgres"
	"github.com/BloggingApp/engagement-service/internal/server"
	"github.com/BloggingApp/engagement-service/internal/service"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	if err := loadEnv(); err != nil {
		logger.Sugar().Warnf("failed to load .env file, using process environment: %s", err.Error())
	}

	if err := initConfig(); err != nil {
		logger.Sugar().Panicf("failed to initialize yaml config: %s", err.Error())
	}

	mongoConfig := config.MongoConfig{
		URI:      os.Getenv("MONGO_URI"),
		Database: viper.GetString("mongo.database"),
	}
	mongoClient, err := mongorepo.Connect(ctx, mongoConfig)
	if err != nil {
		logger.Sugar().Panicf("failed to connect to mongodb: %s", err.Error())
	}
	logger.Info("Successfully connected to MongoDB")

	dbConfig := config.DBConfig{
		Username: os.Getenv("POSTGRES_USER"),
		Password: os.Getenv("POSTGRES_PASSWORD"),
		Host:     os.Getenv("POSTGRES_HOST"),
		Port:     os.Getenv("POSTGRES_PORT"),
		DBName:   os.Getenv("POSTGRES_DATABASE"),
		SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
	}
	db, err := postgres.DB(ctx, dbConfig)
	if err != nil {
		logger.Sugar().Panicf("failed to connect to postgres: %s", err.Error())
	}
	if err := db.Ping(ctx); err != nil {
		logger.Sugar().Panicf("failed to ping postgres: %s", err.Error())
	}
	if err := postgres.InitSchema(ctx, db); err != nil {
		logger.Sugar().Panicf("failed to initialize postgres schema: %s", err.Error())
	}
	logger.Info("Successfully connected to PostgreSQL")

	rdb := redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_ADDR"),
	})
	pong, err := rdb.Ping(ctx).Result()
	if err != nil {
		logger.Sugar().Panicf("failed to ping redis: %s", err.Error())
	}
	logger.Sugar().Infof("Successfully connected to Redis: %s", pong)

	mq, err := rabbitmq.New(os.Getenv("RABBITMQ_CONN_STRING"))
	if err != nil {
		logger.Sugar().Panicf("failed to connect to rabbitmq: %s", err.Error())
	}
	logger.Info("Successfully connected to RabbitMQ")

	repos := repository.New(mongoClient.Database(mongoConfig.Database), db, rdb)
	if err := repos.Mongo.Post.EnsureIndexes(ctx); err != nil {
		logger.Sugar().Panicf("failed to create mongodb indexes: %s", err.Error())
	}

	services := service.New(logger, repos, mq, config.ServiceConfig{
		Locks: config.LockConfig{
			TTL:  viper.GetDuration("locks.ttl"),
			Wait: viper.GetDuration("locks.wait"),
		},
		UserServiceAPI: viper.GetString("user-service.api"),
	})
	handlers := handler.New(services, logger, handler.Config{
		AccessSecret: []byte(os.Getenv("ACCESS_SECRET")),
		ClientOrigin: viper.GetString("client.origin"),
	})

	srv := server.New(config.ServerConfig{
		Port:           viper.GetString("app.port"),
		Handler:        handlers.InitRoutes(),
		MaxHeaderBytes: 1 << 20,
		ReadTimeout:    time.Second * 10,
		WriteTimeout:   time.Second * 10,
	})
	go func() {
		if err := srv.Run(); err != nil {
			logger.Sugar().Panicf("failed to run http server: %s", err.Error())
		}
	}()

	services.StartConsumeAll(ctx)

	logger.Info("Server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logger.Info("Server shutting down")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Second*10)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("failed to shutdown http server: %s", err.Error())
	}
	if err := mq.Close(); err != nil {
		logger.Sugar().Errorf("failed to close rabbitmq connection: %s", err.Error())
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		logger.Sugar().Errorf("failed to disconnect from mongodb: %s", err.Error())
	}
	if err := rdb.Close(); err != nil {
		logger.Sugar().Errorf("failed to close redis client: %s", err.Error())
	}
	db.Close()
}

func loadEnv() error {
	return godotenv.Load()
}

func initConfig() error {
	viper.AddConfigPath(".")
	viper.SetConfigType("yaml")
	viper.SetConfigName("app")
	return viper.ReadInConfig()
}
