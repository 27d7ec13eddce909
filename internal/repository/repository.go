package repository

import (
	"github.com/BloggingApp/engagement-service/internal/repository/mongorepo"
	"github.com/BloggingApp/engagement-service/internal/repository/postgres"
	"github.com/BloggingApp/engagement-service/internal/repository/redisrepo"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

type Repository struct {
	Mongo    *mongorepo.MongoRepository
	Postgres *postgres.PostgresRepository
	Redis    *redisrepo.RedisRepository
}

func New(mdb *mongo.Database, db *pgxpool.Pool, rdb *redis.Client) *Repository {
	return &Repository{
		Mongo:    mongorepo.New(mdb),
		Postgres: postgres.New(db),
		Redis:    redisrepo.New(rdb),
	}
}
