package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/BloggingApp/engagement-service/internal/config"
	"github.com/BloggingApp/engagement-service/internal/model"
	"github.com/BloggingApp/engagement-service/internal/repository"
	"github.com/BloggingApp/engagement-service/internal/repository/mongorepo"
	"github.com/BloggingApp/engagement-service/internal/repository/postgres"
	"github.com/BloggingApp/engagement-service/internal/repository/redisrepo"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var errStoreDown = errors.New("store down")

type fakePostRepo struct {
	mu        sync.Mutex
	posts     map[primitive.ObjectID]model.Post
	updates   int
	failWrite bool
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: map[primitive.ObjectID]model.Post{}}
}

func clonePost(p model.Post) model.Post {
	p.Likes = append([]model.Like{}, p.Likes...)
	p.Comments = append([]model.Comment{}, p.Comments...)
	return p
}

func (r *fakePostRepo) Create(ctx context.Context, post model.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrite {
		return errStoreDown
	}
	r.posts[post.ID] = clonePost(post)
	return nil
}

func (r *fakePostRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	post = clonePost(post)
	return &post, nil
}

func (r *fakePostRepo) FindAll(ctx context.Context) ([]*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	posts := []*model.Post{}
	for _, p := range r.posts {
		p = clonePost(p)
		posts = append(posts, &p)
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

func (r *fakePostRepo) UpdateEngagement(ctx context.Context, post model.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrite {
		return errStoreDown
	}
	stored, ok := r.posts[post.ID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	stored.Likes = append([]model.Like{}, post.Likes...)
	stored.Comments = append([]model.Comment{}, post.Comments...)
	r.posts[post.ID] = stored
	r.updates++
	return nil
}

func (r *fakePostRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrite {
		return errStoreDown
	}
	if _, ok := r.posts[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(r.posts, id)
	return nil
}

func (r *fakePostRepo) EnsureIndexes(ctx context.Context) error {
	return nil
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]model.UserProfile
	updates  map[uuid.UUID]map[string]interface{}
	failRead bool
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{
		profiles: map[uuid.UUID]model.UserProfile{},
		updates:  map[uuid.UUID]map[string]interface{}{},
	}
}

func (r *fakeProfileRepo) Create(ctx context.Context, profile model.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[profile.ID] = profile
	return nil
}

func (r *fakeProfileRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	normalized, err := postgres.NormalizeProfileUpdates(updates)
	if err != nil {
		return err
	}
	r.updates[id] = normalized
	return nil
}

func (r *fakeProfileRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failRead {
		return nil, errStoreDown
	}
	profile, ok := r.profiles[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &profile, nil
}

type fakeLocker struct {
	mu   sync.Mutex
	held map[string]string
	fail bool
}

func newFakeLocker() *fakeLocker {
	return &fakeLocker{held: map[string]string{}}
}

func (l *fakeLocker) Acquire(ctx context.Context, key string, token string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fail {
		return false, errStoreDown
	}
	if _, ok := l.held[key]; ok {
		return false, nil
	}
	l.held[key] = token
	return true, nil
}

func (l *fakeLocker) Release(ctx context.Context, key string, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[key] == token {
		delete(l.held, key)
	}
	return nil
}

type published struct {
	queue string
	body  []byte
}

type fakeBroker struct {
	mu          sync.Mutex
	published   []published
	failPublish bool
	deliveries  chan amqp.Delivery
}

func (b *fakeBroker) Publish(ctx context.Context, queue string, body []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failPublish {
		return errStoreDown
	}
	b.published = append(b.published, published{queue: queue, body: body})
	return nil
}

func (b *fakeBroker) Consume(queue string) (<-chan amqp.Delivery, error) {
	return b.deliveries, nil
}

type ackResult struct {
	acked   bool
	nacked  bool
	requeue bool
}

type fakeAcknowledger struct {
	mu     sync.Mutex
	result ackResult
	done   chan struct{}
}

func newFakeAcknowledger() *fakeAcknowledger {
	return &fakeAcknowledger{done: make(chan struct{}, 1)}
}

func (a *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	a.mu.Lock()
	a.result.acked = true
	a.mu.Unlock()
	a.done <- struct{}{}
	return nil
}

func (a *fakeAcknowledger) Nack(tag uint64, multiple bool, requeue bool) error {
	a.mu.Lock()
	a.result.nacked = true
	a.result.requeue = requeue
	a.mu.Unlock()
	a.done <- struct{}{}
	return nil
}

func (a *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	return a.Nack(tag, false, requeue)
}

func (a *fakeAcknowledger) get() ackResult {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.result
}

type testEnv struct {
	posts    *fakePostRepo
	profiles *fakeProfileRepo
	locker   *fakeLocker
	broker   *fakeBroker
	services *Service
}

func newTestEnv(t *testing.T, userServiceAPI string) *testEnv {
	t.Helper()

	env := &testEnv{
		posts:    newFakePostRepo(),
		profiles: newFakeProfileRepo(),
		locker:   newFakeLocker(),
		broker:   &fakeBroker{deliveries: make(chan amqp.Delivery)},
	}

	repo := &repository.Repository{
		Mongo:    &mongorepo.MongoRepository{Post: env.posts},
		Postgres: &postgres.PostgresRepository{UserProfile: env.profiles},
		Redis:    &redisrepo.RedisRepository{Locker: env.locker},
	}

	env.services = New(zap.NewNop(), repo, env.broker, config.ServiceConfig{
		Locks: config.LockConfig{
			TTL:  time.Second,
			Wait: 200 * time.Millisecond,
		},
		UserServiceAPI: userServiceAPI,
	})

	return env
}

func testProfile(name string) model.UserProfile {
	return model.UserProfile{
		ID:          uuid.New(),
		Username:    name,
		DisplayName: name + " display",
		AvatarURL:   "https://cdn.example.com/" + name + ".png",
	}
}
