package service

import (
	"context"
	"sync"
	"testing"

	"github.com/BloggingApp/engagement-service/internal/dto"
	"github.com/BloggingApp/engagement-service/internal/model"
	"github.com/BloggingApp/engagement-service/internal/repository/redisrepo"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func createPost(t *testing.T, env *testEnv, author model.UserProfile) *model.Post {
	t.Helper()

	post, err := env.services.Post.Create(context.Background(), author, dto.CreatePostRequest{Text: "hello"})
	require.NoError(t, err)
	return post
}

func TestLikeAndUnlike(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()
	post := createPost(t, env, testProfile("alice"))
	u2, u3 := uuid.New(), uuid.New()

	likes, err := env.services.Engagement.Like(ctx, post.ID, u2)
	require.NoError(t, err)
	assert.Equal(t, []model.Like{{UserID: u2}}, likes)

	likes, err = env.services.Engagement.Like(ctx, post.ID, u3)
	require.NoError(t, err)
	assert.Equal(t, []model.Like{{UserID: u3}, {UserID: u2}}, likes)

	_, err = env.services.Engagement.Like(ctx, post.ID, u2)
	assert.ErrorIs(t, err, model.ErrAlreadyLiked)

	stored, err := env.services.Post.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Likes, 2)

	likes, err = env.services.Engagement.Unlike(ctx, post.ID, u2)
	require.NoError(t, err)
	assert.Equal(t, []model.Like{{UserID: u3}}, likes)

	_, err = env.services.Engagement.Unlike(ctx, post.ID, u2)
	assert.ErrorIs(t, err, model.ErrNotLiked)
}

func TestLikeMissingPost(t *testing.T) {
	env := newTestEnv(t, "")

	_, err := env.services.Engagement.Like(context.Background(), primitive.NewObjectID(), uuid.New())
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestLikeStoreFailureIsNotConfirmed(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()
	post := createPost(t, env, testProfile("alice"))
	env.posts.failWrite = true

	likes, err := env.services.Engagement.Like(ctx, post.ID, uuid.New())
	assert.ErrorIs(t, err, ErrInternal)
	assert.Nil(t, likes)

	env.posts.failWrite = false
	stored, err := env.services.Post.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Likes)
}

func TestConcurrentLikesAreNotLost(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()
	post := createPost(t, env, testProfile("alice"))

	const users = 10
	var wg sync.WaitGroup
	errs := make(chan error, users)

	for i := 0; i < users; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.services.Engagement.Like(ctx, post.ID, uuid.New())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	stored, err := env.services.Post.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Likes, users)
}

func TestEngagementBusyPost(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()
	post := createPost(t, env, testProfile("alice"))

	env.locker.held[redisrepo.PostLockKey(post.ID.Hex())] = "someone-else"

	_, err := env.services.Engagement.Like(ctx, post.ID, uuid.New())
	assert.ErrorIs(t, err, ErrPostBusy)
	assert.Equal(t, 0, env.posts.updates)
}

func TestEngagementLockerFailure(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()
	post := createPost(t, env, testProfile("alice"))
	env.locker.fail = true

	_, err := env.services.Engagement.Like(ctx, post.ID, uuid.New())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestAddAndDeleteComment(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()
	owner := testProfile("alice")
	commenter := testProfile("bob")
	post := createPost(t, env, owner)

	comments, err := env.services.Engagement.AddComment(ctx, post.ID, commenter, dto.CreateCommentRequest{Text: "first"})
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, commenter.ID, comments[0].AuthorID)
	assert.Equal(t, "bob display", comments[0].AuthorDisplayName)

	comments, err = env.services.Engagement.AddComment(ctx, post.ID, owner, dto.CreateCommentRequest{Text: "second"})
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "second", comments[0].Text)
	assert.Equal(t, "first", comments[1].Text)

	bobsComment := comments[1].ID

	_, err = env.services.Engagement.DeleteComment(ctx, post.ID, bobsComment, owner.ID)
	assert.ErrorIs(t, err, model.ErrNotCommentAuthor)

	_, err = env.services.Engagement.DeleteComment(ctx, post.ID, primitive.NewObjectID(), commenter.ID)
	assert.ErrorIs(t, err, model.ErrCommentNotFound)

	comments, err = env.services.Engagement.DeleteComment(ctx, post.ID, bobsComment, commenter.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "second", comments[0].Text)
}

func TestAddCommentEmptyText(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()
	post := createPost(t, env, testProfile("alice"))

	_, err := env.services.Engagement.AddComment(ctx, post.ID, testProfile("bob"), dto.CreateCommentRequest{Text: "  "})
	assert.ErrorIs(t, err, model.ErrEmptyText)
	assert.Equal(t, 0, env.posts.updates)
}

func TestEngagementScenario(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()
	u1 := testProfile("u1")
	u2 := testProfile("u2")

	post := createPost(t, env, u1)

	got, err := env.services.Post.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Text)
	assert.Empty(t, got.Likes)
	assert.Empty(t, got.Comments)

	likes, err := env.services.Engagement.Like(ctx, post.ID, u2.ID)
	require.NoError(t, err)
	assert.Equal(t, []model.Like{{UserID: u2.ID}}, likes)

	_, err = env.services.Engagement.Like(ctx, post.ID, u2.ID)
	assert.ErrorIs(t, err, model.ErrAlreadyLiked)
	got, err = env.services.Post.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Len(t, got.Likes, 1)

	likes, err = env.services.Engagement.Unlike(ctx, post.ID, u2.ID)
	require.NoError(t, err)
	assert.Empty(t, likes)

	assert.ErrorIs(t, env.services.Post.Delete(ctx, post.ID, u2.ID), ErrNotPostAuthor)
	require.NoError(t, env.services.Post.Delete(ctx, post.ID, u1.ID))

	_, err = env.services.Post.FindByID(ctx, post.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)
}
