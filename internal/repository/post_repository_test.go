package repository

import (
	"testing"
	"time"

	"user-posts-api/internal/cache"
	"user-posts-api/internal/models"
	"user-posts-api/internal/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPostRepo(t *testing.T) (*PostRepository, *cache.TTLCache[[]models.Post], *gorm.DB) {
	t.Helper()
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	c := cache.NewTTLCache[[]models.Post]()
	return NewPostRepository(db, c), c, db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := models.User{Email: email, PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func TestCacheAsideCoherence(t *testing.T) {
	repo, c, db := newPostRepo(t)
	user := seedUser(t, db, "a@b.com")

	// first read misses and populates the cache with the empty list
	posts, err := repo.ListPosts(user.ID)
	require.NoError(t, err)
	require.Empty(t, posts)
	require.Equal(t, 1, c.Len())

	// a successful create invalidates the user's slot
	created, err := repo.CreatePost(user.ID, "hello")
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Equal(t, 0, c.Len())

	// the next read misses again and observes the committed row
	posts, err = repo.ListPosts(user.ID)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Equal(t, "hello", posts[0].Text)
	require.Equal(t, user.ID, posts[0].UserID)
}

func TestListPosts_NewestFirst(t *testing.T) {
	repo, _, db := newPostRepo(t)
	user := seedUser(t, db, "a@b.com")

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, text := range []string{"oldest", "middle", "newest"} {
		post := models.Post{
			Text:      text,
			UserID:    user.ID,
			CreatedOn: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(&post).Error)
	}

	posts, err := repo.ListPosts(user.ID)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	require.Equal(t, "newest", posts[0].Text)
	require.Equal(t, "middle", posts[1].Text)
	require.Equal(t, "oldest", posts[2].Text)
}

func TestListPosts_HitServesCachedSnapshot(t *testing.T) {
	repo, _, db := newPostRepo(t)
	user := seedUser(t, db, "a@b.com")

	posts, err := repo.ListPosts(user.ID)
	require.NoError(t, err)
	require.Empty(t, posts)

	// a row inserted behind the repository's back does not invalidate;
	// the cached snapshot keeps serving reads until TTL or invalidation
	sneaked := models.Post{Text: "sneaked in", UserID: user.ID}
	require.NoError(t, db.Create(&sneaked).Error)

	posts, err = repo.ListPosts(user.ID)
	require.NoError(t, err)
	require.Empty(t, posts)
}

func TestDeletePost_OwnershipIsolation(t *testing.T) {
	repo, _, db := newPostRepo(t)
	owner := seedUser(t, db, "owner@b.com")
	intruder := seedUser(t, db, "intruder@b.com")

	created, err := repo.CreatePost(owner.ID, "mine")
	require.NoError(t, err)

	// a non-owner cannot delete the post
	deleted, err := repo.DeletePost(intruder.ID, created.ID)
	require.NoError(t, err)
	require.False(t, deleted)

	var count int64
	require.NoError(t, db.Model(&models.Post{}).Where("id = ?", created.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)

	// the owner can
	deleted, err = repo.DeletePost(owner.ID, created.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	require.NoError(t, db.Model(&models.Post{}).Where("id = ?", created.ID).Count(&count).Error)
	require.EqualValues(t, 0, count)
}

func TestDeletePost_InvalidatesOnlyOnDeletedRow(t *testing.T) {
	repo, c, db := newPostRepo(t)
	user := seedUser(t, db, "a@b.com")

	created, err := repo.CreatePost(user.ID, "hello")
	require.NoError(t, err)

	// populate the cache
	_, err = repo.ListPosts(user.ID)
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())

	// not-found delete leaves the cache alone
	deleted, err := repo.DeletePost(user.ID, created.ID+1000)
	require.NoError(t, err)
	require.False(t, deleted)
	require.Equal(t, 1, c.Len())

	// a real delete invalidates
	deleted, err = repo.DeletePost(user.ID, created.ID)
	require.NoError(t, err)
	require.True(t, deleted)
	require.Equal(t, 0, c.Len())

	posts, err := repo.ListPosts(user.ID)
	require.NoError(t, err)
	require.Empty(t, posts)
}
