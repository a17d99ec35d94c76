package repository

import (
	"fmt"
	"time"

	"user-posts-api/internal/cache"
	"user-posts-api/internal/models"

	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// postListTTL bounds how long a cached post list may serve reads before the
// next miss refetches it from the database.
const postListTTL = 5 * time.Minute

// PostRepository serves post reads through a cache-aside TTL cache and keeps
// that cache coherent with the database on writes by invalidating the owning
// user's entry after each successful commit.
//
// The consistency contract is eventual within the TTL, not read-your-writes:
// invalidation and a concurrent reader's populate are not ordered against
// each other, so a read that queried before a write committed can repopulate
// the cache with pre-write rows just after the write invalidated it. Such a
// stale entry lasts until its own TTL or the next invalidation.
type PostRepository struct {
	db    *gorm.DB
	cache cache.Cache[[]models.Post]
	group singleflight.Group
}

// NewPostRepository constructs a PostRepository. The cache is owned by the
// caller (the composition root) so tests can use a fresh one per case.
func NewPostRepository(db *gorm.DB, c cache.Cache[[]models.Post]) *PostRepository {
	return &PostRepository{db: db, cache: c}
}

// cacheKey derives the single cache slot holding a user's full post list.
func cacheKey(userID uint) string {
	return fmt.Sprintf("user_posts_%d", userID)
}

// CreatePost inserts a post for the user and invalidates the user's cached
// list. Invalidation happens only after the insert succeeded; a failed write
// leaves the cache untouched.
func (r *PostRepository) CreatePost(userID uint, text string) (*models.Post, error) {
	post := models.Post{
		Text:   text,
		UserID: userID,
	}
	if err := r.db.Create(&post).Error; err != nil {
		return nil, &PersistenceError{Op: "create post", Err: err}
	}

	r.cache.Delete(cacheKey(userID))

	return &post, nil
}

// ListPosts returns the user's posts newest first. A cache hit is returned
// verbatim, staleness window included; a miss queries the database, caches
// the result for postListTTL and returns it. Concurrent misses for the same
// user collapse into one query via singleflight, which does not change the
// consistency contract documented on PostRepository.
func (r *PostRepository) ListPosts(userID uint) ([]models.Post, error) {
	key := cacheKey(userID)
	if posts, ok := r.cache.Get(key); ok {
		return posts, nil
	}

	v, err, _ := r.group.Do(key, func() (interface{}, error) {
		// a flight that just finished may have populated the slot
		if posts, ok := r.cache.Get(key); ok {
			return posts, nil
		}

		var posts []models.Post
		err := r.db.
			Where("user_id = ?", userID).
			Order("created_on DESC, id DESC").
			Find(&posts).Error
		if err != nil {
			return nil, &PersistenceError{Op: "list posts", Err: err}
		}

		r.cache.Set(key, posts, postListTTL)
		return posts, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Post), nil
}

// DeletePost deletes the post only when it exists and belongs to the user,
// using a single filtered delete so ownership is enforced in the same
// statement. Returns whether a row was deleted; the user's cache entry is
// invalidated only in that case.
func (r *PostRepository) DeletePost(userID, postID uint) (bool, error) {
	result := r.db.Where("id = ? AND user_id = ?", postID, userID).Delete(&models.Post{})
	if result.Error != nil {
		return false, &PersistenceError{Op: "delete post", Err: result.Error}
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	r.cache.Delete(cacheKey(userID))

	return true, nil
}
