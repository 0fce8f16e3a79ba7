// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"quill/internal/models"

	"gorm.io/gorm"
)

// feedOrder is the global feed ordering: newest first, ID descending as the
// deterministic tie-break for equal timestamps.
const feedOrder = "posts.created_at DESC, posts.id DESC"

// PostRepository defines the interface for post data operations. Every list
// operation returns the requested window plus the total match count so the
// pagination engine can compute page metadata.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	ListAll(ctx context.Context, limit, offset int) ([]*models.Post, int64, error)
	ListByGroup(ctx context.Context, groupID uint, limit, offset int) ([]*models.Post, int64, error)
	ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, int64, error)
	ListFeedFor(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, int64, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx)).
		Preload("Author").
		Preload("Group").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) ListAll(ctx context.Context, limit, offset int) ([]*models.Post, int64, error) {
	return r.list(ctx, limit, offset, nil)
}

func (r *postRepository) ListByGroup(ctx context.Context, groupID uint, limit, offset int) ([]*models.Post, int64, error) {
	return r.list(ctx, limit, offset, func(db *gorm.DB) *gorm.DB {
		return db.Where("posts.group_id = ?", groupID)
	})
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, int64, error) {
	return r.list(ctx, limit, offset, func(db *gorm.DB) *gorm.DB {
		return db.Where("posts.author_id = ?", authorID)
	})
}

// ListFeedFor returns posts authored by users the given user follows. A user
// who follows nobody gets an empty window and a zero total, not an error.
func (r *postRepository) ListFeedFor(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, int64, error) {
	return r.list(ctx, limit, offset, func(db *gorm.DB) *gorm.DB {
		return db.
			Joins("JOIN follows ON follows.followee_id = posts.author_id").
			Where("follows.follower_id = ?", userID)
	})
}

// list runs the shared count-then-window query. filter narrows both queries
// identically so the total always matches the windowed rows.
func (r *postRepository) list(ctx context.Context, limit, offset int, filter func(*gorm.DB) *gorm.DB) ([]*models.Post, int64, error) {
	countQuery := r.db.WithContext(ctx).Model(&models.Post{})
	if filter != nil {
		countQuery = filter(countQuery)
	}
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	if limit == 0 {
		return []*models.Post{}, total, nil
	}

	query := r.applyPostDetails(r.db.WithContext(ctx)).
		Preload("Author").
		Preload("Group")
	if filter != nil {
		query = filter(query)
	}

	var posts []*models.Post
	err := query.
		Order(feedOrder).
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return posts, total, nil
}

// applyPostDetails adds the comment count subquery so listings carry it
// without a second round trip.
func (r *postRepository) applyPostDetails(db *gorm.DB) *gorm.DB {
	return db.Select("posts.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.deleted_at IS NULL) as comments_count")
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

// Delete removes a post together with its comments in one transaction.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
}
