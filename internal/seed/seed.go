package seed

import (
	"fmt"
	"log/slog"
	"math/rand"

	"quill/internal/models"

	"gorm.io/gorm"
)

// Options controls how much data Run generates.
type Options struct {
	NumUsers    int
	NumGroups   int
	NumPosts    int
	ShouldClean bool
}

// DefaultOptions returns a reasonable dataset for local development.
func DefaultOptions() Options {
	return Options{
		NumUsers:  12,
		NumGroups: 4,
		NumPosts:  120,
	}
}

// Run populates the database with users, groups, posts, comments and a
// follow mesh. When opts.ShouldClean is set, existing rows are removed first.
func Run(db *gorm.DB, opts Options) error {
	if opts.ShouldClean {
		if err := clean(db); err != nil {
			return fmt.Errorf("cleaning database: %w", err)
		}
	}

	f := NewFactory(db)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("creating user: %w", err)
		}
		users = append(users, user)
	}

	groups := make([]*models.Group, 0, opts.NumGroups)
	for i := 0; i < opts.NumGroups; i++ {
		group, err := f.CreateGroup()
		if err != nil {
			return fmt.Errorf("creating group: %w", err)
		}
		groups = append(groups, group)
	}

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		author := users[rand.Intn(len(users))]
		var group *models.Group
		// Roughly a third of posts land in a group.
		if len(groups) > 0 && rand.Intn(3) == 0 {
			group = groups[rand.Intn(len(groups))]
		}
		post, err := f.CreatePost(author, group)
		if err != nil {
			return fmt.Errorf("creating post: %w", err)
		}
		posts = append(posts, post)
	}

	for _, post := range posts {
		for i := 0; i < rand.Intn(4); i++ {
			commenter := users[rand.Intn(len(users))]
			if _, err := f.CreateComment(commenter, post); err != nil {
				return fmt.Errorf("creating comment: %w", err)
			}
		}
	}

	for _, follower := range users {
		for i := 0; i < 3; i++ {
			followee := users[rand.Intn(len(users))]
			if err := f.CreateFollow(follower, followee); err != nil {
				return fmt.Errorf("creating follow: %w", err)
			}
		}
	}

	slog.Info("seed complete",
		"users", len(users),
		"groups", len(groups),
		"posts", len(posts),
	)
	return nil
}

func clean(db *gorm.DB) error {
	for _, model := range []any{
		&models.Comment{},
		&models.Follow{},
		&models.Post{},
		&models.Group{},
		&models.User{},
	} {
		if err := db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
