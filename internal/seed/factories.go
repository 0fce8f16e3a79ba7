// Package seed provides helpers to create development and test data.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"quill/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db  *gorm.DB
	rnd *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:  db,
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser persists a user with a usable password ("password123").
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: fmt.Sprintf("%s%d", strings.ToLower(gofakeit.Username()), f.rnd.Intn(10000)),
		Email:    gofakeit.Email(),
		Password: string(hashed),
		Bio:      gofakeit.Sentence(8),
	}
	for _, override := range overrides {
		override(user)
	}
	return user, f.db.Create(user).Error
}

// CreateGroup persists a group with a slug derived from its title.
func (f *Factory) CreateGroup(overrides ...func(*models.Group)) (*models.Group, error) {
	word := strings.ToLower(gofakeit.HipsterWord())
	group := &models.Group{
		Title:       strings.ToUpper(word[:1]) + word[1:],
		Slug:        fmt.Sprintf("%s-%d", word, f.rnd.Intn(10000)),
		Description: gofakeit.Sentence(12),
	}
	for _, override := range overrides {
		override(group)
	}
	return group, f.db.Create(group).Error
}

// CreatePost persists a post for the author, optionally in a group, with a
// realistic created_at spread over the last 90 days.
func (f *Factory) CreatePost(author *models.User, group *models.Group, overrides ...func(*models.Post)) (*models.Post, error) {
	post := &models.Post{
		Text:     gofakeit.Paragraph(1, 3, 8, "\n"),
		AuthorID: author.ID,
	}
	if group != nil {
		post.GroupID = &group.ID
	}

	daysBack := f.rnd.Intn(90)
	minsBack := f.rnd.Intn(24 * 60)
	post.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(minsBack)*time.Minute)

	for _, override := range overrides {
		override(post)
	}
	return post, f.db.Create(post).Error
}

// CreateComment persists a comment on the post.
func (f *Factory) CreateComment(author *models.User, post *models.Post) (*models.Comment, error) {
	comment := &models.Comment{
		Text:     gofakeit.Sentence(10),
		AuthorID: author.ID,
		PostID:   post.ID,
	}
	return comment, f.db.Create(comment).Error
}

// CreateFollow persists a follow edge; duplicates are silently skipped.
func (f *Factory) CreateFollow(follower, followee *models.User) error {
	if follower.ID == followee.ID {
		return nil
	}
	follow := &models.Follow{FollowerID: follower.ID, FolloweeID: followee.ID}
	err := f.db.Create(follow).Error
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "unique") {
		return nil
	}
	return err
}
