// Package service implements the business rules on top of the repositories.
package service

import (
	"context"
	"strings"

	"quill/internal/cache"
	"quill/internal/models"
	"quill/internal/pagination"
	"quill/internal/repository"
	"quill/internal/storage"
)

const maxPostLen = 50000

// FeedPage is one page of a feed plus its navigation metadata.
type FeedPage struct {
	Posts []*models.Post `json:"posts"`
	pagination.Page
}

// ProfileFeed is a user's feed page together with the profile context the
// caller renders around it.
type ProfileFeed struct {
	User      *models.User `json:"user"`
	Following bool         `json:"following"`
	Followers int64        `json:"followers"`
	FeedPage
}

// GroupFeed is a group's feed page with the group context.
type GroupFeed struct {
	Group *models.Group `json:"group"`
	FeedPage
}

type PostService struct {
	postRepo   repository.PostRepository
	groupRepo  repository.GroupRepository
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
	files      storage.FileStore
	cache      *cache.Cache
}

type CreatePostInput struct {
	AuthorID  uint
	Text      string
	GroupSlug string
	ImageName string
	ImageData []byte
}

type UpdatePostInput struct {
	ActorID   uint
	PostID    uint
	Text      string
	GroupSlug string
	ImageName string
	ImageData []byte
}

type DeletePostInput struct {
	ActorID uint
	PostID  uint
}

func NewPostService(
	postRepo repository.PostRepository,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	files storage.FileStore,
	c *cache.Cache,
) *PostService {
	return &PostService{
		postRepo:   postRepo,
		groupRepo:  groupRepo,
		userRepo:   userRepo,
		followRepo: followRepo,
		files:      files,
		cache:      c,
	}
}

// HomeFeed returns one page of the global feed, newest first. The first page
// is served cache-aside under a fixed key shared by all viewers; the entry is
// never purged on writes and simply expires, so a fresh post may lag behind
// by up to the TTL.
func (s *PostService) HomeFeed(ctx context.Context, pageNum int) (*FeedPage, error) {
	if pageNum <= 1 {
		var fp FeedPage
		err := s.cache.Aside(ctx, cache.HomeFeedKey(), &fp, cache.HomeFeedTTL, func() error {
			got, err := s.fetchPage(ctx, 1, s.postRepo.ListAll)
			if err != nil {
				return err
			}
			fp = *got
			return nil
		})
		if err != nil {
			return nil, err
		}
		return &fp, nil
	}
	return s.fetchPage(ctx, pageNum, s.postRepo.ListAll)
}

// GroupFeed returns one page of the posts in the group identified by slug.
// An unknown slug is NotFound; a known group with no posts is an empty page.
// The slug lookup is cache-aside: group records change only on deletion,
// which invalidates the entry.
func (s *PostService) GroupFeed(ctx context.Context, slug string, pageNum int) (*GroupFeed, error) {
	var group models.Group
	err := s.cache.Aside(ctx, cache.GroupKey(slug), &group, cache.GroupTTL, func() error {
		got, err := s.groupRepo.GetBySlug(ctx, slug)
		if err != nil {
			return err
		}
		group = *got
		return nil
	})
	if err != nil {
		return nil, err
	}

	fp, err := s.fetchPage(ctx, pageNum, func(ctx context.Context, limit, offset int) ([]*models.Post, int64, error) {
		return s.postRepo.ListByGroup(ctx, group.ID, limit, offset)
	})
	if err != nil {
		return nil, err
	}
	return &GroupFeed{Group: &group, FeedPage: *fp}, nil
}

// ProfileFeed returns one page of the named user's posts plus the profile
// context: follower count and whether the viewer follows them. viewerID 0
// means anonymous. The username lookup is cache-aside; profile updates
// invalidate the entry.
func (s *PostService) ProfileFeed(ctx context.Context, username string, viewerID uint, pageNum int) (*ProfileFeed, error) {
	var user models.User
	err := s.cache.Aside(ctx, cache.UserKey(username), &user, cache.UserTTL, func() error {
		got, err := s.userRepo.GetByUsername(ctx, username)
		if err != nil {
			return err
		}
		user = *got
		return nil
	})
	if err != nil {
		return nil, err
	}

	fp, err := s.fetchPage(ctx, pageNum, func(ctx context.Context, limit, offset int) ([]*models.Post, int64, error) {
		return s.postRepo.ListByAuthor(ctx, user.ID, limit, offset)
	})
	if err != nil {
		return nil, err
	}

	followers, err := s.followRepo.CountFollowers(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	following := false
	if viewerID != 0 && viewerID != user.ID {
		following, err = s.followRepo.Exists(ctx, viewerID, user.ID)
		if err != nil {
			return nil, err
		}
	}

	return &ProfileFeed{User: &user, Following: following, Followers: followers, FeedPage: *fp}, nil
}

// FollowingFeed returns one page of posts authored by users the given user
// follows. Following nobody yields an empty page, not an error.
func (s *PostService) FollowingFeed(ctx context.Context, userID uint, pageNum int) (*FeedPage, error) {
	return s.fetchPage(ctx, pageNum, func(ctx context.Context, limit, offset int) ([]*models.Post, int64, error) {
		return s.postRepo.ListFeedFor(ctx, userID, limit, offset)
	})
}

// fetchPage runs the count-and-window query for the requested page. The
// window is fetched optimistically; when the request lands past the end the
// page clamps to the last one and the window is fetched again.
func (s *PostService) fetchPage(
	ctx context.Context,
	pageNum int,
	fetch func(ctx context.Context, limit, offset int) ([]*models.Post, int64, error),
) (*FeedPage, error) {
	if pageNum < 1 {
		pageNum = 1
	}

	offset := (pageNum - 1) * pagination.DefaultPerPage
	posts, total, err := fetch(ctx, pagination.DefaultPerPage, offset)
	if err != nil {
		return nil, err
	}

	page := pagination.New(int(total), pagination.DefaultPerPage).Page(pageNum)
	if page.Offset != offset {
		posts, _, err = fetch(ctx, page.Limit, page.Offset)
		if err != nil {
			return nil, err
		}
	}
	if posts == nil {
		posts = []*models.Post{}
	}

	return &FeedPage{Posts: posts, Page: page}, nil
}

// CreatePost persists a new post for the author. The optional group slug must
// resolve; optional image bytes go to the file store untouched. The home-feed
// cache entry is left to expire on its own.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, models.NewValidationError("Text is required")
	}
	if len(text) > maxPostLen {
		return nil, models.NewValidationError("Text too long (max 50000 characters)")
	}

	groupID, err := s.resolveGroup(ctx, in.GroupSlug)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Text:     text,
		AuthorID: in.AuthorID,
		GroupID:  groupID,
	}

	if len(in.ImageData) > 0 {
		ref, err := s.files.Save(ctx, in.ImageName, in.ImageData)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		post.Image = ref
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID)
}

// UpdatePost edits a post in place. Only the author may edit; the creation
// timestamp never changes. An empty group slug detaches the post from its
// group.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != in.ActorID {
		return nil, models.NewForbiddenError("You can only edit your own posts")
	}

	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, models.NewValidationError("Text is required")
	}
	if len(text) > maxPostLen {
		return nil, models.NewValidationError("Text too long (max 50000 characters)")
	}

	groupID, err := s.resolveGroup(ctx, in.GroupSlug)
	if err != nil {
		return nil, err
	}

	post.Text = text
	post.GroupID = groupID
	post.Group = nil

	if len(in.ImageData) > 0 {
		ref, err := s.files.Save(ctx, in.ImageName, in.ImageData)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		if post.Image != "" {
			_ = s.files.Remove(ctx, post.Image)
		}
		post.Image = ref
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// DeletePost removes a post and its comments. Author-only.
func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return err
	}

	if post.AuthorID != in.ActorID {
		return models.NewForbiddenError("You can only delete your own posts")
	}

	if err := s.postRepo.Delete(ctx, in.PostID); err != nil {
		return err
	}
	if post.Image != "" {
		_ = s.files.Remove(ctx, post.Image)
	}
	return nil
}

// GetPost fetches a single post.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// resolveGroup maps a slug to a group ID. An empty slug means no group; an
// unknown slug is a validation failure since the client submitted a group
// reference that does not resolve.
func (s *PostService) resolveGroup(ctx context.Context, slug string) (*uint, error) {
	if slug == "" {
		return nil, nil
	}
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, models.NewValidationError("Unknown group " + slug)
	}
	return &group.ID, nil
}
