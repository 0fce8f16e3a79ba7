package service

import (
	"context"
	"errors"
	"testing"

	"quill/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func followTestUserRepo() *userRepoStub {
	users := noopUserRepo()
	users.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
		if username == "alice" {
			return &models.User{ID: 5, Username: "alice"}, nil
		}
		return nil, models.NewNotFoundError("User", username)
	}
	return users
}

func TestFollowUnknownUser(t *testing.T) {
	svc := NewFollowService(noopFollowRepo(), followTestUserRepo())

	err := svc.Follow(context.Background(), 1, "ghost")
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestFollowSelfIsNoOp(t *testing.T) {
	created := false
	follows := noopFollowRepo()
	follows.createFn = func(_ context.Context, _, _ uint) error {
		created = true
		return nil
	}
	svc := NewFollowService(follows, followTestUserRepo())

	// Actor 5 is alice herself; no edge is written and no error surfaces.
	require.NoError(t, svc.Follow(context.Background(), 5, "alice"))
	assert.False(t, created)
}

func TestFollowCreatesEdge(t *testing.T) {
	var gotFollower, gotFollowee uint
	follows := noopFollowRepo()
	follows.createFn = func(_ context.Context, followerID, followeeID uint) error {
		gotFollower, gotFollowee = followerID, followeeID
		return nil
	}
	svc := NewFollowService(follows, followTestUserRepo())

	require.NoError(t, svc.Follow(context.Background(), 2, "alice"))
	assert.Equal(t, uint(2), gotFollower)
	assert.Equal(t, uint(5), gotFollowee)
}

func TestUnfollow(t *testing.T) {
	var gotFollower, gotFollowee uint
	follows := noopFollowRepo()
	follows.deleteFn = func(_ context.Context, followerID, followeeID uint) error {
		gotFollower, gotFollowee = followerID, followeeID
		return nil
	}
	svc := NewFollowService(follows, followTestUserRepo())

	require.NoError(t, svc.Unfollow(context.Background(), 2, "alice"))
	assert.Equal(t, uint(2), gotFollower)
	assert.Equal(t, uint(5), gotFollowee)
}

func TestIsFollowing(t *testing.T) {
	follows := noopFollowRepo()
	follows.existsFn = func(_ context.Context, followerID, followeeID uint) (bool, error) {
		return followerID == 2 && followeeID == 5, nil
	}
	svc := NewFollowService(follows, followTestUserRepo())
	ctx := context.Background()

	following, err := svc.IsFollowing(ctx, 2, "alice")
	require.NoError(t, err)
	assert.True(t, following)

	following, err = svc.IsFollowing(ctx, 3, "alice")
	require.NoError(t, err)
	assert.False(t, following)
}
