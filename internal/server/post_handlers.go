package server

import (
	"io"

	"quill/internal/models"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

// postForm is the mutation payload for posts. Multipart requests carry the
// same fields as form values plus an optional "image" file part.
type postForm struct {
	Text  string `json:"text" form:"text"`
	Group string `json:"group" form:"group"`
}

// GetHomeFeed handles GET /api/posts?page=N
func (s *Server) GetHomeFeed(c *fiber.Ctx) error {
	feed, err := s.postService.HomeFeed(c.Context(), parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(feed)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// GetGroupFeed handles GET /api/groups/:slug/posts?page=N
func (s *Server) GetGroupFeed(c *fiber.Ctx) error {
	feed, err := s.postService.GroupFeed(c.Context(), c.Params("slug"), parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(feed)
}

// GetProfileFeed handles GET /api/users/:username/posts?page=N
func (s *Server) GetProfileFeed(c *fiber.Ctx) error {
	feed, err := s.postService.ProfileFeed(c.Context(), c.Params("username"), currentUserID(c), parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(feed)
}

// GetFollowingFeed handles GET /api/feed?page=N
func (s *Server) GetFollowingFeed(c *fiber.Ctx) error {
	feed, err := s.postService.FollowingFeed(c.Context(), currentUserID(c), parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(feed)
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	form, imageName, imageData, err := s.parsePostForm(c)
	if err != nil {
		return nil
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		AuthorID:  currentUserID(c),
		Text:      form.Text,
		GroupSlug: form.Group,
		ImageName: imageName,
		ImageData: imageData,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost handles PUT /api/posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	form, imageName, imageData, err := s.parsePostForm(c)
	if err != nil {
		return nil
	}

	post, err := s.postService.UpdatePost(c.Context(), service.UpdatePostInput{
		ActorID:   currentUserID(c),
		PostID:    id,
		Text:      form.Text,
		GroupSlug: form.Group,
		ImageName: imageName,
		ImageData: imageData,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.Context(), service.DeletePostInput{
		ActorID: currentUserID(c),
		PostID:  id,
	}); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// parsePostForm decodes the post mutation payload from either a JSON body or
// a multipart form with an optional image part. On failure it writes a 400
// response and returns errResponseWritten.
func (s *Server) parsePostForm(c *fiber.Ctx) (*postForm, string, []byte, error) {
	var form postForm
	if err := c.BodyParser(&form); err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
		return nil, "", nil, errResponseWritten
	}

	if !isMultipart(c) {
		return &form, "", nil, nil
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		// No image part; text-only multipart submissions are fine.
		return &form, "", nil, nil
	}

	f, err := fileHeader.Open()
	if err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unreadable image upload"))
		return nil, "", nil, errResponseWritten
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unreadable image upload"))
		return nil, "", nil, errResponseWritten
	}

	return &form, fileHeader.Filename, data, nil
}
