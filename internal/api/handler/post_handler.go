package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trailmate/trailmate-api/internal/core/domain"
	"github.com/trailmate/trailmate-api/internal/core/ports"
)

// SchemaValidator checks the kind-specific fields of a post body.
type SchemaValidator interface {
	Fields(schema domain.PostSchema, raw map[string]any) (domain.Fields, error)
}

// PostHandler serves one post kind. The same handler type is mounted once
// per entry in domain.PostSchemas.
type PostHandler struct {
	posts     ports.PostService
	validator SchemaValidator
}

func NewPostHandler(posts ports.PostService, validator SchemaValidator) *PostHandler {
	return &PostHandler{posts: posts, validator: validator}
}

// Register mounts the post routes on g, which must already carry the Auth
// middleware.
func (h *PostHandler) Register(g *echo.Group) {
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.DELETE("/:id", h.Delete)
	g.PUT("/like/:id", h.Like)
	g.PUT("/unlike/:id", h.Unlike)
	g.POST("/comment/:id", h.AddComment)
	g.DELETE("/comment/:id/:comment_id", h.DeleteComment)
}

type commentRequest struct {
	Text string `json:"text" validate:"required"`
}

func (commentRequest) messages() map[string]string {
	return map[string]string{"text": "Text is required"}
}

// Create stores a post authored by the caller.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        kind  path      string          true  "equipmentPosts or trailPosts"
// @Param        body  body      map[string]any  true  "Kind-specific fields"
// @Success      200   {object}  domain.Post
// @Failure      400   {object}  ValidationError
// @Failure      401   {object}  messageResponse
// @Router       /api/{kind} [post]
func (h *PostHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var raw map[string]any
	if err := (&echo.DefaultBinder{}).BindBody(c, &raw); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	fields, err := h.validator.Fields(h.posts.Schema(), raw)
	if err != nil {
		return err
	}

	post, err := h.posts.Create(c.Request().Context(), userID, fields)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// List returns every post of the kind, newest first.
//
// @Summary      List posts
// @Tags         posts
// @Produce      json
// @Security     ApiKeyAuth
// @Param        kind  path      string  true  "equipmentPosts or trailPosts"
// @Success      200   {array}   domain.Post
// @Router       /api/{kind} [get]
func (h *PostHandler) List(c echo.Context) error {
	posts, err := h.posts.List(c.Request().Context())
	if err != nil {
		return err
	}
	if posts == nil {
		posts = []*domain.Post{}
	}
	return c.JSON(http.StatusOK, posts)
}

// Get returns one post.
//
// @Summary      Get post by id
// @Tags         posts
// @Produce      json
// @Security     ApiKeyAuth
// @Param        kind  path      string  true  "equipmentPosts or trailPosts"
// @Param        id    path      string  true  "Post id"
// @Success      200   {object}  domain.Post
// @Failure      404   {object}  messageResponse
// @Router       /api/{kind}/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	post, err := h.posts.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// Delete removes a post owned by the caller.
//
// @Summary      Delete post
// @Tags         posts
// @Produce      json
// @Security     ApiKeyAuth
// @Param        kind  path      string  true  "equipmentPosts or trailPosts"
// @Param        id    path      string  true  "Post id"
// @Success      200   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /api/{kind}/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.posts.Delete(c.Request().Context(), c.Param("id"), userID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Msg: "Post removed"})
}

// Like adds the caller to the post's likes.
//
// @Summary      Like post
// @Tags         posts
// @Produce      json
// @Security     ApiKeyAuth
// @Param        kind  path      string  true  "equipmentPosts or trailPosts"
// @Param        id    path      string  true  "Post id"
// @Success      200   {array}   domain.Like
// @Failure      400   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /api/{kind}/like/{id} [put]
func (h *PostHandler) Like(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	likes, err := h.posts.Like(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, likes)
}

// Unlike removes the caller from the post's likes.
//
// @Summary      Unlike post
// @Tags         posts
// @Produce      json
// @Security     ApiKeyAuth
// @Param        kind  path      string  true  "equipmentPosts or trailPosts"
// @Param        id    path      string  true  "Post id"
// @Success      200   {array}   domain.Like
// @Failure      400   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /api/{kind}/unlike/{id} [put]
func (h *PostHandler) Unlike(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	likes, err := h.posts.Unlike(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, likes)
}

// AddComment comments on a post.
//
// @Summary      Comment on post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        kind  path      string          true  "equipmentPosts or trailPosts"
// @Param        id    path      string          true  "Post id"
// @Param        body  body      commentRequest  true  "Comment"
// @Success      200   {array}   domain.Comment
// @Failure      400   {object}  ValidationError
// @Failure      404   {object}  messageResponse
// @Router       /api/{kind}/comment/{id} [post]
func (h *PostHandler) AddComment(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req commentRequest
	if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comments, err := h.posts.AddComment(c.Request().Context(), c.Param("id"), userID, req.Text)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comments)
}

// DeleteComment removes one of the caller's comments.
//
// @Summary      Delete comment
// @Tags         posts
// @Produce      json
// @Security     ApiKeyAuth
// @Param        kind        path      string  true  "equipmentPosts or trailPosts"
// @Param        id          path      string  true  "Post id"
// @Param        comment_id  path      string  true  "Comment id"
// @Success      200         {array}   domain.Comment
// @Failure      401         {object}  messageResponse
// @Failure      404         {object}  messageResponse
// @Router       /api/{kind}/comment/{id}/{comment_id} [delete]
func (h *PostHandler) DeleteComment(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	comments, err := h.posts.DeleteComment(c.Request().Context(), c.Param("id"), c.Param("comment_id"), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comments)
}
