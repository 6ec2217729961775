package handler

import (
	"net/http"
	"strings"

	"blog/internal/delivery/api/response"
	deliverycontext "blog/internal/delivery/context"
	"blog/internal/domain/entity"
	domainerrors "blog/internal/domain/errors"
	"blog/internal/errors"
	"blog/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// listPostsQuery is bound from the /posts/all query string.
type listPostsQuery struct {
	Page   int    `query:"page" validate:"omitempty,gte=1" label:"Page"`
	Limit  int    `query:"limit" validate:"omitempty,gte=1" label:"Limit"`
	Search string `query:"search" validate:"max=100" label:"Search"`
}

// PostResponse wraps a single post.
type PostResponse struct {
	Message string       `json:"message,omitempty"`
	Post    *entity.Post `json:"post"`
}

// PostHandler serves the /posts routes. Every route sits behind the session gate.
type PostHandler struct {
	uc usecase.PostUsecase
}

// NewPostHandler is the constructor for PostHandler, injected by Fx.
func NewPostHandler(uc usecase.PostUsecase) *PostHandler {
	return &PostHandler{uc: uc}
}

// ListPosts returns a page of the caller's posts.
func (h *PostHandler) ListPosts(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var query listPostsQuery
	if err := c.Bind(&query); err != nil {
		return domainerrors.ErrInvalidInput.WithMessage("Invalid query parameters")
	}
	if err := c.Validate(&query); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.ListPosts(c.Request().Context(), &usecase.ListPostsInput{
		UserID: userID,
		Page:   query.Page,
		Limit:  query.Limit,
		Search: strings.TrimSpace(query.Search),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output)
}

// GetPost returns one of the caller's posts.
func (h *PostHandler) GetPost(c echo.Context) error {
	userID, postID, err := currentUserAndPost(c)
	if err != nil {
		return err
	}

	post, err := h.uc.GetPost(c.Request().Context(), userID, postID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, PostResponse{Post: post})
}

// CreatePost creates a post owned by the caller.
func (h *PostHandler) CreatePost(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var input usecase.PostInput
	if err := c.Bind(&input); err != nil {
		return domainerrors.ErrInvalidInput.WithMessage("Invalid post input")
	}

	post, err := h.uc.CreatePost(c.Request().Context(), userID, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, PostResponse{
		Message: "Post created successfully!",
		Post:    post,
	})
}

// UpdatePost replaces the title and content of one of the caller's posts.
func (h *PostHandler) UpdatePost(c echo.Context) error {
	userID, postID, err := currentUserAndPost(c)
	if err != nil {
		return err
	}

	var input usecase.PostInput
	if err := c.Bind(&input); err != nil {
		return domainerrors.ErrInvalidInput.WithMessage("Invalid post input")
	}

	post, err := h.uc.UpdatePost(c.Request().Context(), userID, postID, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, PostResponse{
		Message: "Post has been successfully updated!",
		Post:    post,
	})
}

// DeletePost removes one of the caller's posts.
func (h *PostHandler) DeletePost(c echo.Context) error {
	userID, postID, err := currentUserAndPost(c)
	if err != nil {
		return err
	}

	if err := h.uc.DeletePost(c.Request().Context(), userID, postID); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, http.StatusOK, "Post has been successfully deleted!")
}

func currentUser(c echo.Context) (uuid.UUID, error) {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return uuid.Nil, domainerrors.ErrUnauthenticated
	}

	return userID, nil
}

func currentUserAndPost(c echo.Context) (uuid.UUID, uuid.UUID, error) {
	userID, err := currentUser(c)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, domainerrors.ErrInvalidInput.WithMessage("Invalid post id")
	}

	return userID, postID, nil
}
