package httpserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/quillblog/quill/internal/core/domain/locale"
	"github.com/quillblog/quill/internal/core/domain/post"
	"github.com/quillblog/quill/internal/core/ports"
)

type postListResponse struct {
	Posts  []*post.Post `json:"posts"`
	Total  int          `json:"total"`
	Limit  int          `json:"limit"`
	Offset int          `json:"offset"`
}

// listPosts serves the public listing: published posts only, optionally
// narrowed to one language.
func (s *Server) listPosts(c echo.Context) error {
	limit, offset := parsePagination(c)
	published := post.StatusPublished
	filter := &ports.PostFilter{
		Status: &published,
		Limit:  limit,
		Offset: offset,
	}
	if lang := c.QueryParam("lang"); lang != "" {
		if !locale.IsValid(lang) {
			return echo.NewHTTPError(http.StatusBadRequest, "unsupported language")
		}
		loc := locale.Locale(lang)
		filter.Language = &loc
	}

	posts, total, err := s.postSvc.ListPosts(c.Request().Context(), filter)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, postListResponse{Posts: posts, Total: total, Limit: limit, Offset: offset})
}

// getPost serves one post by ID or slug. Drafts are invisible here.
func (s *Server) getPost(c echo.Context) error {
	p, err := s.postSvc.GetPost(c.Request().Context(), c.Param("idOrSlug"))
	if err != nil {
		return serviceError(c, err)
	}
	if !p.IsVisible(time.Now()) {
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	}

	return c.JSON(http.StatusOK, p)
}

// incrementViews bumps the view counter and returns the new total.
func (s *Server) incrementViews(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	views, err := s.postSvc.IncrementViews(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]int64{"views": views})
}

// getViews reads the current view counter without bumping it.
func (s *Server) getViews(c echo.Context) error {
	p, err := s.postSvc.GetPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}
	if !p.IsVisible(time.Now()) {
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	}

	return c.JSON(http.StatusOK, map[string]int64{"views": p.Views})
}

// popularPosts serves the most-viewed posts for a period. The service
// degrades to an empty list when the ranking store misbehaves, so this
// endpoint never 500s over a cold cache.
func (s *Server) popularPosts(c echo.Context) error {
	limit, _ := parsePagination(c)
	period := c.QueryParam("period")

	posts, err := s.postSvc.PopularPosts(c.Request().Context(), period, limit)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"posts": posts})
}

// relatedPosts serves posts sharing tags with the given post.
func (s *Server) relatedPosts(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	limit, _ := parsePagination(c)

	posts, err := s.postSvc.RelatedPosts(c.Request().Context(), id, limit)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"posts": posts})
}

// listComments serves the comments on a post, oldest first.
func (s *Server) listComments(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	limit, offset := parsePagination(c)

	comments, err := s.postSvc.ListComments(c.Request().Context(), id, limit, offset)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"comments": comments})
}

// addComment stores a visitor comment. The per-address rate limit runs as
// route middleware before this handler.
func (s *Server) addComment(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req post.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	comment, err := s.postSvc.AddComment(c.Request().Context(), id, &req)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusCreated, comment)
}
