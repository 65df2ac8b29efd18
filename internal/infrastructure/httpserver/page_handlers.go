package httpserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/quillblog/quill/internal/core/domain/locale"
	"github.com/quillblog/quill/internal/core/domain/post"
	"github.com/quillblog/quill/internal/core/ports"
)

// Page-data handlers back the locale-prefixed site routes. They return the
// same JSON shapes as the public API but scoped to one language, so the
// frontend renders a page from a single request.

// pageLocale rejects any first segment that is not a supported locale. The
// :locale wildcard would otherwise swallow paths like /static/posts.
func pageLocale(c echo.Context) (locale.Locale, error) {
	seg := c.Param("locale")
	if !locale.IsValid(seg) {
		return "", echo.NewHTTPError(http.StatusNotFound, "not found")
	}
	return locale.Locale(seg), nil
}

func (s *Server) postListPage(c echo.Context) error {
	loc, err := pageLocale(c)
	if err != nil {
		return err
	}
	limit, offset := parsePagination(c)
	published := post.StatusPublished

	posts, total, err := s.postSvc.ListPosts(c.Request().Context(), &ports.PostFilter{
		Status:   &published,
		Language: &loc,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"locale": loc,
		"posts":  posts,
		"total":  total,
	})
}

func (s *Server) postPage(c echo.Context) error {
	loc, err := pageLocale(c)
	if err != nil {
		return err
	}

	p, err := s.postSvc.GetPost(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return serviceError(c, err)
	}
	if !p.IsVisible(time.Now()) {
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	}

	related, err := s.postSvc.RelatedPosts(c.Request().Context(), p.ID, 3)
	if err != nil {
		// related is decoration; the page still renders without it
		related = []*post.Post{}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"locale":  loc,
		"post":    p,
		"related": related,
	})
}
