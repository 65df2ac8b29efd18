package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/quillblog/quill/internal/core/domain/locale"
	"github.com/quillblog/quill/internal/core/domain/post"
	"github.com/quillblog/quill/internal/core/ports"
)

// adminListPosts lists posts of every status, optionally filtered.
func (s *Server) adminListPosts(c echo.Context) error {
	limit, offset := parsePagination(c)
	filter := &ports.PostFilter{Limit: limit, Offset: offset}

	if status := c.QueryParam("status"); status != "" {
		st := post.Status(status)
		if st != post.StatusDraft && st != post.StatusPublished {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown status")
		}
		filter.Status = &st
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

func (s *Server) adminGetPost(c echo.Context) error {
	p, err := s.postSvc.GetPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (s *Server) adminCreatePost(c echo.Context) error {
	var req post.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	p, err := s.postSvc.CreatePost(c.Request().Context(), &req)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusCreated, p)
}

func (s *Server) adminUpdatePost(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req post.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	p, err := s.postSvc.UpdatePost(c.Request().Context(), id, &req)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, p)
}

func (s *Server) adminDeletePost(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := s.postSvc.DeletePost(c.Request().Context(), id); err != nil {
		return serviceError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// adminPublishPost publishes a draft now.
func (s *Server) adminPublishPost(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	p, err := s.postSvc.PublishPost(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, p)
}

// adminGeneratePost runs one generation job and stores the result.
func (s *Server) adminGeneratePost(c echo.Context) error {
	var req ports.GenerateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Prompt == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "prompt is required")
	}

	p, err := s.generationSvc.Generate(c.Request().Context(), &req)
	if err != nil {
		recordGeneration("failure")
		return serviceError(c, err)
	}
	recordGeneration("success")

	return c.JSON(http.StatusCreated, p)
}

type generateBatchRequest struct {
	Items  []ports.GenerateRequest `json:"items"`
	DryRun bool                    `json:"dry_run"`
}

// adminGenerateBatch runs several generation jobs with independent outcomes.
func (s *Server) adminGenerateBatch(c echo.Context) error {
	var req generateBatchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if len(req.Items) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "no items to generate")
	}

	result := s.generationSvc.GenerateBatch(c.Request().Context(), req.Items, ports.BatchOptions{
		DryRun: req.DryRun,
		Delay:  batchCallDelay,
	})

	return c.JSON(http.StatusOK, result)
}

// adminConvertVideo converts one video into a post.
func (s *Server) adminConvertVideo(c echo.Context) error {
	videoID := c.Param("id")
	if videoID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "video id is required")
	}

	p, err := s.generationSvc.ConvertVideo(c.Request().Context(), videoID, nil)
	if err != nil {
		recordGeneration("failure")
		return serviceError(c, err)
	}
	recordGeneration("success")

	return c.JSON(http.StatusCreated, p)
}

// adminReclassifyLanguages re-runs the language detector over every post.
func (s *Server) adminReclassifyLanguages(c echo.Context) error {
	changed, total, err := s.postSvc.ReclassifyLanguages(c.Request().Context())
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]int{"changed": changed, "total": total})
}
