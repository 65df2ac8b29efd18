package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/quillblog/quill/internal/application/services"
	"github.com/quillblog/quill/internal/core/ports"
)

// batchCallDelay spaces consecutive provider calls within one cron run.
const batchCallDelay = 2 * time.Second

// cronGenerateDailyPosts picks the day's topics and generates drafts scheduled
// across the day. Publication happens later through the publish-scheduled
// trigger, so a burst of generations never floods the front page at once.
func (s *Server) cronGenerateDailyPosts(c echo.Context) error {
	n := s.cron.PostsPerDay
	if v, err := strconv.Atoi(c.QueryParam("count")); err == nil && v > 0 {
		n = v
	}
	dryRun := s.cron.DryRun || c.QueryParam("dry_run") == "true"

	recentTitles := s.recentPostTitles(c)
	topics := services.PickTopics(n, recentTitles)
	if len(topics) == 0 {
		return c.JSON(http.StatusOK, map[string]interface{}{"message": "no topics available", "requested": n})
	}

	now := time.Now().UTC()
	gap := time.Duration(s.cron.HoursBetweenPosts) * time.Hour
	items := make([]ports.GenerateRequest, 0, len(topics))
	for i, topic := range topics {
		scheduleAt := now.Add(time.Duration(i) * gap)
		items = append(items, ports.GenerateRequest{
			Prompt:     topic.Prompt,
			Keywords:   topic.Keywords,
			ScheduleAt: &scheduleAt,
		})
	}

	result := s.generationSvc.GenerateBatch(c.Request().Context(), items, ports.BatchOptions{
		DryRun: dryRun,
		Delay:  batchCallDelay,
	})

	return c.JSON(http.StatusOK, result)
}

// cronYouTubeSync converts recent channel uploads that have no post yet.
func (s *Server) cronYouTubeSync(c echo.Context) error {
	maxVideos := 5
	if v, err := strconv.Atoi(c.QueryParam("max")); err == nil && v > 0 {
		maxVideos = v
	}
	dryRun := s.cron.DryRun || c.QueryParam("dry_run") == "true"

	result, err := s.generationSvc.SyncChannelVideos(c.Request().Context(), maxVideos, ports.BatchOptions{
		DryRun: dryRun,
		Delay:  batchCallDelay,
	})
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

// cronPublishScheduled publishes every draft whose scheduled time has come.
func (s *Server) cronPublishScheduled(c echo.Context) error {
	published, err := s.postSvc.PublishScheduled(c.Request().Context(), time.Now().UTC())
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]int{"published": published})
}

// recentPostTitles fetches the latest titles for topic dedupe. Best effort;
// an empty list just means no dedupe this run.
func (s *Server) recentPostTitles(c echo.Context) []string {
	posts, _, err := s.postSvc.ListPosts(c.Request().Context(), &ports.PostFilter{Limit: 30})
	if err != nil {
		return nil
	}
	titles := make([]string, 0, len(posts))
	for _, p := range posts {
		titles = append(titles, p.Title)
	}
	return titles
}
