package main

import (
	"encoding/xml"
	"errors"
	"net/http"
	"time"

	"jamlytics-backend/lib/scrapers/itchio"
	"jamlytics-backend/services/analyzer"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
)

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}

func rateLimitErrorHandler(c *gin.Context, info ratelimit.Info) {
	c.String(http.StatusTooManyRequests, "Too many requests. Try again later.")
}

func newRouter(service analyzer.Service, config Config) *gin.Engine {
	if !config.Verbose {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	if config.RateLimit.PerMinute > 0 {
		store := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
			Rate:  time.Minute,
			Limit: uint(config.RateLimit.PerMinute),
		})
		router.Use(ratelimit.RateLimiter(store, &ratelimit.Options{
			ErrorHandler: rateLimitErrorHandler,
			KeyFunc:      keyFunc,
		}))
	}

	router.GET("/api/jam", handleAnalyze(service))
	router.GET("/sitemap.xml", handleSitemap(service, config.PublicUrl))

	return router
}

func handleAnalyze(service analyzer.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		rateLink := c.Query("ratelink")
		entriesLink := c.Query("entrieslink")
		if rateLink == "" || entriesLink == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid link"})
			return
		}

		result, err := service.Analyze(c.Request.Context(), analyzer.Request{
			RateLink:    rateLink,
			EntriesLink: entriesLink,
			JamName:     c.Query("jamname"),
		})
		if err != nil {
			status, message := statusForError(err)
			c.JSON(status, gin.H{"error": message})
			return
		}

		// the service manages its own cache, intermediaries must not
		c.Header("Cache-Control", "no-cache")
		c.JSON(http.StatusOK, result)
	}
}

func statusForError(err error) (int, string) {
	var upstream *itchio.UpstreamError
	switch {
	case errors.Is(err, analyzer.ErrGameNotFound):
		return http.StatusNotFound, "This game could not be found in the jam's entry list. Double check the rate link."
	case errors.Is(err, itchio.ErrNoEntriesScript),
		errors.Is(err, itchio.ErrEntriesURLNotFound):
		return http.StatusBadGateway, "The jam page layout has changed and could not be scraped."
	case errors.As(err, &upstream):
		return http.StatusBadGateway, "itch.io could not be reached. Try again later."
	default:
		return http.StatusInternalServerError, "Something went wrong."
	}
}

type sitemapURL struct {
	Loc string `xml:"loc"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

func handleSitemap(service analyzer.Service, publicURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		paths, err := service.Sitemap(c.Request.Context())
		if err != nil {
			c.String(http.StatusInternalServerError, "failed to generate sitemap")
			return
		}

		set := sitemapURLSet{
			Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
			URLs:  make([]sitemapURL, len(paths)),
		}
		for i, p := range paths {
			set.URLs[i] = sitemapURL{Loc: publicURL + p}
		}
		c.XML(http.StatusOK, set)
	}
}
