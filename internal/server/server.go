package server

import (
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"supplierboard/internal"
	"supplierboard/internal/config"
	"supplierboard/internal/pipeline"
	"supplierboard/internal/storage"
)

// New builds the HTTP API. Every request decodes, normalizes and scores
// its own dataset; the only shared state is the sqlite-backed ingest
// cache, which is safe across concurrent requests.
func New(db *storage.DB, cfg config.Config) *gin.Engine {
	h := &handlers{svc: pipeline.NewRankingService(db, cfg), cfg: cfg}

	r := gin.Default()
	r.Use(cors.New(corsConfig(cfg)))
	r.MaxMultipartMemory = cfg.MaxUploadBytes

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.POST("/normalize", h.normalize)
	api.POST("/rank", h.rank)
	api.POST("/wins", h.wins)

	return r
}

func corsConfig(cfg config.Config) cors.Config {
	corsConfig := cors.DefaultConfig()
	if len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORSOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	return corsConfig
}

type handlers struct {
	svc *pipeline.RankingService
	cfg config.Config
}

func (h *handlers) normalize(c *gin.Context) {
	result, ok := h.loadUpload(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"hash":    result.Hash,
		"cached":  result.Cached,
		"dataset": result.Dataset,
		"vendors": pipeline.Vendors(result.Dataset.Records),
	})
}

func (h *handlers) rank(c *gin.Context) {
	result, ok := h.loadUpload(c)
	if !ok {
		return
	}

	filter, err := parseFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sortBy := c.DefaultPostForm("sort", internal.SumComposite)
	ascending := c.PostForm("order") == "asc"
	summaries, err := h.svc.Rank(result.Dataset, filter, sortBy, ascending)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"hash":      result.Hash,
		"cached":    result.Cached,
		"headerRow": result.Dataset.HeaderRow,
		"records":   len(result.Dataset.Records),
		"empty":     len(summaries) == 0,
		"summaries": summaries,
	})
}

func (h *handlers) wins(c *gin.Context) {
	result, ok := h.loadUpload(c)
	if !ok {
		return
	}

	filter, err := parseFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	wins := h.svc.Wins(result.Dataset, filter)
	c.JSON(http.StatusOK, gin.H{
		"hash":   result.Hash,
		"cached": result.Cached,
		"empty":  len(wins) == 0,
		"wins":   wins,
	})
}

func (h *handlers) loadUpload(c *gin.Context) (pipeline.LoadResult, bool) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file form field is required"})
		return pipeline.LoadResult{}, false
	}
	if file.Size > h.cfg.MaxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("file exceeds %d bytes", h.cfg.MaxUploadBytes)})
		return pipeline.LoadResult{}, false
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to open upload"})
		return pipeline.LoadResult{}, false
	}
	defer src.Close()

	blob, err := io.ReadAll(src)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to read upload"})
		return pipeline.LoadResult{}, false
	}

	result, err := h.svc.LoadDataset(file.Filename, blob)
	if errors.Is(err, pipeline.ErrHeaderNotFound) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return pipeline.LoadResult{}, false
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return pipeline.LoadResult{}, false
	}
	return result, true
}

func parseFilter(c *gin.Context) (pipeline.Filter, error) {
	filter := pipeline.Filter{Product: strings.TrimSpace(c.PostForm("product"))}

	if vendors := strings.TrimSpace(c.PostForm("vendors")); vendors != "" {
		for _, v := range strings.Split(vendors, ",") {
			if v = strings.TrimSpace(v); v != "" {
				filter.Vendors = append(filter.Vendors, v)
			}
		}
	}

	var err error
	if filter.LeadTime, err = parseRange(c, "lead_min", "lead_max"); err != nil {
		return pipeline.Filter{}, err
	}
	if filter.APTerms, err = parseRange(c, "ap_min", "ap_max"); err != nil {
		return pipeline.Filter{}, err
	}
	if filter.ItemCost, err = parseRange(c, "cost_min", "cost_max"); err != nil {
		return pipeline.Filter{}, err
	}
	return filter, nil
}

// parseRange builds an inclusive range from the min/max form fields.
// Either bound may be omitted; a lone bound leaves the other side open.
func parseRange(c *gin.Context, minKey, maxKey string) (*pipeline.Range, error) {
	minRaw := strings.TrimSpace(c.PostForm(minKey))
	maxRaw := strings.TrimSpace(c.PostForm(maxKey))
	if minRaw == "" && maxRaw == "" {
		return nil, nil
	}

	r := pipeline.Range{Min: math.Inf(-1), Max: math.Inf(1)}
	if minRaw != "" {
		v, err := strconv.ParseFloat(minRaw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %q", minKey, minRaw)
		}
		r.Min = v
	}
	if maxRaw != "" {
		v, err := strconv.ParseFloat(maxRaw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %q", maxKey, maxRaw)
		}
		r.Max = v
	}
	return &r, nil
}
