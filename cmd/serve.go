/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ademuri/spotify-chart-tools/internal/analysis"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the dataset queries as a JSON API",
	Long: `Loads the dataset once and answers country, artist, ranking, list,
comparison, popularity and recommendation queries over HTTP under /api/v1.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		err := withEngine(cmd.Context(), func(engine *analysis.Engine) error {
			if logrus.GetLevel() < logrus.DebugLevel {
				gin.SetMode(gin.ReleaseMode)
			}
			logrus.WithField("addr", serveAddr).Info("Serving")
			return newRouter(engine).Run(serveAddr)
		})
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Address to listen on")
}

// chartHandler answers dataset queries from one engine.
type chartHandler struct {
	engine *analysis.Engine
}

func newRouter(engine *analysis.Engine) *gin.Engine {
	h := &chartHandler{engine: engine}
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		v1.GET("/countries", h.listHandler(engine.ListCountries))
		v1.GET("/countries/:country", h.CountryStats)
		v1.GET("/countries/:country/compare", h.Compare)
		v1.GET("/artists", h.listHandler(engine.ListArtists))
		v1.GET("/artists/:artist", h.ArtistStats)
		v1.GET("/genres", h.listHandler(engine.ListGenres))
		v1.GET("/genres_simplified", h.listHandler(engine.ListGenresSimplified))
		v1.GET("/songs", h.listHandler(engine.ListSongs))
		v1.GET("/top/:field", h.Top)
		v1.GET("/overview", h.Overview)
		v1.GET("/thresholds", h.Thresholds)
		v1.GET("/popularity", h.CountryPopularity)
		v1.GET("/recommend", h.Recommend)
	}
	return router
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logrus.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start),
		}).Debug("Handled request")
	}
}

func (h *chartHandler) listHandler(list func() []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"values": list()})
	}
}

// CountryStats returns the cached stats of a country
func (h *chartHandler) CountryStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.engine.CountryStats(c.Param("country")))
}

func (h *chartHandler) Compare(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"comparisons": h.engine.CompareCountry(c.Param("country"))})
}

// ArtistStats returns 404 for unknown artists
func (h *chartHandler) ArtistStats(c *gin.Context) {
	stats, err := h.engine.ArtistStats(c.Param("artist"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if stats == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Artist not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats, "ranks": stats.RankSummary()})
}

func (h *chartHandler) Top(c *gin.Context) {
	field, err := analysis.ParseField(c.Param("field"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	n, err := strconv.Atoi(c.DefaultQuery("n", "10"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid n"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"field": field, "entries": h.engine.Top(field, n)})
}

func (h *chartHandler) Overview(c *gin.Context) {
	n, err := strconv.Atoi(c.DefaultQuery("n", "5"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid n"})
		return
	}
	c.JSON(http.StatusOK, h.engine.Overview(n))
}

func (h *chartHandler) Thresholds(c *gin.Context) {
	c.JSON(http.StatusOK, h.engine.Thresholds())
}

func (h *chartHandler) CountryPopularity(c *gin.Context) {
	filter := analysis.PopularityFilter{
		Genre:  c.Query("genre"),
		Artist: c.Query("artist"),
		Song:   c.Query("song"),
	}
	c.JSON(http.StatusOK, gin.H{"countries": h.engine.CountryPopularity(filter)})
}

// Recommend reads ranges from <attribute>_min and <attribute>_max query
// parameters; seed makes the pick reproducible.
func (h *chartHandler) Recommend(c *gin.Context) {
	q := analysis.DefaultRecommendQuery()
	ranges := []struct {
		name string
		r    *analysis.Range
	}{
		{"tempo", &q.Tempo},
		{"valence", &q.Valence},
		{"energy", &q.Energy},
		{"danceability", &q.Danceability},
		{"acoustics", &q.Acoustics},
	}
	for _, rf := range ranges {
		if err := queryFloat(c, rf.name+"_min", &rf.r.Min); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := queryFloat(c, rf.name+"_max", &rf.r.Max); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	q.Genres = c.QueryArray("genre")
	q.Artists = c.QueryArray("artist")
	if limit := c.Query("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		q.Limit = n
	}
	if err := validateRecommendQuery(q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	seed := time.Now().UnixNano()
	if s := c.Query("seed"); s != "" {
		parsed, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid seed"})
			return
		}
		seed = parsed
	}
	recs := h.engine.Recommend(q, rand.New(rand.NewSource(seed)))
	c.JSON(http.StatusOK, gin.H{"recommendations": recs})
}

func queryFloat(c *gin.Context, key string, dst *float64) error {
	v, ok := c.GetQuery(key)
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("invalid %s: %q", key, v)
	}
	*dst = f
	return nil
}
