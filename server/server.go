// Package server exposes the analysis service over an HTTP JSON API and
// serves the single-page dashboard that consumes it.
package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/rustyeddy/stockdash/analysis"
	"github.com/rustyeddy/stockdash/config"
	"github.com/rustyeddy/stockdash/feed"
	"github.com/rustyeddy/stockdash/indicators"
	"github.com/rustyeddy/stockdash/journal"
)

// historyTailDefault bounds the raw-data table like the dashboard's
// "last 100 rows" view.
const historyTailDefault = 100

// Server wires the HTTP routes to the analysis service.
type Server struct {
	svc      *analysis.Service
	journal  journal.Journal
	defaults config.AnalysisConfig
	engine   *gin.Engine
}

// New builds the router. Request parameters missing from the query string
// fall back to the configured defaults.
func New(svc *analysis.Service, jour journal.Journal, defaults config.AnalysisConfig) *Server {
	if jour == nil {
		jour = journal.Noop{}
	}
	s := &Server{
		svc:      svc,
		journal:  jour,
		defaults: defaults,
	}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowHeaders:  []string{"Origin", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		AllowMethods:  []string{"GET"},
		MaxAge:        12 * time.Hour,
	}))

	r.GET("/", s.handleDashboard)
	r.GET("/api/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	r.GET("/api/analysis", s.handleAnalysis)
	r.GET("/api/history", s.handleHistory)
	r.GET("/api/journal", s.handleJournal)

	s.engine = r
	return s
}

// Handler returns the underlying http.Handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("dashboard listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// parseRange reads symbol/start/end, defaulting to the last two years
// ending today when the dates are absent (the dashboard's initial view).
func parseRange(c *gin.Context) (symbol string, start, end time.Time, err error) {
	symbol = c.Query("symbol")

	end = time.Now().UTC().Truncate(24 * time.Hour)
	start = end.AddDate(-2, 0, 0)

	if v := c.Query("start"); v != "" {
		start, err = time.Parse("2006-01-02", v)
		if err != nil {
			return "", time.Time{}, time.Time{}, errors.New("start must be YYYY-MM-DD")
		}
	}
	if v := c.Query("end"); v != "" {
		end, err = time.Parse("2006-01-02", v)
		if err != nil {
			return "", time.Time{}, time.Time{}, errors.New("end must be YYYY-MM-DD")
		}
	}
	if symbol == "" {
		return "", time.Time{}, time.Time{}, errors.New("symbol is required")
	}
	if end.Before(start) {
		return "", time.Time{}, time.Time{}, errors.New("end date is before start date")
	}
	return symbol, start, end, nil
}

func intQuery(c *gin.Context, name string, fallback int) (int, error) {
	v := c.Query(name)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.New(name + " must be an integer")
	}
	return n, nil
}

func (s *Server) handleAnalysis(c *gin.Context) {
	symbol, start, end, err := parseRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p := analysis.Params{
		Symbol: symbol,
		Start:  start,
		End:    end,
		BollK:  s.defaults.BollK,
	}
	if p.ShortWindow, err = intQuery(c, "short", s.defaults.ShortWindow); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if p.LongWindow, err = intQuery(c, "long", s.defaults.LongWindow); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if p.BollWindow, err = intQuery(c, "window", s.defaults.BollWindow); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if v := c.Query("k"); v != "" {
		k, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "k must be a number"})
			return
		}
		p.BollK = k
	}

	report, err := s.svc.Analyze(c.Request.Context(), p)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) handleHistory(c *gin.Context) {
	symbol, start, end, err := parseRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	limit, err := intQuery(c, "limit", historyTailDefault)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	candles, err := s.svc.History(c.Request.Context(), symbol, start, end)
	if err != nil {
		s.renderError(c, err)
		return
	}

	// Tail view, like the dashboard's raw-data table.
	if limit > 0 && len(candles) > limit {
		candles = candles[len(candles)-limit:]
	}

	type row struct {
		Date   string  `json:"date"`
		Open   float64 `json:"open"`
		High   float64 `json:"high"`
		Low    float64 `json:"low"`
		Close  float64 `json:"close"`
		Volume float64 `json:"volume"`
	}
	rows := make([]row, len(candles))
	for i, cd := range candles {
		rows[i] = row{
			Date:   cd.Date(),
			Open:   cd.Open,
			High:   cd.High,
			Low:    cd.Low,
			Close:  cd.Close,
			Volume: cd.Volume,
		}
	}
	c.JSON(http.StatusOK, gin.H{"symbol": symbol, "rows": rows})
}

func (s *Server) handleJournal(c *gin.Context) {
	limit, err := intQuery(c, "limit", 20)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recs, err := s.journal.RecentFetches(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	type row struct {
		ID        string    `json:"id"`
		Symbol    string    `json:"symbol"`
		Start     string    `json:"start"`
		End       string    `json:"end"`
		Bars      int       `json:"bars"`
		Source    string    `json:"source"`
		Millis    int64     `json:"duration_ms"`
		FetchedAt time.Time `json:"fetched_at"`
	}
	rows := make([]row, len(recs))
	for i, rec := range recs {
		rows[i] = row{
			ID:        rec.ID,
			Symbol:    rec.Symbol,
			Start:     rec.Start.Format("2006-01-02"),
			End:       rec.End.Format("2006-01-02"),
			Bars:      rec.Bars,
			Source:    rec.Source,
			Millis:    rec.Duration.Milliseconds(),
			FetchedAt: rec.FetchedAt,
		}
	}
	c.JSON(http.StatusOK, gin.H{"fetches": rows})
}

// renderError maps service errors to HTTP statuses: missing data is a
// user-visible warning, bad parameters are the caller's fault, anything
// else is an upstream failure.
func (s *Server) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, feed.ErrNoData):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Could not load data. Please check the ticker symbol and date range.",
		})
	case errors.Is(err, indicators.ErrInvalidWindow):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.WithError(err).Error("analysis request failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	}
}
