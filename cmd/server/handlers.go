package main

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"github.com/baditaflorin/go_sentiment_flow/internal/core/analyze"
	"github.com/baditaflorin/go_sentiment_flow/internal/core/domain"
	"github.com/baditaflorin/go_sentiment_flow/internal/core/models"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 200
	defaultStatsHours   = 24
)

// sessionHeader carries the client session across requests.
const sessionHeader = "X-Session-ID"

// AnalyzeRequest is a single-text analysis request.
type AnalyzeRequest struct {
	Text       string `json:"text"`
	Model      string `json:"model_name,omitempty"`
	IncludeRaw bool   `json:"include_raw_output,omitempty"`
}

// BatchAnalyzeRequest is a multi-text analysis request.
type BatchAnalyzeRequest struct {
	Texts     []string `json:"texts"`
	Model     string   `json:"model_name,omitempty"`
	BatchSize int      `json:"batch_size,omitempty"`
}

// AnalyzeResponse wraps one analysis with its session attribution.
type AnalyzeResponse struct {
	domain.Analysis
	SessionID string `json:"session_id"`
}

// BatchAnalyzeResponse wraps batch results with summary counts.
type BatchAnalyzeResponse struct {
	Results   []domain.Analysis `json:"results"`
	Total     int               `json:"total"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
	Model     string            `json:"model"`
	SessionID string            `json:"session_id"`
}

// ModelInfo is one entry of the model listing.
type ModelInfo struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Level        string   `json:"preprocessing_level"`
	MaxLength    int      `json:"max_length"`
	Multilingual bool     `json:"multilingual"`
	SocialMedia  bool     `json:"social_media"`
	Labels       []string `json:"labels"`
	Languages    []string `json:"languages,omitempty"`
	Default      bool     `json:"default"`
}

// handleHealthCheck responds to health check requests
func handleHealthCheck(ctx *fasthttp.RequestCtx) {
	storeStatus := "disabled"
	if results != nil {
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := results.Ping(pingCtx); err != nil {
			storeStatus = "down"
		} else {
			storeStatus = "up"
		}
	}

	cacheStatus := "disabled"
	if resultCache != nil {
		cacheStatus = "up"
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, map[string]interface{}{
		"status":         "ok",
		"time":           time.Now().Format(time.RFC3339),
		"uptime":         time.Since(startedAt).String(),
		"models":         len(analyzers),
		"default_model":  defaultModel,
		"document_store": storeStatus,
		"cache":          cacheStatus,
	})
}

// handleAnalyze handles single-text sentiment analysis requests.
func handleAnalyze(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		writeJSONError(ctx, "Method not allowed")
		return
	}

	var req AnalyzeRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}
	if req.Text == "" {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Text is required")
		return
	}

	analyzer, ok := resolveAnalyzer(req.Model)
	if !ok {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Unknown model: "+req.Model)
		return
	}

	sessionID := resolveSession(ctx)

	c, cancel := context.WithTimeout(context.Background(), cfg.InferenceTimeout+5*time.Second)
	defer cancel()

	result, err := analyzer.AnalyzeText(c, req.Text)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadGateway)
		writeJSONError(ctx, "Analysis failed: "+err.Error())
		return
	}
	if !req.IncludeRaw {
		result.RawOutput = nil
	}

	persistAnalysis(sessionID, string(ctx.UserAgent()), clientIP(ctx), result)

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, AnalyzeResponse{Analysis: result, SessionID: sessionID})
}

// handleAnalyzeBatch handles multi-text sentiment analysis requests.
func handleAnalyzeBatch(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		writeJSONError(ctx, "Method not allowed")
		return
	}

	var req BatchAnalyzeRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}
	if len(req.Texts) == 0 {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "At least one text is required")
		return
	}
	if len(req.Texts) > cfg.MaxBatchSize {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Batch size exceeds maximum of "+strconv.Itoa(cfg.MaxBatchSize))
		return
	}

	analyzer, ok := resolveAnalyzer(req.Model)
	if !ok {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Unknown model: "+req.Model)
		return
	}

	sessionID := resolveSession(ctx)

	c, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	batch := analyzer.AnalyzeTexts(c, req.Texts, req.BatchSize)

	succeeded := 0
	for i := range batch {
		batch[i].RawOutput = nil
		if batch[i].Success {
			succeeded++
			persistAnalysis(sessionID, string(ctx.UserAgent()), clientIP(ctx), batch[i])
		}
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, BatchAnalyzeResponse{
		Results:   batch,
		Total:     len(batch),
		Succeeded: succeeded,
		Failed:    len(batch) - succeeded,
		Model:     analyzer.Model(),
		SessionID: sessionID,
	})
}

// handleListModels lists the registered models and their profiles.
func handleListModels(ctx *fasthttp.RequestCtx) {
	profiles := models.All()
	infos := make([]ModelInfo, 0, len(profiles))
	for _, p := range profiles {
		infos = append(infos, ModelInfo{
			Name:         p.Name,
			Description:  p.Description,
			Level:        string(p.Level),
			MaxLength:    p.MaxLength,
			Multilingual: p.Multilingual,
			SocialMedia:  p.SocialMedia,
			Labels:       p.Labels,
			Languages:    p.Languages,
			Default:      p.Name == defaultModel,
		})
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, map[string]interface{}{
		"models":  infos,
		"default": defaultModel,
	})
}

// handleSessionResults returns a session's analysis history, newest first.
func handleSessionResults(ctx *fasthttp.RequestCtx, sessionID string) {
	if !requireHistory(ctx) {
		return
	}
	if sessionID == "" {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Session ID is required")
		return
	}

	limit := clampLimit(queryInt(ctx, "limit", defaultHistoryLimit))
	skip := queryInt(ctx, "skip", 0)
	if skip < 0 {
		skip = 0
	}

	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	records, err := results.GetBySession(c, sessionID, limit, skip)
	if err != nil {
		appLogger.Error("Session history query failed", "session_id", sessionID, "error", err)
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		writeJSONError(ctx, "History query failed")
		return
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, map[string]interface{}{
		"session_id": sessionID,
		"results":    records,
		"count":      len(records),
		"limit":      limit,
		"skip":       skip,
	})
}

// handleRecentResults returns results analyzed within the last N hours.
func handleRecentResults(ctx *fasthttp.RequestCtx) {
	if !requireHistory(ctx) {
		return
	}

	hours := queryInt(ctx, "hours", defaultStatsHours)
	limit := clampLimit(queryInt(ctx, "limit", defaultHistoryLimit))
	since := time.Now().Add(-time.Duration(hours) * time.Hour)

	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	records, err := results.GetRecent(c, since, limit)
	if err != nil {
		appLogger.Error("Recent results query failed", "error", err)
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		writeJSONError(ctx, "History query failed")
		return
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, map[string]interface{}{
		"results": records,
		"count":   len(records),
		"hours":   hours,
	})
}

// handleActiveSessions returns sessions active within the last N hours.
func handleActiveSessions(ctx *fasthttp.RequestCtx) {
	if !requireHistory(ctx) {
		return
	}

	hours := queryInt(ctx, "hours", defaultStatsHours)
	limit := clampLimit(queryInt(ctx, "limit", defaultHistoryLimit))
	since := time.Now().Add(-time.Duration(hours) * time.Hour)

	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	active, err := sessions.ActiveSessions(c, since, limit)
	if err != nil {
		appLogger.Error("Active sessions query failed", "error", err)
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		writeJSONError(ctx, "History query failed")
		return
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, map[string]interface{}{
		"sessions": active,
		"count":    len(active),
		"hours":    hours,
	})
}

// handleSentimentStats returns the sentiment label distribution.
func handleSentimentStats(ctx *fasthttp.RequestCtx) {
	if !requireHistory(ctx) {
		return
	}

	hours := queryInt(ctx, "hours", defaultStatsHours)
	since := time.Now().Add(-time.Duration(hours) * time.Hour)

	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	distribution, err := results.SentimentDistribution(c, since)
	if err != nil {
		appLogger.Error("Sentiment distribution query failed", "error", err)
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		writeJSONError(ctx, "Analytics query failed")
		return
	}

	var total int64
	for _, lc := range distribution {
		total += lc.Count
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, map[string]interface{}{
		"distribution": distribution,
		"total":        total,
		"hours":        hours,
	})
}

// handleModelStats returns per-model usage and performance figures.
func handleModelStats(ctx *fasthttp.RequestCtx) {
	if !requireHistory(ctx) {
		return
	}

	hours := queryInt(ctx, "hours", defaultStatsHours)
	since := time.Now().Add(-time.Duration(hours) * time.Hour)

	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stats, err := results.ModelPerformance(c, since)
	if err != nil {
		appLogger.Error("Model performance query failed", "error", err)
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		writeJSONError(ctx, "Analytics query failed")
		return
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, map[string]interface{}{
		"models": stats,
		"hours":  hours,
	})
}

// handleConfidenceStats returns the confidence histogram.
func handleConfidenceStats(ctx *fasthttp.RequestCtx) {
	if !requireHistory(ctx) {
		return
	}

	hours := queryInt(ctx, "hours", defaultStatsHours)
	interval := queryFloat(ctx, "interval", 0.1)
	since := time.Now().Add(-time.Duration(hours) * time.Hour)

	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	histogram, err := results.ConfidenceHistogram(c, since, interval)
	if err != nil {
		appLogger.Error("Confidence histogram query failed", "error", err)
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		writeJSONError(ctx, "Analytics query failed")
		return
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, map[string]interface{}{
		"histogram": histogram,
		"interval":  interval,
		"hours":     hours,
	})
}

// resolveAnalyzer picks the analyzer for the requested model, falling back
// to the default when none is named.
func resolveAnalyzer(model string) (*analyze.Analyzer, bool) {
	if model == "" {
		model = defaultModel
	}
	analyzer, ok := analyzers[model]
	return analyzer, ok
}

// resolveSession reads the client's session ID from the request header,
// minting a new one when absent. The ID is echoed back so clients can
// carry it across requests.
func resolveSession(ctx *fasthttp.RequestCtx) string {
	sessionID := string(ctx.Request.Header.Peek(sessionHeader))
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	ctx.Response.Header.Set(sessionHeader, sessionID)
	return sessionID
}

// persistAnalysis stores one result and bumps the session, off the request
// path. Storage failures are logged but never fail the request.
func persistAnalysis(sessionID, userAgent, ipAddress string, analysis domain.Analysis) {
	if results == nil || sessions == nil {
		return
	}

	record := domain.AnalysisRecord{
		ID:               uuid.NewString(),
		SessionID:        sessionID,
		Text:             analysis.Text,
		ModelName:        analysis.Model,
		Label:            analysis.Sentiment,
		Confidence:       analysis.Confidence,
		Scores:           analysis.Scores,
		TextLength:       len(analysis.Text),
		ProcessingTimeMs: analysis.ProcessingTimeMs,
		Timestamp:        time.Now().UTC(),
		UserAgent:        userAgent,
		IPAddress:        ipAddress,
	}

	go func() {
		c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := results.Create(c, record); err != nil {
			appLogger.Warn("Failed to persist analysis result",
				"session_id", sessionID,
				"error", err,
			)
			return
		}
		if _, err := sessions.GetOrCreate(c, sessionID, userAgent, ipAddress); err != nil {
			appLogger.Warn("Failed to resolve session", "session_id", sessionID, "error", err)
			return
		}
		if err := sessions.UpdateActivity(c, sessionID, record.ModelName); err != nil {
			appLogger.Warn("Failed to update session activity",
				"session_id", sessionID,
				"error", err,
			)
		}
	}()
}

// requireHistory rejects history requests when the document store is
// unavailable.
func requireHistory(ctx *fasthttp.RequestCtx) bool {
	if !ctx.IsGet() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		writeJSONError(ctx, "Method not allowed")
		return false
	}
	if results == nil {
		ctx.SetStatusCode(fasthttp.StatusServiceUnavailable)
		writeJSONError(ctx, "History is unavailable: document store not connected")
		return false
	}
	return true
}

func queryInt(ctx *fasthttp.RequestCtx, name string, defaultValue int) int {
	raw := string(ctx.QueryArgs().Peek(name))
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

func queryFloat(ctx *fasthttp.RequestCtx, name string, defaultValue float64) float64 {
	raw := string(ctx.QueryArgs().Peek(name))
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

func clampLimit(limit int) int {
	if limit > maxHistoryLimit {
		return maxHistoryLimit
	}
	return limit
}
