package llm

import "log/slog"

// Metrics tracks LLM usage statistics
type Metrics struct {
	TotalRequests    int64
	TotalTokens      int64
	TotalDurationMs  int64
	AverageLatencyMs float64
	ErrorCount       int64
}

// MetricsCollector collects LLM usage metrics
type MetricsCollector struct {
	metrics Metrics
	logger  *slog.Logger
}

// NewMetricsCollector creates a new metrics collector
func NewMetricsCollector(logger *slog.Logger) *MetricsCollector {
	return &MetricsCollector{
		logger: logger,
	}
}

// Record records metrics from a response
func (mc *MetricsCollector) Record(resp *GenerateResponse) {
	mc.metrics.TotalRequests++
	mc.metrics.TotalTokens += int64(resp.EvalCount + resp.PromptEvalCount)
	mc.metrics.TotalDurationMs += resp.TotalDuration / 1_000_000

	if mc.metrics.TotalRequests > 0 {
		mc.metrics.AverageLatencyMs = float64(mc.metrics.TotalDurationMs) / float64(mc.metrics.TotalRequests)
	}
}

// RecordError records an error
func (mc *MetricsCollector) RecordError() {
	mc.metrics.ErrorCount++
}

// GetMetrics returns current metrics
func (mc *MetricsCollector) GetMetrics() Metrics {
	return mc.metrics
}

// LogMetrics logs current metrics
func (mc *MetricsCollector) LogMetrics() {
	mc.logger.Info("LLM metrics",
		"total_requests", mc.metrics.TotalRequests,
		"total_tokens", mc.metrics.TotalTokens,
		"avg_latency_ms", mc.metrics.AverageLatencyMs,
		"error_count", mc.metrics.ErrorCount)
}
