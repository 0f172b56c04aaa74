package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var durationBucketsMs = []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000}

var (
	analysisStartedTotal   atomic.Uint64
	analysisCompletedTotal atomic.Uint64
	analysisFailedTotal    atomic.Uint64
	documentsUploadedTotal atomic.Uint64
	toolCacheHitsTotal     atomic.Uint64
	jobsReceivedTotal      atomic.Uint64
	jobsCompletedTotal     atomic.Uint64
	jobsFailedTotal        atomic.Uint64
	jobsDroppedTotal       atomic.Uint64

	analysisDuration = newHistogram(durationBucketsMs)

	toolsMu       sync.Mutex
	toolCalls     = map[string]uint64{}
	toolFailures  = map[string]uint64{}
	toolDurations = map[string]*histogram{}
)

// IncAnalysisStarted increments the started counter.
func IncAnalysisStarted() {
	analysisStartedTotal.Add(1)
}

// IncAnalysisCompleted increments the completed counter.
func IncAnalysisCompleted() {
	analysisCompletedTotal.Add(1)
}

// IncAnalysisFailed increments the failed counter.
func IncAnalysisFailed() {
	analysisFailedTotal.Add(1)
}

// IncDocumentUploaded increments the uploaded documents counter.
func IncDocumentUploaded() {
	documentsUploadedTotal.Add(1)
}

// IncToolCacheHit counts a parsed document served from cache.
func IncToolCacheHit() {
	toolCacheHitsTotal.Add(1)
}

// IncJobReceived counts a queue message handed to a worker.
func IncJobReceived() {
	jobsReceivedTotal.Add(1)
}

// IncJobCompleted counts a queue message processed and deleted.
func IncJobCompleted() {
	jobsCompletedTotal.Add(1)
}

// IncJobFailed counts a queue message left for redelivery.
func IncJobFailed() {
	jobsFailedTotal.Add(1)
}

// IncJobDropped counts an undecodable queue message deleted without processing.
func IncJobDropped() {
	jobsDroppedTotal.Add(1)
}

// ObserveAnalysisDurationMs records an analysis duration in milliseconds.
func ObserveAnalysisDurationMs(value float64) {
	analysisDuration.Observe(max(value, 0))
}

// ObserveToolCall records one invocation of tool.
func ObserveToolCall(tool string, d time.Duration, failed bool) {
	toolsMu.Lock()
	defer toolsMu.Unlock()
	toolCalls[tool]++
	if failed {
		toolFailures[tool]++
	}
	h, ok := toolDurations[tool]
	if !ok {
		h = newHistogram(durationBucketsMs)
		toolDurations[tool] = h
	}
	h.Observe(max(float64(d)/float64(time.Millisecond), 0))
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "analysis_started_total", "Total analyses started", analysisStartedTotal.Load())
	writeCounter(&buf, "analysis_completed_total", "Total analyses completed", analysisCompletedTotal.Load())
	writeCounter(&buf, "analysis_failed_total", "Total analyses failed", analysisFailedTotal.Load())
	writeCounter(&buf, "documents_uploaded_total", "Total documents uploaded", documentsUploadedTotal.Load())
	writeCounter(&buf, "tool_cache_hits_total", "Parsed documents served from cache", toolCacheHitsTotal.Load())
	writeCounter(&buf, "analysis_jobs_received_total", "Queue messages received", jobsReceivedTotal.Load())
	writeCounter(&buf, "analysis_jobs_completed_total", "Queue messages processed", jobsCompletedTotal.Load())
	writeCounter(&buf, "analysis_jobs_failed_total", "Queue messages left for redelivery", jobsFailedTotal.Load())
	writeCounter(&buf, "analysis_jobs_dropped_total", "Undecodable queue messages deleted", jobsDroppedTotal.Load())
	writeHistogram(&buf, "analysis_duration_ms", "Analysis duration in milliseconds", "", analysisDuration.Snapshot())

	toolsMu.Lock()
	tools := make([]string, 0, len(toolCalls))
	for name := range toolCalls {
		tools = append(tools, name)
	}
	sort.Strings(tools)
	calls := make([]uint64, len(tools))
	failures := make([]uint64, len(tools))
	snaps := make([]histogramSnapshot, len(tools))
	for i, name := range tools {
		calls[i] = toolCalls[name]
		failures[i] = toolFailures[name]
		snaps[i] = toolDurations[name].Snapshot()
	}
	toolsMu.Unlock()

	if len(tools) > 0 {
		writeHeader(&buf, "tool_calls_total", "Tool invocations", "counter")
		for i, name := range tools {
			fmt.Fprintf(&buf, "tool_calls_total%s %d\n", toolLabel(name, ""), calls[i])
		}
		writeHeader(&buf, "tool_failures_total", "Tool invocations that returned an error result", "counter")
		for i, name := range tools {
			fmt.Fprintf(&buf, "tool_failures_total%s %d\n", toolLabel(name, ""), failures[i])
		}
		writeHeader(&buf, "tool_duration_ms", "Tool duration in milliseconds", "histogram")
		for i, name := range tools {
			writeHistogramSeries(&buf, "tool_duration_ms", name, snaps[i])
		}
	}
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			break
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeHeader(buf *bytes.Buffer, name, help, kind string) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s %s\n", name, kind)
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	writeHeader(buf, name, help, "counter")
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help, tool string, snap histogramSnapshot) {
	writeHeader(buf, name, help, "histogram")
	writeHistogramSeries(buf, name, tool, snap)
}

// writeHistogramSeries writes cumulative buckets; counts are stored per bucket.
func writeHistogramSeries(buf *bytes.Buffer, name, tool string, snap histogramSnapshot) {
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket%s %d\n", name, toolLabel(tool, formatFloat(bound)), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket%s %d\n", name, toolLabel(tool, "+Inf"), snap.count)
	fmt.Fprintf(buf, "%s_sum%s %s\n", name, toolLabel(tool, ""), formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count%s %d\n", name, toolLabel(tool, ""), snap.count)
}

func toolLabel(tool, le string) string {
	var parts []string
	if tool != "" {
		parts = append(parts, `tool="`+escapeLabel(tool)+`"`)
	}
	if le != "" {
		parts = append(parts, `le="`+le+`"`)
	}
	if len(parts) == 0 {
		return ""
	}
	return "{" + strings.Join(parts, ",") + "}"
}

func escapeLabel(v string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`).Replace(v)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// NowMillis returns current time in milliseconds, useful for callers without time utilities.
func NowMillis() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Millisecond)
}
