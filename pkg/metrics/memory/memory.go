package memory

import (
	"sync"
	"time"
)

// MemoryCollector implements metrics.Collector for in-memory testing.
type MemoryCollector struct {
	mu sync.RWMutex

	// requests counts per operation per status
	requests map[string]map[string]int64

	// latencies per operation
	latencies map[string][]time.Duration

	transfers        int64
	transferredMinor int64
	logSize          int
}

// NewMemoryCollector creates a new in-memory metrics collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{
		requests:  make(map[string]map[string]int64),
		latencies: make(map[string][]time.Duration),
	}
}

// RecordRequest records one service operation.
func (mc *MemoryCollector) RecordRequest(op string, status string, duration time.Duration) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	byStatus, ok := mc.requests[op]
	if !ok {
		byStatus = make(map[string]int64)
		mc.requests[op] = byStatus
	}
	byStatus[status]++
	mc.latencies[op] = append(mc.latencies[op], duration)
}

// RecordTransfer records a completed transfer.
func (mc *MemoryCollector) RecordTransfer(amountMinorUnits int64) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.transfers++
	mc.transferredMinor += amountMinorUnits
}

// RecordLogSize records the current transaction log length.
func (mc *MemoryCollector) RecordLogSize(size int) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.logSize = size
}

// Requests returns the count for an operation/status pair.
func (mc *MemoryCollector) Requests(op, status string) int64 {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return mc.requests[op][status]
}

// Transfers returns the completed transfer count and total minor units moved.
func (mc *MemoryCollector) Transfers() (count, minorUnits int64) {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return mc.transfers, mc.transferredMinor
}

// LogSize returns the last recorded log length.
func (mc *MemoryCollector) LogSize() int {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return mc.logSize
}

// Snapshot returns a copy of all request counters, keyed op -> status.
func (mc *MemoryCollector) Snapshot() map[string]map[string]int64 {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	out := make(map[string]map[string]int64, len(mc.requests))
	for op, byStatus := range mc.requests {
		cp := make(map[string]int64, len(byStatus))
		for status, n := range byStatus {
			cp[status] = n
		}
		out[op] = cp
	}
	return out
}
