package publisher_test

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarwn/consuming-logs/internal/adapters/publisher"
	"github.com/tarwn/consuming-logs/internal/domain/events"
	"github.com/tarwn/consuming-logs/internal/domain/shared"
	"github.com/tarwn/consuming-logs/test/helpers"
)

func readSegment(t *testing.T, path string) []map[string]interface{} {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	dec, err := zstd.NewReader(f)
	require.NoError(t, err)
	defer dec.Close()

	var lines []map[string]interface{}
	scanner := bufio.NewScanner(dec)
	for scanner.Scan() {
		var line map[string]interface{}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &line))
		lines = append(lines, line)
	}
	require.NoError(t, scanner.Err())
	return lines
}

func TestJournal_WritesCompressedJSONLines(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	clock := shared.NewMockClock(helpers.TestStart.Add(15 * time.Minute))
	journal := publisher.NewJournal(dir, "events", time.Hour, publisher.WithJournalClock(clock))

	// Act
	require.NoError(t, journal.Publish(context.Background(),
		events.NewSystem(helpers.TestStart, events.SystemStarting),
		events.NewHeartbeat(helpers.TestStart, 10),
	))
	path := journal.Path()
	require.NoError(t, journal.Close())

	// Assert
	assert.Equal(t, filepath.Join(dir, "events-2026-01-05T08-00-00Z.jsonl.zst"), path)
	lines := readSegment(t, path)
	require.Len(t, lines, 2)
	assert.Equal(t, "System", lines[0]["type"])
	assert.Equal(t, "starting", lines[0]["action"])
	assert.Equal(t, "Heartbeat", lines[1]["type"])
}

func TestJournal_RotatesAndHandsOffClosedSegments(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	clock := shared.NewMockClock(helpers.TestStart)
	var mu sync.Mutex
	var rotated []string
	journal := publisher.NewJournal(dir, "events", time.Hour,
		publisher.WithJournalClock(clock),
		publisher.WithRotateHook(func(path string) {
			mu.Lock()
			defer mu.Unlock()
			rotated = append(rotated, path)
		}),
	)
	ctx := context.Background()

	// Act
	require.NoError(t, journal.Publish(ctx, events.NewHeartbeat(clock.Now(), 10)))
	first := journal.Path()
	clock.Advance(time.Hour)
	require.NoError(t, journal.Publish(ctx, events.NewHeartbeat(clock.Now(), 20)))
	second := journal.Path()
	require.NoError(t, journal.Close())

	// Assert
	assert.NotEqual(t, first, second)
	mu.Lock()
	assert.ElementsMatch(t, []string{first, second}, rotated)
	mu.Unlock()

	assert.Len(t, readSegment(t, first), 1)
	secondLines := readSegment(t, second)
	require.Len(t, secondLines, 1)
	assert.Equal(t, float64(20), secondLines[0]["interval"])
}

func TestJournal_CloseWithoutWritesIsSafe(t *testing.T) {
	journal := publisher.NewJournal(t.TempDir(), "events", 0)

	assert.NoError(t, journal.Close())
	assert.Empty(t, journal.Path())
}
