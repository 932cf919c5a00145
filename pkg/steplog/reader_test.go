package steplog

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/envtap/internal/domain"
)

func TestReadFileRoundTrip(t *testing.T) {
	sink := NewFileSink(t.TempDir(), "proj", nil)
	id := domain.SinkID{Identity: testIdentity(t, "pong"), Mode: domain.ModeTrain}
	require.NoError(t, sink.Initialize(id, domain.Header))

	require.NoError(t, sink.Append(id, domain.NewStepRecord(1, 0.25, false, domain.Info{"real_frame_count": 4})))
	require.NoError(t, sink.Append(id, domain.NewStepRecord(2, -1, true, domain.Info{"s": "a,b"})))
	require.NoError(t, sink.Append(id, domain.NewStepRecord(3, math.Inf(1), false, nil)))

	rows, err := ReadFile(sink.Location(id))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, Row{Steps: 1, Reward: 0.25, Done: false, Info: `{"real_frame_count":4}`}, rows[0])
	assert.Equal(t, Row{Steps: 2, Reward: -1, Done: true, Info: `{"s":"a,b"}`}, rows[1])
	assert.True(t, math.IsInf(rows[2].Reward, 1))
	assert.NoError(t, CheckContiguous(rows))
}

func TestReadHeaderOnly(t *testing.T) {
	rows, err := Read(strings.NewReader("steps,reward,done,info\n"))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReadBadHeader(t *testing.T) {
	_, err := Read(strings.NewReader("a,b,c\n1,2,3\n"))
	assert.Error(t, err)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile("/nonexistent/sink.csv")
	assert.True(t, errors.Is(err, domain.ErrIO))
}

func TestSummarize(t *testing.T) {
	rows := []Row{
		{Steps: 1, Reward: 1},
		{Steps: 2, Reward: 0, Done: true},
		{Steps: 3, Reward: -0.5},
		{Steps: 4, Reward: 2, Done: true},
	}
	s := Summarize(rows)
	assert.Equal(t, Summary{Rows: 4, LastStep: 4, Episodes: 2, TotalReward: 2.5}, s)
}

func TestCheckContiguous(t *testing.T) {
	assert.NoError(t, CheckContiguous(nil))
	assert.Error(t, CheckContiguous([]Row{{Steps: 1}, {Steps: 3}}))
	assert.Error(t, CheckContiguous([]Row{{Steps: 0}}))
}

func TestParseLine(t *testing.T) {
	row, err := parseLine(`7,0.5,false,"{""k"":1}"`)
	require.NoError(t, err)
	assert.Equal(t, Row{Steps: 7, Reward: 0.5, Info: `{"k":1}`}, row)

	_, err = parseLine(`7,0.5`)
	assert.Error(t, err)
	_, err = parseLine(`x,0.5,false,{}`)
	assert.Error(t, err)
}

func TestFollow(t *testing.T) {
	sink := NewFileSink(t.TempDir(), "proj", nil)
	id := domain.SinkID{Identity: testIdentity(t, "pong"), Mode: domain.ModeTrain}
	require.NoError(t, sink.Initialize(id, domain.Header))
	require.NoError(t, sink.Append(id, domain.NewStepRecord(1, 1, false, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rows := make(chan Row, 16)
	done := make(chan error, 1)
	go func() {
		done <- Follow(ctx, sink.Location(id), func(r Row) error {
			rows <- r
			return nil
		})
	}()

	first := <-rows
	assert.Equal(t, uint64(1), first.Steps)

	require.NoError(t, sink.Append(id, domain.NewStepRecord(2, 0, true, nil)))
	require.NoError(t, sink.Append(id, domain.NewStepRecord(3, 0, false, nil)))

	for want := uint64(2); want <= 3; want++ {
		select {
		case r := <-rows:
			assert.Equal(t, want, r.Steps)
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for step %d", want)
		}
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestFollowStopsOnCallbackError(t *testing.T) {
	sink := NewFileSink(t.TempDir(), "proj", nil)
	id := domain.SinkID{Identity: testIdentity(t, "pong"), Mode: domain.ModeTrain}
	require.NoError(t, sink.Initialize(id, domain.Header))
	require.NoError(t, sink.Append(id, domain.NewStepRecord(1, 1, false, nil)))

	stop := errors.New("stop")
	err := Follow(context.Background(), sink.Location(id), func(Row) error { return stop })
	assert.ErrorIs(t, err, stop)
}
