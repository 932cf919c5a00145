package steplog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/envtap/internal/domain"
)

func testIdentity(t *testing.T, game string) domain.Identity {
	t.Helper()
	id, err := domain.NewIdentity(game, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return id
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

func TestSinkPath(t *testing.T) {
	ident := testIdentity(t, "pong")
	tok := ident.Token.String()

	train := SinkPath("/exp", "proj", domain.SinkID{Identity: ident, Mode: domain.ModeTrain})
	assert.Equal(t, filepath.Join("/exp", "proj", "pong", "2024.05.01", tok, tok+"_pong_train_reward_history.csv"), train)

	eval := SinkPath("/exp", "proj", domain.SinkID{Identity: ident, Mode: domain.ModeEval})
	assert.Equal(t, filepath.Join("/exp", "proj", "pong", "2024.05.01", tok, "test-generic", tok+"_pong_test_reward_history.csv"), eval)

	suite := SinkPath("/exp", "proj", domain.SinkID{Identity: ident, Mode: domain.ModeEval, Suite: "noop30"})
	assert.Contains(t, suite, "test-noop30")

	other := SinkPath("/exp", "proj", domain.SinkID{Identity: testIdentity(t, "pong"), Mode: domain.ModeTrain})
	assert.NotEqual(t, train, other)
}

func TestInitializeWritesHeader(t *testing.T) {
	sink := NewFileSink(t.TempDir(), "", nil)
	id := domain.SinkID{Identity: testIdentity(t, "pong"), Mode: domain.ModeTrain}

	require.NoError(t, sink.Initialize(id, domain.Header))
	assert.Equal(t, []string{"steps,reward,done,info"}, readLines(t, sink.Location(id)))
	assert.Contains(t, sink.Location(id), filepath.Join(DefaultProject, "pong"))
}

func TestAppendOnly(t *testing.T) {
	sink := NewFileSink(t.TempDir(), "proj", nil)
	id := domain.SinkID{Identity: testIdentity(t, "breakout"), Mode: domain.ModeTrain}
	require.NoError(t, sink.Initialize(id, domain.Header))

	var snapshots [][]string
	for i := 1; i <= 5; i++ {
		rec := domain.NewStepRecord(uint64(i), float64(i)/2, i == 3, domain.Info{"lives": 5 - i})
		require.NoError(t, sink.Append(id, rec))
		snapshots = append(snapshots, readLines(t, sink.Location(id)))
	}

	final := readLines(t, sink.Location(id))
	require.Len(t, final, 6)
	assert.Equal(t, `3,1.5,true,"{""lives"":2}"`, final[3])

	// every earlier snapshot is a prefix of the final file
	for i, snap := range snapshots {
		require.Len(t, snap, i+2)
		assert.Equal(t, snap, final[:len(snap)])
	}
}

func TestReinitializeTruncates(t *testing.T) {
	sink := NewFileSink(t.TempDir(), "proj", nil)
	id := domain.SinkID{Identity: testIdentity(t, "pong"), Mode: domain.ModeTrain}

	require.NoError(t, sink.Initialize(id, domain.Header))
	require.NoError(t, sink.Append(id, domain.NewStepRecord(1, 0, false, nil)))
	require.NoError(t, sink.Initialize(id, domain.Header))

	assert.Equal(t, []string{"steps,reward,done,info"}, readLines(t, sink.Location(id)))
}

func TestAppendWithoutInitialize(t *testing.T) {
	sink := NewFileSink(t.TempDir(), "proj", nil)
	id := domain.SinkID{Identity: testIdentity(t, "pong"), Mode: domain.ModeTrain}

	err := sink.Append(id, domain.NewStepRecord(1, 0, false, nil))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrIO))
	_, statErr := os.Stat(sink.Location(id))
	assert.True(t, os.IsNotExist(statErr))
}

func TestAppendAfterRemoval(t *testing.T) {
	sink := NewFileSink(t.TempDir(), "proj", nil)
	id := domain.SinkID{Identity: testIdentity(t, "pong"), Mode: domain.ModeTrain}
	require.NoError(t, sink.Initialize(id, domain.Header))
	require.NoError(t, os.RemoveAll(sink.RunDir(id.Identity)))

	err := sink.Append(id, domain.NewStepRecord(1, 0, false, nil))
	assert.True(t, errors.Is(err, domain.ErrIO))
}

func TestAppendUnsupportedInfo(t *testing.T) {
	sink := NewFileSink(t.TempDir(), "proj", nil)
	id := domain.SinkID{Identity: testIdentity(t, "pong"), Mode: domain.ModeTrain}
	require.NoError(t, sink.Initialize(id, domain.Header))

	err := sink.Append(id, domain.StepRecord{Step: 1, Info: domain.Info{"bad": struct{}{}}})
	assert.True(t, errors.Is(err, domain.ErrEncoding))
	assert.Len(t, readLines(t, sink.Location(id)), 1)
}

func TestTrainAndEvalSinksIndependent(t *testing.T) {
	sink := NewFileSink(t.TempDir(), "proj", nil)
	ident := testIdentity(t, "pong")
	train := domain.SinkID{Identity: ident, Mode: domain.ModeTrain}
	eval := domain.SinkID{Identity: ident, Mode: domain.ModeEval}

	require.NoError(t, sink.Initialize(train, domain.Header))
	require.NoError(t, sink.Initialize(eval, domain.Header))
	require.NoError(t, sink.Append(train, domain.NewStepRecord(1, 1, false, nil)))
	require.NoError(t, sink.Append(train, domain.NewStepRecord(2, 1, false, nil)))
	require.NoError(t, sink.Append(eval, domain.NewStepRecord(1, 0, true, nil)))

	assert.Len(t, readLines(t, sink.Location(train)), 3)
	assert.Len(t, readLines(t, sink.Location(eval)), 2)
}
