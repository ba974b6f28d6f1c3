package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoll_ReadableAndPriority(t *testing.T) {
	e := newTestEngine(t, WithThresholdMC(44015))
	sess := e.OpenSession()

	r := sess.Poll()
	assert.False(t, r.Readable)
	assert.False(t, r.Priority)

	_, err := readWithin(t, sess, time.Second) // 44010, below threshold
	require.NoError(t, err)

	r = sess.Poll()
	assert.False(t, r.Readable, "a read that consumed the sample clears Readable")

	_, err = readWithin(t, sess, time.Second) // 44020, crosses threshold
	require.NoError(t, err)
}

func TestPoll_DoesNotMutateSession(t *testing.T) {
	e := newTestEngine(t)
	sess := e.OpenSession()

	time.Sleep(30 * time.Millisecond)

	before := sess.Poll()
	assert.True(t, before.Readable)
	after := sess.Poll()
	assert.Equal(t, before, after, "polling twice must not change the outcome")

	_, err := readWithin(t, sess, time.Second)
	require.NoError(t, err)
	assert.False(t, sess.Poll().Readable)
}

func TestSession_BufferTooSmall_DoesNotAdvanceCursor(t *testing.T) {
	e := newTestEngine(t)
	sess := e.OpenSession()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	tooSmall := make([]byte, RecordSize-1)
	_, err := sess.Read(ctx, tooSmall)
	require.ErrorIs(t, err, ErrBufferTooSmall)
	assert.Equal(t, uint32(0), sess.lastSeq)
	assert.NotEqual(t, 0, e.Stats().LastError)

	// A subsequent read with a correctly sized buffer must still see the
	// same sample that was skipped, not a later one.
	buf := make([]byte, RecordSize)
	rec, err := sess.Read(ctx, buf)
	require.NoError(t, err)
	assert.Equal(t, int32(44010), rec.TempMC)
}

func TestSession_TransportFailure_DoesNotAdvanceCursor(t *testing.T) {
	e := newTestEngine(t)
	sess := e.OpenSession()
	sess.Transport = func(dst []byte, rec Record) error {
		return ErrTransport
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	buf := make([]byte, RecordSize)

	_, err := sess.Read(ctx, buf)
	require.ErrorIs(t, err, ErrTransport)
	assert.Equal(t, uint32(0), sess.lastSeq)

	sess.Transport = nil
	rec, err := sess.Read(ctx, buf)
	require.NoError(t, err)
	assert.Equal(t, int32(44010), rec.TempMC)
}

func TestSession_ReadingsAdvanceEachCall(t *testing.T) {
	e := newTestEngine(t)
	sess := e.OpenSession()

	var prev int32 = -1
	for i := 0; i < 10; i++ {
		rec, err := readWithin(t, sess, time.Second)
		require.NoError(t, err)
		assert.NotEqual(t, prev, rec.TempMC, "each successful read must observe a distinct, newer sample")
		prev = rec.TempMC
	}
}

func TestMultipleSessions_AreIndependent(t *testing.T) {
	e := newTestEngine(t)
	a := e.OpenSession()

	_, err := readWithin(t, a, time.Second)
	require.NoError(t, err)

	// b opens later and must not see the sample a already consumed.
	b := e.OpenSession()
	recA, errA := readWithin(t, a, time.Second)
	recB, errB := readWithin(t, b, time.Second)
	require.NoError(t, errA)
	require.NoError(t, errB)
	assert.Equal(t, recA.TempMC, recB.TempMC, "both sessions observe the same tick's reading once each catches up")
}
