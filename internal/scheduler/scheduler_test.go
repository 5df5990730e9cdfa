package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingJob struct {
	runs     atomic.Int32
	interval time.Duration
}

func (j *countingJob) Name() string            { return "counting" }
func (j *countingJob) Interval() time.Duration { return j.interval }
func (j *countingJob) Execute(ctx context.Context) error {
	j.runs.Add(1)
	return nil
}

func TestScheduler_RunsJobs(t *testing.T) {
	s := New(time.UTC)
	job := &countingJob{interval: 20 * time.Millisecond}

	require.NoError(t, s.AddJob(job))
	s.Start()
	defer s.Stop()

	assert.True(t, s.IsRunning())
	assert.Eventually(t, func() bool { return job.runs.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
}

func TestScheduler_StartWithoutJobs(t *testing.T) {
	s := New(nil)
	s.Start()
	assert.False(t, s.IsRunning())
	s.Stop()
}

func TestScheduler_RejectsZeroInterval(t *testing.T) {
	s := New(time.UTC)
	assert.Error(t, s.AddJob(&countingJob{}))
}

func TestScheduler_RunNow(t *testing.T) {
	s := New(time.UTC)
	job := &countingJob{interval: time.Hour}
	require.NoError(t, s.AddJob(job))

	require.NoError(t, s.RunNow(context.Background(), "counting"))
	assert.Equal(t, int32(1), job.runs.Load())

	assert.Error(t, s.RunNow(context.Background(), "missing"))
}
