package jobs_test

import (
	"errors"
	"testing"

	"takeout/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingJob struct {
	name     string
	startErr error
	log      *[]string
}

func (j recordingJob) Start() error {
	*j.log = append(*j.log, "start "+j.name)
	return j.startErr
}

func (j recordingJob) Stop() {
	*j.log = append(*j.log, "stop "+j.name)
}

func TestJobManager_StartAllStopAll(t *testing.T) {
	var log []string
	jm := jobs.NewJobManager(recordingJob{name: "a", log: &log}, recordingJob{name: "b", log: &log})

	require.NoError(t, jm.StartAll())
	jm.StopAll()

	assert.Equal(t, []string{"start a", "start b", "stop b", "stop a"}, log)
}

func TestJobManager_StartAllStopsStartedOnFailure(t *testing.T) {
	var log []string
	boom := errors.New("bad schedule")
	jm := jobs.NewJobManager(
		recordingJob{name: "a", log: &log},
		recordingJob{name: "b", startErr: boom, log: &log},
		recordingJob{name: "c", log: &log},
	)

	err := jm.StartAll()

	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"start a", "start b", "stop a"}, log)
}
