package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncStateTransition(t *testing.T) {
	next, err := SyncStateUnsynced.Transition(SyncStateSynced)
	require.NoError(t, err)
	assert.Equal(t, SyncStateSynced, next)

	next, err = SyncStateSynced.Transition(SyncStateSynced)
	require.NoError(t, err)
	assert.Equal(t, SyncStateSynced, next)

	next, err = SyncStateSynced.Transition(SyncStateUnsynced)
	assert.ErrorIs(t, err, ErrInvalidSyncTransition)
	assert.Equal(t, SyncStateSynced, next)
}

func TestPatientMarkSynced(t *testing.T) {
	p := &Patient{PID: "P001", SourceID: 1}
	assert.Equal(t, SyncStateUnsynced, p.SyncState())
	assert.Nil(t, p.SyncDate)

	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, p.MarkSynced(2, at))

	assert.Equal(t, SyncStateSynced, p.SyncState())
	assert.True(t, p.Synced)
	assert.Equal(t, int64(2), p.SourceID)
	require.NotNil(t, p.SyncDate)
	assert.True(t, p.SyncDate.Equal(at))
}
