package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/labtrack/lims/internal/model"
)

func TestPlanSync(t *testing.T) {
	unsynced := &model.Patient{PID: "P-1"}
	synced := &model.Patient{PID: "P-1", Synced: true}

	tests := []struct {
		name      string
		fromLocal bool
		existing  *model.Patient
		want      syncAction
	}{
		{"local new", true, nil, actionInsert},
		{"local duplicate is still an insert", true, unsynced, actionInsert},
		{"external new", false, nil, actionInsertSynced},
		{"external matches unsynced", false, unsynced, actionPromote},
		{"external matches synced", false, synced, actionNoop},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, planSync(tt.fromLocal, tt.existing))
		})
	}
}
