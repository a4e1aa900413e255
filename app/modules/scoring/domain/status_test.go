package scoringdomain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	sharedtypes "github.com/jbcre8iv/MotoSense-sub001/app/shared/types"
)

func TestNextStatusOnResult(t *testing.T) {
	tests := []struct {
		current sharedtypes.ScoreStatus
		want    sharedtypes.ScoreStatus
	}{
		{"", sharedtypes.ScoreStatusScored},
		{sharedtypes.ScoreStatusSubmitted, sharedtypes.ScoreStatusScored},
		{sharedtypes.ScoreStatusScored, sharedtypes.ScoreStatusRescored},
		{sharedtypes.ScoreStatusRescored, sharedtypes.ScoreStatusRescored},
		{sharedtypes.ScoreStatusFinal, sharedtypes.ScoreStatusRescored},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NextStatusOnResult(tt.current), "from %q", tt.current)
	}
}
