package contract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewTimelineRequest_CoversOneWeek(t *testing.T) {
	from := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	req := NewTimelineRequest(from)

	assert.Equal(t, from, req.From)
	assert.Equal(t, time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC), req.To)
	assert.Nil(t, req.Today)
	assert.Nil(t, req.ProjectScope)
	assert.False(t, req.IncludeEmpty)
}

func TestNewInsightsRequest_SetsDefaults(t *testing.T) {
	req := NewInsightsRequest()
	assert.Equal(t, 7, req.RecentDays)
	assert.Nil(t, req.Today)
}

func TestError_Format(t *testing.T) {
	err := NewError(ErrInvalidRange, "to is before from")
	assert.Equal(t, "INVALID_RANGE: to is before from", err.Error())
}

func TestMutationResult_Add(t *testing.T) {
	var r MutationResult
	r.Add(NoticePhaseExtended, "ph-1", "extended to today")
	r.Add(NoticePhaseShifted, "ph-2", "moved one day")

	assert.Len(t, r.Notices, 2)
	assert.Equal(t, NoticePhaseShifted, r.Notices[1].Kind)
	assert.Equal(t, "ph-2", r.Notices[1].EntityID)
}
