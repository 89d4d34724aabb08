package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnumNormalize(t *testing.T) {
	t.Run("Known values pass through", func(t *testing.T) {
		assert.Equal(t, ProjectTypeArea, ProjectType("area").Normalize())
		assert.Equal(t, ProjectStatusOnHold, ProjectStatus("on_hold").Normalize())
		assert.Equal(t, EntryKindMeeting, EntryKind("meeting").Normalize())
		assert.Equal(t, DirectionWaitingFor, CommitmentDirection("waiting_for").Normalize())
		assert.Equal(t, CommitmentBlocked, CommitmentStatus("blocked").Normalize())
		assert.Equal(t, PeriodQuarter, PeriodType("quarter").Normalize())
	})

	t.Run("Unknown values take the neutral default", func(t *testing.T) {
		assert.Equal(t, ProjectTypeProject, ProjectType("sprint").Normalize())
		assert.Equal(t, ProjectStatusActive, ProjectStatus("").Normalize())
		assert.Equal(t, EntryKindNote, EntryKind("hologram").Normalize())
		assert.Equal(t, DirectionIOwe, CommitmentDirection("").Normalize())
		assert.Equal(t, CommitmentOpen, CommitmentStatus("paused").Normalize())
		assert.Equal(t, PeriodWeek, PeriodType("year").Normalize())
	})

	t.Run("Legacy entry kind survives normalization", func(t *testing.T) {
		assert.Equal(t, EntryKindDailyLog, EntryKindDailyLog.Normalize())
		assert.True(t, EntryKindDailyLog.IsLegacy())
		assert.False(t, EntryKindNote.IsLegacy())
	})
}

func TestJSONColumns(t *testing.T) {
	t.Run("QAList round trip", func(t *testing.T) {
		in := QAList{{Question: "What went well?", Answer: "Shipped the review"}}
		v, err := in.Value()
		assert.NoError(t, err)

		var out QAList
		assert.NoError(t, out.Scan(v))
		assert.Equal(t, in, out)
	})

	t.Run("StringList round trip from string column", func(t *testing.T) {
		var out StringList
		assert.NoError(t, out.Scan(`["q1","q2"]`))
		assert.Equal(t, StringList{"q1", "q2"}, out)
	})

	t.Run("Nil and empty scan to zero value", func(t *testing.T) {
		var qa QAList
		assert.NoError(t, qa.Scan(nil))
		assert.Nil(t, qa)

		var stats StatsBlob
		assert.NoError(t, stats.Scan([]byte{}))
		assert.Nil(t, stats)
	})

	t.Run("Nil values store as NULL", func(t *testing.T) {
		var l QAList
		v, err := l.Value()
		assert.NoError(t, err)
		assert.Nil(t, v)
	})
}

func TestKindOrder(t *testing.T) {
	// Referenced kinds must precede referencing kinds.
	pos := map[EntityKind]int{}
	for i, k := range KindOrder {
		pos[k] = i
	}
	assert.Less(t, pos[KindProject], pos[KindEntry])
	assert.Less(t, pos[KindPerson], pos[KindEntry])
	assert.Less(t, pos[KindEntry], pos[KindCommitment])
	assert.Less(t, pos[KindEntry], pos[KindReflection])
}
