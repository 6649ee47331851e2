package converter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gacha_roller/internal/api/dto/event"
	"gacha_roller/internal/model"
)

func TestToActiveEventDefaults(t *testing.T) {
	now := time.Now().UTC()

	// Запись без опциональных полей получает значения по умолчанию
	ev := ToActiveEvent(event.Record{
		ID:          3,
		EventName:   "mystery boost",
		CreatedFrom: "bob",
		StartsAt:    now,
		EndsAt:      now.Add(time.Minute),
	})

	assert.Equal(t, model.UnknownSuffix, ev.SuffixName)
	assert.Equal(t, model.DefaultSuffixBoost, ev.SuffixBoost)
	assert.Equal(t, 1.0, ev.LuckMult)
	assert.Equal(t, 1.0, ev.MoneyMult)
	assert.Equal(t, 1.0, ev.RollTime)
}

func TestEventRecordRoundTrip(t *testing.T) {
	now := time.Now().UTC()
	src := model.ActiveEvent{
		ID:          42,
		Name:        "of Greed boost",
		SuffixName:  "of Greed",
		SuffixBoost: 20,
		LuckMult:    1.5,
		MoneyMult:   2.0,
		RollTime:    0.5,
		StartsAt:    now,
		EndsAt:      now.Add(time.Minute),
		CreatedFrom: "alice",
	}

	got := ToActiveEvent(ToEventRecord(src))
	assert.Equal(t, src, got)
}

func TestDraftToEvent(t *testing.T) {
	now := time.Now().UTC()
	ev := DraftToEvent(model.EventDraft{
		Name:       "of Greed boost",
		SuffixName: "of Greed",
		Duration:   model.DefaultEventDuration,
	}, "alice", now)

	assert.Equal(t, now, ev.StartsAt)
	assert.Equal(t, now.Add(model.DefaultEventDuration), ev.EndsAt)
	assert.Equal(t, "alice", ev.CreatedFrom)
	assert.Equal(t, model.DefaultSuffixBoost, ev.SuffixBoost)
	assert.Equal(t, 1.0, ev.MoneyMult)
}
