package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/automoto/hoverrace-mp/systems/factory"
)

type memStore map[string][]byte

func (m memStore) LoadItem(key string) ([]byte, error) { return m[key], nil }

func (m memStore) SaveItem(key string, data []byte) error {
	m[key] = data
	return nil
}

func TestRecords(t *testing.T) {
	store := memStore{}
	records := newRecords(store, zaptest.NewLogger(t))

	best, err := records.Best("strip")
	require.NoError(t, err)
	assert.Nil(t, best, "no laps yet")

	w := newRace(t, factory.RaceOptions{Laps: 1})
	_, c := addCraft(t, w, 0)
	require.NoError(t, factory.StartCountdown(w))
	for _, x := range []int32{21000, 41000, 61000} {
		teleport(c, x)
		step(t, w, 10)
	}

	rec, err := records.Submit(w, "s1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, TrackRecord{Pilot: "pilot", HoverID: 10, Model: c.Model(), BestLap: 30, Session: "s1"}, *rec)

	best, err = records.Best("strip")
	require.NoError(t, err)
	assert.Equal(t, rec, best)

	rec, err = records.Submit(w, "s2")
	require.NoError(t, err)
	assert.Nil(t, rec, "an equal lap is no record")
}

func TestRecordsNeedALap(t *testing.T) {
	w := newRace(t, factory.RaceOptions{})
	addCraft(t, w, 0)

	rec, err := newRecords(memStore{}, nil).Submit(w, "s")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestUnreadableRecordIsReplaced(t *testing.T) {
	store := memStore{"record_strip": []byte("{")}
	records := newRecords(store, nil)

	_, err := records.Best("strip")
	assert.Error(t, err)

	w := newRace(t, factory.RaceOptions{Laps: 1})
	_, c := addCraft(t, w, 0)
	require.NoError(t, factory.StartCountdown(w))
	for _, x := range []int32{21000, 41000, 61000} {
		teleport(c, x)
		step(t, w, 10)
	}
	rec, err := records.Submit(w, "s")
	require.NoError(t, err)
	assert.NotNil(t, rec)
}
