package systems

import (
	"encoding/json"
	"fmt"

	"github.com/automoto/hoverrace-mp/components"
	"github.com/quasilyte/gdata"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"
)

// TrackRecord is the best lap ever driven on a track.
type TrackRecord struct {
	Pilot   string `json:"pilot"`
	HoverID int    `json:"hoverId"`
	Model   int    `json:"model"`
	BestLap int32  `json:"bestLap"` // ms
	Session string `json:"session"`
}

// itemStore is the part of gdata.Manager records use.
type itemStore interface {
	LoadItem(itemKey string) ([]byte, error)
	SaveItem(itemKey string, data []byte) error
}

// Records keeps the lap records of every track on disk.
type Records struct {
	store itemStore
	log   *zap.Logger
}

// OpenRecords opens the records of app in the user's data directory.
func OpenRecords(app string, log *zap.Logger) (*Records, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: app,
	})
	if err != nil {
		return nil, fmt.Errorf("open records: %w", err)
	}
	return newRecords(m, log), nil
}

func newRecords(store itemStore, log *zap.Logger) *Records {
	if log == nil {
		log = zap.NewNop()
	}
	return &Records{store: store, log: log}
}

func recordKey(track string) string {
	return "record_" + track
}

// Best returns the record of track, or nil if nobody completed a lap there.
func (r *Records) Best(track string) (*TrackRecord, error) {
	data, err := r.store.LoadItem(recordKey(track))
	if err != nil {
		return nil, fmt.Errorf("load record %s: %w", track, err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var rec TrackRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse record %s: %w", track, err)
	}
	return &rec, nil
}

// Submit saves the best lap of the race if it beats the track record, and
// returns the new record.
func (r *Records) Submit(w donburi.World, session string) (*TrackRecord, error) {
	lvl, ok := components.Level.First(w)
	if !ok {
		return nil, nil
	}
	track := components.Level.Get(lvl).Track.Name

	var best *TrackRecord
	for _, e := range craftEntries(w) {
		c := components.Craft.Get(e).Craft
		lap := c.BestLapDuration()
		if lap <= 0 || (best != nil && lap >= best.BestLap) {
			continue
		}
		best = &TrackRecord{
			Pilot:   components.Pilot.Get(e).Name,
			HoverID: c.HoverID(),
			Model:   c.Model(),
			BestLap: lap,
			Session: session,
		}
	}
	if best == nil {
		return nil, nil
	}

	old, err := r.Best(track)
	if err != nil {
		r.log.Warn("Ignoring unreadable record", zap.String("track", track), zap.Error(err))
	}
	if old != nil && old.BestLap <= best.BestLap {
		return nil, nil
	}

	data, err := json.Marshal(best)
	if err != nil {
		return nil, fmt.Errorf("serialize record %s: %w", track, err)
	}
	if err := r.store.SaveItem(recordKey(track), data); err != nil {
		return nil, fmt.Errorf("save record %s: %w", track, err)
	}
	r.log.Info("New lap record",
		zap.String("track", track),
		zap.String("pilot", best.Pilot),
		zap.Int32("bestLap", best.BestLap),
	)
	return best, nil
}
