package network

import (
	"fmt"
	"slices"
	"time"

	"github.com/automoto/hoverrace-mp/components"
	"github.com/automoto/hoverrace-mp/config"
	"github.com/automoto/hoverrace-mp/shared/craft"
	"github.com/automoto/hoverrace-mp/shared/gamemath"
	"github.com/automoto/hoverrace-mp/shared/level"
	"github.com/automoto/hoverrace-mp/shared/leveldata"
	"github.com/automoto/hoverrace-mp/shared/logging"
	"github.com/automoto/hoverrace-mp/shared/messages"
	"github.com/automoto/hoverrace-mp/shared/netcomponents"
	"github.com/automoto/hoverrace-mp/shared/netconfig"
	"github.com/automoto/hoverrace-mp/shared/shape"
	"github.com/automoto/hoverrace-mp/systems"
	"github.com/automoto/hoverrace-mp/systems/factory"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"
)

// reconcileThreshold is the prediction error, in distance units, above
// which the local craft is snapped to the server state.
const reconcileThreshold = 64.0

// noProjectiles keeps the predicted craft from launching missiles; the
// server's missiles arrive in snapshots.
type noProjectiles struct{}

func (noProjectiles) NewMissile(int, shape.Coordinate, gamemath.Angle) level.Element { return nil }

// ReplicaOptions configures a Replica.
type ReplicaOptions struct {
	// Renderer returns the view of a craft, or nil for none.
	Renderer func(hoverID int) craft.Renderer
	Log      *zap.Logger
}

type missileView struct {
	from, to netcomponents.NetMissileData
	t        float64
}

type entityState struct {
	id   esync.NetworkId
	data []any
}

// Replica mirrors the server's race. Remote crafts are slaves driven by
// their net state; the local craft is a master predicted from the pilot's
// inputs and reconciled with the server.
type Replica struct {
	world    donburi.World
	log      *zap.Logger
	join     JoinInfo
	renderer func(hoverID int) craft.Renderer

	crafts   map[int]donburi.Entity // by hover id
	netIDs   map[esync.NetworkId]int
	missiles map[esync.NetworkId]*missileView
	present  map[esync.NetworkId]bool
	results  []netcomponents.NetResult

	buffer      PredictionBuffer
	probe       *craft.Craft
	seq         uint32
	corrections int
}

// NewReplica builds an empty copy of the race the client joined.
func NewReplica(track *leveldata.Track, join JoinInfo, opts ReplicaOptions) (*Replica, error) {
	if track.Name != join.Track {
		return nil, fmt.Errorf("replica: server races on %q, not %q", join.Track, track.Name)
	}
	w := donburi.NewWorld()
	raceOpts := factory.RaceOptions{Options: config.GameOptions(join.Options)}
	if _, err := factory.CreateRace(w, track, raceOpts); err != nil {
		return nil, fmt.Errorf("replica: %w", err)
	}
	probe, err := craft.New(0, raceOpts.Options, craft.AsSlave())
	if err != nil {
		return nil, fmt.Errorf("replica: %w", err)
	}
	if join.TickRate <= 0 {
		join.TickRate = 60
	}

	return &Replica{
		world:    w,
		log:      logging.Component(opts.Log, "replica"),
		join:     join,
		renderer: opts.Renderer,
		crafts:   make(map[int]donburi.Entity),
		netIDs:   make(map[esync.NetworkId]int),
		missiles: make(map[esync.NetworkId]*missileView),
		present:  make(map[esync.NetworkId]bool),
		probe:    probe,
	}, nil
}

// Apply brings the replica up to a server snapshot.
func (r *Replica) Apply(snapshot esync.WorldSnapshot) error {
	states := make([]entityState, 0, len(snapshot))
	for _, ent := range snapshot {
		var data []any
		for _, componentBytes := range ent.State {
			instance, err := esync.Mapper.Deserialize(componentBytes)
			if err != nil {
				continue
			}
			data = append(data, instance)
		}
		states = append(states, entityState{id: ent.Id, data: data})
	}
	return r.apply(states)
}

func (r *Replica) apply(states []entityState) error {
	clear(r.present)

	for _, st := range states {
		r.present[st.id] = true

		var nc *netcomponents.NetCraftData
		var np *netcomponents.NetPilotData
		for _, data := range st.data {
			switch v := data.(type) {
			case netcomponents.NetCraftData:
				nc = &v
			case netcomponents.NetPilotData:
				np = &v
			case netcomponents.NetMissileData:
				r.applyMissile(st.id, v)
			case netcomponents.NetPermElementData:
				r.applyPerm(v)
			case netcomponents.NetRaceData:
				r.applyRace(v)
			}
		}
		if nc != nil {
			if err := r.applyCraft(st.id, *nc, np); err != nil {
				return err
			}
		}
	}

	for id, hover := range r.netIDs {
		if !r.present[id] {
			r.removeCraft(id, hover)
		}
	}
	for id := range r.missiles {
		if !r.present[id] {
			delete(r.missiles, id)
		}
	}
	return nil
}

func (r *Replica) applyCraft(id esync.NetworkId, nc netcomponents.NetCraftData, np *netcomponents.NetPilotData) error {
	local := nc.HoverID == r.join.HoverID
	entity, ok := r.crafts[nc.HoverID]
	if !ok || !r.world.Valid(entity) {
		opts := []craft.Option{craft.AsSlave()}
		if local {
			opts = []craft.Option{craft.WithProjectiles(noProjectiles{})}
		}
		if r.renderer != nil {
			if view := r.renderer(nc.HoverID); view != nil {
				opts = append(opts, craft.WithRenderer(view))
			}
		}
		entry, err := factory.CreateCraft(r.world, factory.CraftSpec{Slot: nc.Slot, HoverID: nc.HoverID, Options: opts})
		if err != nil {
			return fmt.Errorf("replica craft %d: %w", nc.HoverID, err)
		}
		entity = entry.Entity()
		r.crafts[nc.HoverID] = entity
		r.netIDs[id] = nc.HoverID
		r.log.Debug("Craft appeared", zap.Int("hoverId", nc.HoverID), zap.Int("slot", nc.Slot), zap.Bool("local", local))
	}

	entry := r.world.Entry(entity)
	components.Lap.Get(entry).Laps = nc.Laps
	if np != nil {
		components.Pilot.Get(entry).Name = np.Name
	}

	c := components.Craft.Get(entry).Craft
	if local {
		return r.reconcile(c, nc)
	}
	if err := c.SetNetState(nc.State[:]); err != nil {
		return err
	}
	r.maze().MoveElement(c, c.Room())
	return nil
}

// reconcile checks the prediction made for the last input the server
// applied. Past the threshold the craft takes the server state and the
// inputs the server has not seen yet are replayed on top of it.
func (r *Replica) reconcile(c *craft.Craft, nc netcomponents.NetCraftData) error {
	m := r.maze()
	if nc.LastSequence == 0 || r.buffer.NextSeq() == 0 {
		if err := c.SetNetState(nc.State[:]); err != nil {
			return err
		}
		m.MoveElement(c, c.Room())
		return nil
	}

	if err := r.probe.SetNetState(nc.State[:]); err != nil {
		return err
	}
	if r.buffer.PredictionError(nc.LastSequence, r.probe.Position()) <= reconcileThreshold {
		return nil
	}

	r.corrections++
	if err := c.SetNetState(nc.State[:]); err != nil {
		return err
	}
	room := c.Room()
	for _, rec := range r.buffer.GetUnacknowledged(nc.LastSequence) {
		c.SetControls(rec.Input.Controls)
		var err error
		if room, err = c.Simulate(rec.Duration, m, room); err != nil {
			return err
		}
		r.buffer.Update(rec.Input.Sequence, c.Position())
	}
	m.MoveElement(c, room)
	r.log.Debug("Prediction corrected", zap.Uint32("ack", nc.LastSequence))
	return nil
}

func (r *Replica) removeCraft(id esync.NetworkId, hover int) {
	delete(r.netIDs, id)
	entity := r.crafts[hover]
	delete(r.crafts, hover)
	if !r.world.Valid(entity) {
		return
	}
	if err := factory.RemoveCraft(r.world, r.world.Entry(entity)); err != nil {
		r.log.Warn("Failed to remove craft", zap.Int("hoverId", hover), zap.Error(err))
	}
}

func (r *Replica) applyMissile(id esync.NetworkId, v netcomponents.NetMissileData) {
	view, ok := r.missiles[id]
	if !ok {
		r.missiles[id] = &missileView{from: v, to: v, t: 1}
		return
	}
	view.from = *netcomponents.LerpNetMissile(view.from, view.to, view.t)
	view.to = v
	view.t = 0
}

func (r *Replica) applyPerm(v netcomponents.NetPermElementData) {
	pos := shape.Coordinate{X: int32(v.X), Y: int32(v.Y), Z: int32(v.Z)}
	r.maze().SetPermElementPos(v.ID, v.Room, pos)
}

func (r *Replica) applyRace(v netcomponents.NetRaceData) {
	race := r.race()
	race.SetState(v.State)
	race.Clock = v.Clock
	race.Laps = v.Laps
	r.results = v.Results
}

// Update predicts one frame of d ms with the pilot's controls and returns
// the input to send to the server.
func (r *Replica) Update(d int32, controls craft.Control) (messages.CraftInput, error) {
	r.seq++
	in := messages.NewCraftInput(r.seq, controls)
	in.Timestamp = time.Now().UnixMilli()

	entry, local := r.localEntry()
	if local {
		components.Input.Get(entry).Controls = controls
	}
	if err := systems.Step(r.world, d); err != nil {
		return in, err
	}
	// Server events are authoritative.
	r.race().DrainEvents()

	step := float64(d) * float64(r.join.TickRate) / 1000
	for _, view := range r.missiles {
		view.t = min(view.t+step, 1)
	}

	if local {
		c := components.Craft.Get(entry).Craft
		r.buffer.Store(in, r.race().Step, c.Position())
	}
	return in, nil
}

// PlaySounds plays the crafts as heard from the local one.
func (r *Replica) PlaySounds() {
	systems.PlaySounds(r.world, r.join.Slot)
}

// Missiles returns the interpolated missiles in network order.
func (r *Replica) Missiles() []netcomponents.NetMissileData {
	ids := make([]esync.NetworkId, 0, len(r.missiles))
	for id := range r.missiles {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]netcomponents.NetMissileData, 0, len(ids))
	for _, id := range ids {
		view := r.missiles[id]
		out = append(out, *netcomponents.LerpNetMissile(view.from, view.to, view.t))
	}
	return out
}

// LocalCraft returns the predicted craft once the server has sent it.
func (r *Replica) LocalCraft() (*craft.Craft, bool) {
	entry, ok := r.localEntry()
	if !ok {
		return nil, false
	}
	return components.Craft.Get(entry).Craft, true
}

// Craft returns the craft with the given hover id.
func (r *Replica) Craft(hoverID int) (*craft.Craft, bool) {
	entity, ok := r.crafts[hoverID]
	if !ok || !r.world.Valid(entity) {
		return nil, false
	}
	return components.Craft.Get(r.world.Entry(entity)).Craft, true
}

// State is the race state of the last snapshot.
func (r *Replica) State() netconfig.RaceStateID { return r.race().State }

func (r *Replica) World() donburi.World               { return r.world }
func (r *Replica) Results() []netcomponents.NetResult { return r.results }
func (r *Replica) Corrections() int                   { return r.corrections }

func (r *Replica) localEntry() (*donburi.Entry, bool) {
	entity, ok := r.crafts[r.join.HoverID]
	if !ok || !r.world.Valid(entity) {
		return nil, false
	}
	return r.world.Entry(entity), true
}

func (r *Replica) race() *components.RaceData {
	return components.Race.Get(components.Race.MustFirst(r.world))
}

func (r *Replica) maze() *level.Maze {
	return components.Level.Get(components.Level.MustFirst(r.world)).Maze
}
