package craft

// Connection identifies a registered handler.
type Connection uint64

type slot[F any] struct {
	id Connection
	fn F
}

type slotList[F any] []slot[F]

// emit calls the handlers in registration order over a snapshot, so a
// handler may disconnect itself.
func (l slotList[F]) emit(call func(F)) {
	for _, s := range append(slotList[F](nil), l...) {
		call(s.fn)
	}
}

func (l *slotList[F]) remove(id Connection) bool {
	for i, s := range *l {
		if s.id == id {
			*l = append((*l)[:i], (*l)[i+1:]...)
			return true
		}
	}
	return false
}

type signals struct {
	next       Connection
	started    slotList[func(*Craft)]
	checkpoint slotList[func(*Craft, int)]
	finishLine slotList[func(*Craft)]
	finished   slotList[func(*Craft)]
}

func (s *signals) id() Connection {
	s.next++
	return s.next
}

// OnStarted registers fn for the craft's first simulated tick.
func (c *Craft) OnStarted(fn func(*Craft)) Connection {
	id := c.signals.id()
	c.signals.started = append(c.signals.started, slot[func(*Craft)]{id, fn})
	return id
}

// OnCheckpoint registers fn for every checkpoint crossed in order. The
// finish line is checkpoint 0.
func (c *Craft) OnCheckpoint(fn func(*Craft, int)) Connection {
	id := c.signals.id()
	c.signals.checkpoint = append(c.signals.checkpoint, slot[func(*Craft, int)]{id, fn})
	return id
}

// OnFinishLine registers fn for every completed lap.
func (c *Craft) OnFinishLine(fn func(*Craft)) Connection {
	id := c.signals.id()
	c.signals.finishLine = append(c.signals.finishLine, slot[func(*Craft)]{id, fn})
	return id
}

// OnFinished registers fn for the end of the craft's race.
func (c *Craft) OnFinished(fn func(*Craft)) Connection {
	id := c.signals.id()
	c.signals.finished = append(c.signals.finished, slot[func(*Craft)]{id, fn})
	return id
}

// Disconnect removes a handler. It reports whether id was registered.
func (c *Craft) Disconnect(id Connection) bool {
	return c.signals.started.remove(id) ||
		c.signals.checkpoint.remove(id) ||
		c.signals.finishLine.remove(id) ||
		c.signals.finished.remove(id)
}

func (c *Craft) emitCheckpoint(n int) {
	c.signals.checkpoint.emit(func(fn func(*Craft, int)) { fn(c, n) })
}

func (c *Craft) emit(l slotList[func(*Craft)]) {
	l.emit(func(fn func(*Craft)) { fn(c) })
}
