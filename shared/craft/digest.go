package craft

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/automoto/hoverrace-mp/shared/ringbuf"
)

// Digest hashes everything that drives the craft's future simulation. Two
// crafts fed the same inputs from the same start have the same digest,
// which is how replays and replicas detect a desync.
func (c *Craft) Digest() uint64 {
	h := xxhash.New()
	ns := c.NetState()
	_, _ = h.Write(ns[:])

	buf := make([]byte, 0, 128)
	for _, f := range []float64{c.xSpeed, c.ySpeed, c.zSpeed, c.fuel} {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(f))
	}
	for _, v := range []int32{
		int32(c.cabin), c.missileRefill, c.powerUpLeft, c.outOfControl,
		c.lastLapCompletion, c.bestLapDuration, int32(c.weapon),
	} {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(v))
	}

	var flags byte
	for i, set := range []bool{c.check1, c.check2, c.started, c.finished, c.fireDone} {
		if set {
			flags |= 1 << i
		}
	}
	buf = append(buf, flags)

	for _, r := range []*ringbuf.Ring[int]{c.mines, c.powerUps, c.lastHits} {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(r.Len()))
		r.Each(func(v int) {
			buf = binary.LittleEndian.AppendUint32(buf, uint32(v))
		})
	}
	_, _ = h.Write(buf)
	return h.Sum64()
}
