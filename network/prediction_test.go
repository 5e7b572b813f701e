package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automoto/hoverrace-mp/shared/craft"
	"github.com/automoto/hoverrace-mp/shared/messages"
	"github.com/automoto/hoverrace-mp/shared/shape"
)

func TestPredictionBufferStoreAndGet(t *testing.T) {
	var pb PredictionBuffer
	in := messages.NewCraftInput(5, craft.MotorOn)
	pb.Store(in, 16, shape.Coordinate{X: 100, Y: 200})

	rec, ok := pb.Get(5)
	require.True(t, ok)
	assert.Equal(t, in, rec.Input)
	assert.Equal(t, int32(16), rec.Duration)
	assert.Equal(t, shape.Coordinate{X: 100, Y: 200}, rec.Predicted)
	assert.Equal(t, uint32(6), pb.NextSeq())

	_, ok = pb.Get(4)
	assert.False(t, ok)
}

func TestPredictionBufferOverwrite(t *testing.T) {
	var pb PredictionBuffer
	pb.Store(messages.NewCraftInput(1, 0), 16, shape.Coordinate{X: 1})
	pb.Store(messages.NewCraftInput(1+predictionBufferSize, 0), 16, shape.Coordinate{X: 2})

	_, ok := pb.Get(1)
	assert.False(t, ok, "slot reused by a newer input")
	rec, ok := pb.Get(1 + predictionBufferSize)
	require.True(t, ok)
	assert.Equal(t, int32(2), rec.Predicted.X)
}

func TestPredictionBufferUnacknowledged(t *testing.T) {
	var pb PredictionBuffer
	for seq := uint32(1); seq <= 5; seq++ {
		pb.Store(messages.NewCraftInput(seq, 0), 20, shape.Coordinate{X: int32(seq)})
	}

	recs := pb.GetUnacknowledged(2)
	require.Len(t, recs, 3)
	for i, rec := range recs {
		assert.Equal(t, uint32(3+i), rec.Input.Sequence)
	}
	assert.Empty(t, pb.GetUnacknowledged(5))
}

func TestPredictionBufferUpdate(t *testing.T) {
	var pb PredictionBuffer
	pb.Store(messages.NewCraftInput(3, 0), 20, shape.Coordinate{X: 10})

	pb.Update(3, shape.Coordinate{X: 40})
	rec, _ := pb.Get(3)
	assert.Equal(t, int32(40), rec.Predicted.X)

	pb.Update(3+predictionBufferSize, shape.Coordinate{X: 99})
	rec, _ = pb.Get(3)
	assert.Equal(t, int32(40), rec.Predicted.X, "stale sequence left alone")
}

func TestPredictionError(t *testing.T) {
	var pb PredictionBuffer
	pb.Store(messages.NewCraftInput(1, 0), 20, shape.Coordinate{X: 0, Y: 0, Z: 0})

	assert.InDelta(t, 5.0, pb.PredictionError(1, shape.Coordinate{X: 3, Y: 4}), 1e-9)
	assert.InDelta(t, 13.0, pb.PredictionError(1, shape.Coordinate{X: 12, Z: 5}), 1e-9)
	assert.Zero(t, pb.PredictionError(9, shape.Coordinate{X: 1000}), "unknown sequence")
}
