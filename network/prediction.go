package network

import (
	"math"

	"github.com/automoto/hoverrace-mp/shared/messages"
	"github.com/automoto/hoverrace-mp/shared/shape"
)

const predictionBufferSize = 128

// InputRecord stores an input, the time it was simulated for and the
// predicted position after applying it.
type InputRecord struct {
	Input     messages.CraftInput
	Duration  int32
	Predicted shape.Coordinate
}

// PredictionBuffer is a ring buffer that stores recent inputs and their
// predicted outcomes for server reconciliation.
type PredictionBuffer struct {
	history [predictionBufferSize]InputRecord
	nextSeq uint32
}

// Store saves an input and the resulting predicted position.
func (pb *PredictionBuffer) Store(input messages.CraftInput, duration int32, predicted shape.Coordinate) {
	idx := input.Sequence % predictionBufferSize
	pb.history[idx] = InputRecord{
		Input:     input,
		Duration:  duration,
		Predicted: predicted,
	}
	pb.nextSeq = input.Sequence + 1
}

// Get retrieves a stored record by sequence number. Returns false if not found
// or if the slot has been overwritten.
func (pb *PredictionBuffer) Get(seq uint32) (InputRecord, bool) {
	idx := seq % predictionBufferSize
	record := pb.history[idx]
	if record.Input.Sequence != seq {
		return InputRecord{}, false
	}
	return record, true
}

// Update replaces the predicted position of a stored record after a replay.
func (pb *PredictionBuffer) Update(seq uint32, predicted shape.Coordinate) {
	idx := seq % predictionBufferSize
	if pb.history[idx].Input.Sequence == seq {
		pb.history[idx].Predicted = predicted
	}
}

// NextSeq returns the next expected sequence number.
func (pb *PredictionBuffer) NextSeq() uint32 {
	return pb.nextSeq
}

// GetUnacknowledged returns all stored inputs with sequence numbers greater
// than lastAcked and less than nextSeq, oldest first.
func (pb *PredictionBuffer) GetUnacknowledged(lastAcked uint32) []InputRecord {
	var results []InputRecord
	for seq := lastAcked + 1; seq < pb.nextSeq; seq++ {
		if record, ok := pb.Get(seq); ok {
			results = append(results, record)
		}
	}
	return results
}

// PredictionError calculates the distance between the predicted and the
// server position for a given sequence, or 0 when it is no longer stored.
func (pb *PredictionBuffer) PredictionError(seq uint32, server shape.Coordinate) float64 {
	record, ok := pb.Get(seq)
	if !ok {
		return 0
	}
	dx := float64(record.Predicted.X - server.X)
	dy := float64(record.Predicted.Y - server.Y)
	dz := float64(record.Predicted.Z - server.Z)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
