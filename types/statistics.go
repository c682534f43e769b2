package types

import (
	"go.uber.org/atomic"
)

type StatisticsItem struct {
	Count uint64 `json:",omitempty"`
	Bytes uint64 `json:",omitempty"`
}

// FrameStatistics is a snapshot of FrameCounters.
type FrameStatistics struct {
	Received  StatisticsItem
	Processed StatisticsItem
	Failed    StatisticsItem
	Generated StatisticsItem
}

type CountersItem struct {
	Count atomic.Uint64
	Bytes atomic.Uint64
}

func (c *CountersItem) Increment(msgSize uint64) {
	c.Count.Inc()
	c.Bytes.Add(msgSize)
}

func (c *CountersItem) ToStats() StatisticsItem {
	return StatisticsItem{
		Count: c.Count.Load(),
		Bytes: c.Bytes.Load(),
	}
}

// FrameCounters counts frames going through a transform. Received and
// Processed/Failed count input bytes; Generated counts output bytes.
type FrameCounters struct {
	Received  CountersItem
	Processed CountersItem
	Failed    CountersItem
	Generated CountersItem
}

func (c *FrameCounters) ToStats() FrameStatistics {
	return FrameStatistics{
		Received:  c.Received.ToStats(),
		Processed: c.Processed.ToStats(),
		Failed:    c.Failed.ToStats(),
		Generated: c.Generated.ToStats(),
	}
}
