package engine

// Search stats for a single worker - purely instrumentation, never consulted
// by the search itself.
type SearchStatsT struct {
	Nodes       uint64 // #nodes visited
	NonLeafs    uint64 // #non-leaf nodes
	Mates       uint64 // #true terminal nodes
	TTHits      uint64 // #TT probes that matched the position
	TTCuts      uint64 // #TT hits that cut the node off entirely
	BetaCuts    uint64 // #nodes with a beta cut-off
	AllChildren uint64 // #nodes where all children were explored
}

func (stats *SearchStatsT) add(other *SearchStatsT) {
	stats.Nodes += other.Nodes
	stats.NonLeafs += other.NonLeafs
	stats.Mates += other.Mates
	stats.TTHits += other.TTHits
	stats.TTCuts += other.TTCuts
	stats.BetaCuts += other.BetaCuts
	stats.AllChildren += other.AllChildren
}
