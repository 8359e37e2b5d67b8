package parameter

// Propagation - bounded BFS over the neighbor graph
const (
	// PropagationBatchSize is the cells processed per event per resumption before yielding
	PropagationBatchSize = 200

	// ElectrifyTopOffEpsilon is how far (seconds) a charged cell's timer must decay below full
	// before a new propagation event re-enqueues it
	ElectrifyTopOffEpsilon = 0.05
)
