package osmparser

type NodeType int

const (
	END_NODE NodeType = iota
	BETWEEN_NODE
	JUNCTION_NODE
)

const (
	// suffix of the segment id emitted for the backward direction of a two way road
	REVERSE_SUFFIX = ":rev"

	PROGRESS_LOG_INTERVAL = 50000
)
