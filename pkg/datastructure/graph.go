package datastructure

// TravelTimeUnavailable marks an edge weight that cannot be traversed with the
// selected travel mode. Source data uses "X" for these segments.
const TravelTimeUnavailable float64 = -1

type TravelMode int

const (
	ModeDriving TravelMode = iota
	ModeWalking
)

func (m TravelMode) String() string {
	if m == ModeWalking {
		return "walking"
	}
	return "driving"
}

// EdgePair is one directed adjacency entry. Every undirected connection is
// stored as two EdgePairs carrying the same weights.
type EdgePair struct {
	ToNodeID    int32
	DrivingTime float64
	WalkingTime float64
}

func NewEdgePair(toNodeID int32, drivingTime, walkingTime float64) EdgePair {
	return EdgePair{
		ToNodeID:    toNodeID,
		DrivingTime: drivingTime,
		WalkingTime: walkingTime,
	}
}

// Time returns the weight of the edge for the given travel mode.
func (e EdgePair) Time(mode TravelMode) float64 {
	if mode == ModeWalking {
		return e.WalkingTime
	}
	return e.DrivingTime
}

// Location is one place on the map. Identity inside the engine is the Code;
// the numeric ID only exists for callers outside the engine.
type Location struct {
	ID         int32
	Code       string
	Name       string
	HasParking bool
}

func NewLocation(id int32, code, name string, hasParking bool) Location {
	return Location{
		ID:         id,
		Code:       code,
		Name:       name,
		HasParking: hasParking,
	}
}

// Graph stores the location graph. Codes are resolved once to dense int32
// handles so searches index slices instead of hashing strings. Mutation only
// happens during construction, queries after that are read-only.
type Graph struct {
	nodeIDs       map[string]int32
	nodeCodes     []string
	firstOutEdges [][]EdgePair
}

func NewGraph() *Graph {
	return &Graph{
		nodeIDs:       make(map[string]int32),
		nodeCodes:     make([]string, 0),
		firstOutEdges: make([][]EdgePair, 0),
	}
}

func (g *Graph) resolve(code string) int32 {
	if id, ok := g.nodeIDs[code]; ok {
		return id
	}
	id := int32(len(g.nodeCodes))
	g.nodeIDs[code] = id
	g.nodeCodes = append(g.nodeCodes, code)
	g.firstOutEdges = append(g.firstOutEdges, nil)
	return id
}

// AddEdge inserts the undirected connection between from and to, creating
// either node if it was never seen before. Both directions carry the same
// weight pair.
func (g *Graph) AddEdge(from, to string, drivingTime, walkingTime float64) {
	fromID := g.resolve(from)
	toID := g.resolve(to)
	g.firstOutEdges[fromID] = append(g.firstOutEdges[fromID], NewEdgePair(toID, drivingTime, walkingTime))
	g.firstOutEdges[toID] = append(g.firstOutEdges[toID], NewEdgePair(fromID, drivingTime, walkingTime))
}

// GetNodeID resolves a location code to its handle.
func (g *Graph) GetNodeID(code string) (int32, bool) {
	id, ok := g.nodeIDs[code]
	return id, ok
}

func (g *Graph) GetNodeCode(nodeID int32) string {
	if nodeID < 0 || int(nodeID) >= len(g.nodeCodes) {
		return ""
	}
	return g.nodeCodes[nodeID]
}

func (g *Graph) GetNodeOutEdges(nodeID int32) []EdgePair {
	if nodeID < 0 || int(nodeID) >= len(g.firstOutEdges) {
		return nil
	}
	return g.firstOutEdges[nodeID]
}

// Neighbors returns the adjacency of a code, empty for unknown codes.
func (g *Graph) Neighbors(code string) []EdgePair {
	id, ok := g.nodeIDs[code]
	if !ok {
		return nil
	}
	return g.firstOutEdges[id]
}

// GetEdgeBetween returns the first adjacency entry from one handle to
// another, false when the nodes are not connected.
func (g *Graph) GetEdgeBetween(fromID, toID int32) (EdgePair, bool) {
	for _, edge := range g.GetNodeOutEdges(fromID) {
		if edge.ToNodeID == toID {
			return edge, true
		}
	}
	return EdgePair{}, false
}

func (g *Graph) GetNumNodes() int {
	return len(g.nodeCodes)
}
