package routingengine

import (
	"math"

	"github.com/ecomove/routeplanner/pkg/datastructure"
	"github.com/ecomove/routeplanner/pkg/util"
)

type RouteAlgorithm struct {
	g Graph
}

func NewRouteAlgorithm(g Graph) *RouteAlgorithm {
	return &RouteAlgorithm{g: g}
}

// Restrictions are the exclusion constraints of one query. AvoidSegments are
// undirected, (A,B) bans (B,A) as well. IncludeNode, when set, is a mandatory
// waypoint for RestrictedRoute.
type Restrictions struct {
	AvoidNodes    []string
	AvoidSegments [][2]string
	IncludeNode   string
}

type avoidSet struct {
	nodes    []bool
	segments map[int64]struct{}
}

// buildAvoidSet resolves the restriction codes to handles. The endpoints of
// the query are always stripped from the avoided nodes: a route may depart
// from or arrive at an avoided location, it just cannot pass through one.
func (rt *RouteAlgorithm) buildAvoidSet(rs Restrictions, from, to int32) avoidSet {
	nodes := make([]bool, rt.g.GetNumNodes())
	for _, code := range rs.AvoidNodes {
		if id, ok := rt.g.GetNodeID(code); ok {
			nodes[id] = true
		}
	}
	nodes[from] = false
	nodes[to] = false

	segments := make(map[int64]struct{}, len(rs.AvoidSegments))
	for _, seg := range rs.AvoidSegments {
		aID, okA := rt.g.GetNodeID(seg[0])
		bID, okB := rt.g.GetNodeID(seg[1])
		if okA && okB {
			segments[util.PackNodePair(aID, bID)] = struct{}{}
		}
	}
	return avoidSet{nodes: nodes, segments: segments}
}

// dijkstra runs the constrained single-source search over node handles and
// returns the handle path, nil when the destination is unreachable. The
// frontier orders equal distances by node handle, so the chosen path among
// equal-cost shortest paths is deterministic. The search drains the whole
// frontier instead of early-stopping at the destination.
func (rt *RouteAlgorithm) dijkstra(from, to int32, mode datastructure.TravelMode, avoid avoidSet) []int32 {
	if from == to {
		return []int32{from}
	}

	numNodes := rt.g.GetNumNodes()
	dist := make([]float64, numNodes)
	cameFrom := make([]int32, numNodes)
	visited := make([]bool, numNodes)
	for i := 0; i < numNodes; i++ {
		dist[i] = math.Inf(1)
		cameFrom[i] = -1
	}

	pq := datastructure.NewMinHeap[int32]()
	dist[from] = 0
	pq.Insert(datastructure.NewPriorityQueueNode(0, from))

	for pq.Size() > 0 {
		current, err := pq.ExtractMin()
		if err != nil {
			break
		}
		u := current.Item
		if visited[u] {
			continue
		}
		visited[u] = true

		for _, edge := range rt.g.GetNodeOutEdges(u) {
			weight := edge.Time(mode)
			if weight == datastructure.TravelTimeUnavailable {
				continue
			}
			v := edge.ToNodeID
			if visited[v] || avoid.nodes[v] {
				continue
			}
			if _, banned := avoid.segments[util.PackNodePair(u, v)]; banned {
				continue
			}

			newCost := dist[u] + weight
			if newCost < dist[v] {
				notQueued := math.IsInf(dist[v], 1)
				dist[v] = newCost
				cameFrom[v] = u

				neighborNode := datastructure.NewPriorityQueueNode(newCost, v)
				if notQueued {
					pq.Insert(neighborNode)
				} else {
					pq.DecreaseKey(neighborNode)
				}
			}
		}
	}

	if cameFrom[to] == -1 {
		return nil
	}

	path := make([]int32, 0)
	for at := to; at != from; at = cameFrom[at] {
		path = append(path, at)
	}
	path = append(path, from)
	return util.ReverseG(path)
}

func (rt *RouteAlgorithm) handlesToCodes(path []int32) []string {
	if len(path) == 0 {
		return nil
	}
	codes := make([]string, len(path))
	for i, id := range path {
		codes[i] = rt.g.GetNodeCode(id)
	}
	return codes
}
