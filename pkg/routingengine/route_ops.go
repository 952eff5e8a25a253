package routingengine

import "github.com/ecomove/routeplanner/pkg/datastructure"

// TravelTimeInvalid is the aggregate reported for a path containing a missing
// or mode-unavailable segment. Distinct from the legitimate 0 of a
// single-node path.
const TravelTimeInvalid float64 = -1

// RestrictedPath is the constrained search every route operation is built
// on: minimum total time between two codes for one travel mode, honoring the
// avoided nodes and segments. An empty result means no route exists; a
// source equal to the destination yields the single-element path.
func (rt *RouteAlgorithm) RestrictedPath(source, dest string, mode datastructure.TravelMode, rs Restrictions) []string {
	fromID, okFrom := rt.g.GetNodeID(source)
	toID, okTo := rt.g.GetNodeID(dest)
	if !okFrom || !okTo {
		return nil
	}
	avoid := rt.buildAvoidSet(rs, fromID, toID)
	return rt.handlesToCodes(rt.dijkstra(fromID, toID, mode, avoid))
}

// FastestRoute is the unconstrained driving route.
func (rt *RouteAlgorithm) FastestRoute(source, dest string) []string {
	return rt.RestrictedPath(source, dest, datastructure.ModeDriving, Restrictions{})
}

// AlternativeRoute finds a driving route sharing no intermediate node and no
// segment with mainPath. With fewer than two nodes in mainPath there is
// nothing to avoid and no alternative, the result is empty.
func (rt *RouteAlgorithm) AlternativeRoute(source, dest string, mainPath []string) []string {
	if len(mainPath) < 2 {
		return nil
	}

	rs := Restrictions{
		AvoidNodes:    make([]string, 0, len(mainPath)),
		AvoidSegments: make([][2]string, 0, len(mainPath)-1),
	}
	for _, code := range mainPath[1 : len(mainPath)-1] {
		rs.AvoidNodes = append(rs.AvoidNodes, code)
	}
	for i := 0; i+1 < len(mainPath); i++ {
		rs.AvoidSegments = append(rs.AvoidSegments, [2]string{mainPath[i], mainPath[i+1]})
	}
	return rt.RestrictedPath(source, dest, datastructure.ModeDriving, rs)
}

// RestrictedRoute is the driving route under caller restrictions. When
// rs.IncludeNode is set the route is computed as two independent legs around
// the waypoint; if either leg fails the whole route is empty, never a
// partial path. The waypoint appears exactly once at the seam.
func (rt *RouteAlgorithm) RestrictedRoute(source, dest string, rs Restrictions) []string {
	if rs.IncludeNode == "" {
		return rt.RestrictedPath(source, dest, datastructure.ModeDriving, rs)
	}

	legOne := rt.RestrictedPath(source, rs.IncludeNode, datastructure.ModeDriving, rs)
	legTwo := rt.RestrictedPath(rs.IncludeNode, dest, datastructure.ModeDriving, rs)
	if len(legOne) == 0 || len(legTwo) == 0 {
		return nil
	}

	path := make([]string, 0, len(legOne)+len(legTwo)-1)
	path = append(path, legOne[:len(legOne)-1]...)
	path = append(path, legTwo...)
	return path
}

// TravelTime sums the selected weight over the consecutive pairs of path.
// Fewer than two nodes cost 0. A pair with no edge, or with the selected
// weight unavailable, makes the whole aggregate TravelTimeInvalid.
func (rt *RouteAlgorithm) TravelTime(path []string, mode datastructure.TravelMode) float64 {
	if len(path) < 2 {
		return 0
	}

	total := 0.0
	for i := 0; i+1 < len(path); i++ {
		uID, okU := rt.g.GetNodeID(path[i])
		vID, okV := rt.g.GetNodeID(path[i+1])
		if !okU || !okV {
			return TravelTimeInvalid
		}
		edge, ok := rt.g.GetEdgeBetween(uID, vID)
		if !ok {
			return TravelTimeInvalid
		}
		weight := edge.Time(mode)
		if weight == datastructure.TravelTimeUnavailable {
			return TravelTimeInvalid
		}
		total += weight
	}
	return total
}
