package routingengine

import (
	"errors"

	"github.com/ecomove/routeplanner/pkg/datastructure"
)

var (
	// ErrNoParkingNodes: the map has no parking-capable locations at all.
	ErrNoParkingNodes = errors.New("no parking nodes available")
	// ErrNoViableEcoRoute: parking candidates existed but none produced a
	// feasible drive+walk combination within the walking budget.
	ErrNoViableEcoRoute = errors.New("no viable eco route found")
)

type RouteSearcher interface {
	RestrictedPath(source, dest string, mode datastructure.TravelMode, rs Restrictions) []string
	TravelTime(path []string, mode datastructure.TravelMode) float64
}

// EcoRouteFinder picks a drive-then-walk route: drive to a parking-capable
// location, walk the rest within the walking-time budget.
type EcoRouteFinder struct {
	rt RouteSearcher
}

func NewEcoRouteFinder(rt RouteSearcher) *EcoRouteFinder {
	return &EcoRouteFinder{rt: rt}
}

type EcoRoute struct {
	DrivePath   []string
	ParkingNode string
	WalkPath    []string
	DriveTime   float64
	WalkTime    float64
}

func (r EcoRoute) TotalTime() float64 {
	return r.DriveTime + r.WalkTime
}

// FindEcoRoute tries every parking candidate as the transfer point: a
// restricted driving leg to it, a restricted walking leg from it. Candidates
// whose walk leg exceeds maxWalkTime are discarded. The winner minimizes
// total time; on an exact tie the larger walk time wins (drive less at equal
// cost), and remaining ties keep the earliest candidate, so the choice is
// deterministic for a fixed candidate order.
func (ef *EcoRouteFinder) FindEcoRoute(source, dest string, maxWalkTime float64,
	rs Restrictions, parkingNodes []string) (EcoRoute, error) {
	if len(parkingNodes) == 0 {
		return EcoRoute{}, ErrNoParkingNodes
	}

	avoided := make(map[string]struct{}, len(rs.AvoidNodes))
	for _, code := range rs.AvoidNodes {
		avoided[code] = struct{}{}
	}

	best := EcoRoute{}
	found := false
	for _, park := range parkingNodes {
		if _, skip := avoided[park]; skip {
			continue
		}

		drivePath := ef.rt.RestrictedPath(source, park, datastructure.ModeDriving, rs)
		walkPath := ef.rt.RestrictedPath(park, dest, datastructure.ModeWalking, rs)
		if len(drivePath) == 0 || len(walkPath) == 0 {
			continue
		}

		driveTime := ef.rt.TravelTime(drivePath, datastructure.ModeDriving)
		walkTime := ef.rt.TravelTime(walkPath, datastructure.ModeWalking)
		if driveTime == TravelTimeInvalid || walkTime == TravelTimeInvalid {
			continue
		}
		if walkTime > maxWalkTime {
			continue
		}

		candidate := EcoRoute{
			DrivePath:   drivePath,
			ParkingNode: park,
			WalkPath:    walkPath,
			DriveTime:   driveTime,
			WalkTime:    walkTime,
		}
		if !found || betterEcoRoute(candidate, best) {
			best = candidate
			found = true
		}
	}

	if !found {
		return EcoRoute{}, ErrNoViableEcoRoute
	}
	return best, nil
}

func betterEcoRoute(a, b EcoRoute) bool {
	if a.TotalTime() != b.TotalTime() {
		return a.TotalTime() < b.TotalTime()
	}
	return a.WalkTime > b.WalkTime
}
