package service

import (
	"context"
	"errors"

	"github.com/ecomove/routeplanner/pkg/datastructure"
	"github.com/ecomove/routeplanner/pkg/routingengine"
	"github.com/ecomove/routeplanner/pkg/server"
)

type RoutePlanner interface {
	FastestRoute(source, dest string) []string
	AlternativeRoute(source, dest string, mainPath []string) []string
	RestrictedRoute(source, dest string, rs routingengine.Restrictions) []string
	TravelTime(path []string, mode datastructure.TravelMode) float64
}

type EcoRouteFinder interface {
	FindEcoRoute(source, dest string, maxWalkTime float64, rs routingengine.Restrictions,
		parkingNodes []string) (routingengine.EcoRoute, error)
}

type LocationDirectory interface {
	GetByCode(code string) (datastructure.Location, error)
	GetCodeByID(id int32) (string, error)
	GetIDByCode(code string) (int32, error)
	ParkingNodes() ([]string, error)
}

// RoutingService translates numeric location ids at the API boundary to the
// engine's codes and back, and maps domain outcomes to transport errors.
type RoutingService struct {
	rt  RoutePlanner
	eco EcoRouteFinder
	dir LocationDirectory
}

func NewRoutingService(rt RoutePlanner, eco EcoRouteFinder, dir LocationDirectory) *RoutingService {
	return &RoutingService{rt: rt, eco: eco, dir: dir}
}

type Route struct {
	LocationIDs []int32
	TravelTime  float64
}

type EcoRouteResult struct {
	DrivingRoute  Route
	ParkingNodeID int32
	WalkingRoute  Route
	TotalTime     float64
}

func (s *RoutingService) codeForID(id int32) (string, error) {
	code, err := s.dir.GetCodeByID(id)
	if err != nil {
		return "", server.WrapErrorf(err, server.ErrNotFound, "location %d is not on the map", id)
	}
	return code, nil
}

func (s *RoutingService) pathToIDs(path []string) ([]int32, error) {
	ids := make([]int32, len(path))
	for i, code := range path {
		id, err := s.dir.GetIDByCode(code)
		if err != nil {
			return nil, server.WrapErrorf(err, server.ErrInternalServerError, "location code %s has no id", code)
		}
		ids[i] = id
	}
	return ids, nil
}

// restrictions translates the avoided ids, silently dropping unknown ones:
// an avoided location that does not exist restricts nothing.
func (s *RoutingService) restrictions(avoidNodeIDs []int32, avoidSegmentIDs [][2]int32, includeID int32) (routingengine.Restrictions, error) {
	rs := routingengine.Restrictions{}
	for _, id := range avoidNodeIDs {
		if code, err := s.dir.GetCodeByID(id); err == nil {
			rs.AvoidNodes = append(rs.AvoidNodes, code)
		}
	}
	for _, seg := range avoidSegmentIDs {
		a, errA := s.dir.GetCodeByID(seg[0])
		b, errB := s.dir.GetCodeByID(seg[1])
		if errA == nil && errB == nil {
			rs.AvoidSegments = append(rs.AvoidSegments, [2]string{a, b})
		}
	}
	if includeID >= 0 {
		code, err := s.codeForID(includeID)
		if err != nil {
			return rs, err
		}
		rs.IncludeNode = code
	}
	return rs, nil
}

func (s *RoutingService) route(path []string, mode datastructure.TravelMode) (Route, error) {
	ids, err := s.pathToIDs(path)
	if err != nil {
		return Route{}, err
	}
	return Route{LocationIDs: ids, TravelTime: s.rt.TravelTime(path, mode)}, nil
}

func (s *RoutingService) FastestRoute(ctx context.Context, sourceID, destID int32) (Route, error) {
	source, err := s.codeForID(sourceID)
	if err != nil {
		return Route{}, err
	}
	dest, err := s.codeForID(destID)
	if err != nil {
		return Route{}, err
	}

	path := s.rt.FastestRoute(source, dest)
	if len(path) == 0 {
		return Route{}, server.NewErrorf(server.ErrNotFound, "no route between %d and %d", sourceID, destID)
	}
	return s.route(path, datastructure.ModeDriving)
}

// AlternativeRoute returns the fastest route and, when one exists, a route
// disjoint from it. A missing alternative is not an error.
func (s *RoutingService) AlternativeRoute(ctx context.Context, sourceID, destID int32) (Route, *Route, error) {
	source, err := s.codeForID(sourceID)
	if err != nil {
		return Route{}, nil, err
	}
	dest, err := s.codeForID(destID)
	if err != nil {
		return Route{}, nil, err
	}

	mainPath := s.rt.FastestRoute(source, dest)
	if len(mainPath) == 0 {
		return Route{}, nil, server.NewErrorf(server.ErrNotFound, "no route between %d and %d", sourceID, destID)
	}
	main, err := s.route(mainPath, datastructure.ModeDriving)
	if err != nil {
		return Route{}, nil, err
	}

	altPath := s.rt.AlternativeRoute(source, dest, mainPath)
	if len(altPath) == 0 {
		return main, nil, nil
	}
	alt, err := s.route(altPath, datastructure.ModeDriving)
	if err != nil {
		return Route{}, nil, err
	}
	return main, &alt, nil
}

func (s *RoutingService) RestrictedRoute(ctx context.Context, sourceID, destID, includeID int32,
	avoidNodeIDs []int32, avoidSegmentIDs [][2]int32) (Route, error) {
	source, err := s.codeForID(sourceID)
	if err != nil {
		return Route{}, err
	}
	dest, err := s.codeForID(destID)
	if err != nil {
		return Route{}, err
	}
	rs, err := s.restrictions(avoidNodeIDs, avoidSegmentIDs, includeID)
	if err != nil {
		return Route{}, err
	}

	path := s.rt.RestrictedRoute(source, dest, rs)
	if len(path) == 0 {
		return Route{}, server.NewErrorf(server.ErrNotFound, "no route between %d and %d under the given restrictions", sourceID, destID)
	}
	return s.route(path, datastructure.ModeDriving)
}

// TravelTime aggregates the selected mode's weight over an explicit path of
// location ids. Paths touching an unknown location are a bad request, not a
// missing resource: the caller supplied the path.
func (s *RoutingService) TravelTime(ctx context.Context, locationIDs []int32, mode datastructure.TravelMode) (float64, error) {
	path := make([]string, len(locationIDs))
	for i, id := range locationIDs {
		code, err := s.dir.GetCodeByID(id)
		if err != nil {
			return 0, server.WrapErrorf(err, server.ErrBadParamInput, "location %d is not on the map", id)
		}
		path[i] = code
	}
	return s.rt.TravelTime(path, mode), nil
}

func (s *RoutingService) EcoRoute(ctx context.Context, sourceID, destID int32, maxWalkTime float64,
	avoidNodeIDs []int32, avoidSegmentIDs [][2]int32) (EcoRouteResult, error) {
	source, err := s.codeForID(sourceID)
	if err != nil {
		return EcoRouteResult{}, err
	}
	dest, err := s.codeForID(destID)
	if err != nil {
		return EcoRouteResult{}, err
	}
	rs, err := s.restrictions(avoidNodeIDs, avoidSegmentIDs, -1)
	if err != nil {
		return EcoRouteResult{}, err
	}

	parking, err := s.dir.ParkingNodes()
	if err != nil {
		return EcoRouteResult{}, server.WrapErrorf(err, server.ErrInternalServerError, "loading parking nodes")
	}

	eco, err := s.eco.FindEcoRoute(source, dest, maxWalkTime, rs, parking)
	if err != nil {
		if errors.Is(err, routingengine.ErrNoParkingNodes) || errors.Is(err, routingengine.ErrNoViableEcoRoute) {
			return EcoRouteResult{}, server.WrapErrorf(err, server.ErrNotFound, "no eco route between %d and %d", sourceID, destID)
		}
		return EcoRouteResult{}, server.WrapErrorf(err, server.ErrInternalServerError, "eco route search")
	}

	drive, err := s.route(eco.DrivePath, datastructure.ModeDriving)
	if err != nil {
		return EcoRouteResult{}, err
	}
	walk, err := s.route(eco.WalkPath, datastructure.ModeWalking)
	if err != nil {
		return EcoRouteResult{}, err
	}
	parkingID, err := s.dir.GetIDByCode(eco.ParkingNode)
	if err != nil {
		return EcoRouteResult{}, server.WrapErrorf(err, server.ErrInternalServerError, "parking node %s has no id", eco.ParkingNode)
	}

	return EcoRouteResult{
		DrivingRoute:  drive,
		ParkingNodeID: parkingID,
		WalkingRoute:  walk,
		TotalTime:     eco.TotalTime(),
	}, nil
}
