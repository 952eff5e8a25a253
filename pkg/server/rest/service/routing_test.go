package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ecomove/routeplanner/pkg/datastructure"
	"github.com/ecomove/routeplanner/pkg/directory"
	"github.com/ecomove/routeplanner/pkg/routingengine"
	"github.com/ecomove/routeplanner/pkg/server"
)

func newTestService() *RoutingService {
	g := datastructure.NewGraph()
	g.AddEdge("A", "B", 10, 20)
	g.AddEdge("B", "D", 10, 20)
	g.AddEdge("A", "C", 5, datastructure.TravelTimeUnavailable)
	g.AddEdge("C", "D", 5, 15)

	dir := directory.NewInMemory([]datastructure.Location{
		datastructure.NewLocation(1, "A", "Alpha Square", false),
		datastructure.NewLocation(2, "B", "Boulevard", false),
		datastructure.NewLocation(3, "C", "Garage Corner", true),
		datastructure.NewLocation(4, "D", "Docklands", false),
	})

	rt := routingengine.NewRouteAlgorithm(g)
	return NewRoutingService(rt, routingengine.NewEcoRouteFinder(rt), dir)
}

func TestFastestRouteTranslatesIDs(t *testing.T) {
	svc := newTestService()

	route, err := svc.FastestRoute(context.Background(), 1, 4)
	assert.NoError(t, err)
	assert.Equal(t, []int32{1, 3, 4}, route.LocationIDs)
	assert.Equal(t, 10.0, route.TravelTime)
}

func TestFastestRouteUnknownLocation(t *testing.T) {
	svc := newTestService()

	_, err := svc.FastestRoute(context.Background(), 1, 99)
	assert.Error(t, err)

	var svcErr *server.Error
	assert.ErrorAs(t, err, &svcErr)
	assert.Equal(t, server.ErrNotFound, svcErr.Code())
}

func TestAlternativeRouteDisjoint(t *testing.T) {
	svc := newTestService()

	main, alt, err := svc.AlternativeRoute(context.Background(), 1, 4)
	assert.NoError(t, err)
	assert.Equal(t, []int32{1, 3, 4}, main.LocationIDs)
	assert.NotNil(t, alt)
	assert.Equal(t, []int32{1, 2, 4}, alt.LocationIDs)
	assert.Equal(t, 20.0, alt.TravelTime)
}

func TestRestrictedRouteAvoidsNodes(t *testing.T) {
	svc := newTestService()

	route, err := svc.RestrictedRoute(context.Background(), 1, 4, -1, []int32{3}, nil)
	assert.NoError(t, err)
	assert.Equal(t, []int32{1, 2, 4}, route.LocationIDs)
}

func TestRestrictedRouteNoWayLeft(t *testing.T) {
	svc := newTestService()

	_, err := svc.RestrictedRoute(context.Background(), 1, 4, -1, nil,
		[][2]int32{{1, 3}, {2, 4}})
	assert.Error(t, err)

	var svcErr *server.Error
	assert.ErrorAs(t, err, &svcErr)
	assert.Equal(t, server.ErrNotFound, svcErr.Code())
}

func TestRestrictedRouteUnknownAvoidIDIgnored(t *testing.T) {
	svc := newTestService()

	route, err := svc.RestrictedRoute(context.Background(), 1, 4, -1, []int32{99}, nil)
	assert.NoError(t, err)
	assert.Equal(t, []int32{1, 3, 4}, route.LocationIDs)
}

func TestTravelTimeByMode(t *testing.T) {
	svc := newTestService()

	driving, err := svc.TravelTime(context.Background(), []int32{1, 3, 4}, datastructure.ModeDriving)
	assert.NoError(t, err)
	assert.Equal(t, 10.0, driving)

	// A-C has no walking weight, the aggregate is invalid.
	walking, err := svc.TravelTime(context.Background(), []int32{1, 3, 4}, datastructure.ModeWalking)
	assert.NoError(t, err)
	assert.Equal(t, routingengine.TravelTimeInvalid, walking)
}

func TestTravelTimeUnknownLocation(t *testing.T) {
	svc := newTestService()

	_, err := svc.TravelTime(context.Background(), []int32{1, 99}, datastructure.ModeDriving)
	assert.Error(t, err)

	var svcErr *server.Error
	assert.ErrorAs(t, err, &svcErr)
	assert.Equal(t, server.ErrBadParamInput, svcErr.Code())
}

func TestEcoRoute(t *testing.T) {
	svc := newTestService()

	eco, err := svc.EcoRoute(context.Background(), 1, 4, 15, nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, []int32{1, 3}, eco.DrivingRoute.LocationIDs)
	assert.Equal(t, int32(3), eco.ParkingNodeID)
	assert.Equal(t, []int32{3, 4}, eco.WalkingRoute.LocationIDs)
	assert.Equal(t, 20.0, eco.TotalTime)
}

func TestEcoRouteOverBudget(t *testing.T) {
	svc := newTestService()

	_, err := svc.EcoRoute(context.Background(), 1, 4, 5, nil, nil)
	assert.Error(t, err)
	assert.ErrorIs(t, err, routingengine.ErrNoViableEcoRoute)

	var svcErr *server.Error
	assert.ErrorAs(t, err, &svcErr)
	assert.Equal(t, server.ErrNotFound, svcErr.Code())
}
