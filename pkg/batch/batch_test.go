package batch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ecomove/routeplanner/pkg/datastructure"
	"github.com/ecomove/routeplanner/pkg/directory"
	"github.com/ecomove/routeplanner/pkg/routingengine"
)

func newTestProcessor() *Processor {
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
	return NewProcessor(rt, routingengine.NewEcoRouteFinder(rt), dir)
}

func runBatch(t *testing.T, input string) string {
	t.Helper()
	dir := t.TempDir()
	inPath := filepath.Join(dir, "input.txt")
	outPath := filepath.Join(dir, "output.txt")
	assert.NoError(t, os.WriteFile(inPath, []byte(input), 0644))

	assert.NoError(t, newTestProcessor().ProcessFile(inPath, outPath))

	out, err := os.ReadFile(outPath)
	assert.NoError(t, err)
	return string(out)
}

func TestProcessFileDriving(t *testing.T) {
	out := runBatch(t, "Mode:driving\nSource:1\nDestination:4\n")

	assert.Equal(t,
		"Source:1\nDestination:4\n"+
			"BestDrivingRoute:1,3,4(10)\n"+
			"AlternativeDrivingRoute:1,2,4(20)\n",
		out)
}

func TestProcessFileDrivingNoRoute(t *testing.T) {
	out := runBatch(t, "Mode:driving\nSource:1\nDestination:99\n")

	assert.Contains(t, out, "BestDrivingRoute:none\n")
	assert.Contains(t, out, "AlternativeDrivingRoute:none\n")
}

func TestProcessFileRestricted(t *testing.T) {
	out := runBatch(t,
		"Mode:driving-restricted\nSource:1\nDestination:4\nAvoidNodes:3\n")

	assert.Equal(t,
		"Source:1\nDestination:4\n"+
			"RestrictedDrivingRoute:1,2,4(20)\n",
		out)
}

func TestProcessFileRestrictedAvoidSegments(t *testing.T) {
	out := runBatch(t,
		"Mode:driving-restricted\nSource:1\nDestination:4\nAvoidSegments:(1,3),(2,4)\n")

	assert.Contains(t, out, "RestrictedDrivingRoute:none\n")
}

func TestProcessFileRestrictedWithIncludeNode(t *testing.T) {
	out := runBatch(t,
		"Mode:driving-restricted\nSource:1\nDestination:4\nIncludeNode:2\n")

	assert.Equal(t,
		"Source:1\nDestination:4\n"+
			"RestrictedDrivingRoute:1,2,4(20)\n",
		out)
}

func TestProcessFileEcoRoute(t *testing.T) {
	out := runBatch(t,
		"Mode:driving-walking\nSource:1\nDestination:4\nMaxWalkTime:15\n")

	assert.Equal(t,
		"Source:1\nDestination:4\n"+
			"DrivingRoute:1,3(5)\n"+
			"ParkingNode:3\n"+
			"WalkingRoute:3,4(15)\n"+
			"TotalTime:20\n",
		out)
}

func TestProcessFileEcoRouteOverBudget(t *testing.T) {
	out := runBatch(t,
		"Mode:driving-walking\nSource:1\nDestination:4\nMaxWalkTime:5\n")

	assert.Contains(t, out, "DrivingRoute:none\n")
	assert.Contains(t, out, "Message:no viable eco route found\n")
}

func TestParseQuerySegmentsAndNodes(t *testing.T) {
	in := strings.NewReader(
		"Mode:driving-restricted\nSource:1\nDestination:4\n" +
			"AvoidNodes:2,3\nAvoidSegments:(1,2),(3,4)\nMaxWalkTime:\nIncludeNode:\n")

	q, err := parseQuery(in)
	assert.NoError(t, err)
	assert.Equal(t, "driving-restricted", q.mode)
	assert.Equal(t, []int32{2, 3}, q.avoidNodeIDs)
	assert.Equal(t, [][2]int32{{1, 2}, {3, 4}}, q.avoidSegmentIDs)
	assert.Equal(t, int32(-1), q.includeID)
	assert.Equal(t, -1.0, q.maxWalkTime)
}
