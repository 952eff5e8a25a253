package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ecomove/routeplanner/pkg/datastructure"
	"github.com/stretchr/testify/assert"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	err := os.WriteFile(path, []byte(content), 0644)
	assert.NoError(t, err)
	return path
}

func TestParseLocations(t *testing.T) {
	path := writeTempFile(t, "Locations.csv",
		"Location,Id,Code,Parking\n"+
			"Main Square,1,MSQ,0\n"+
			"Central Garage,2, CG ,1\n")

	locations, err := ParseLocations(path)
	assert.NoError(t, err)
	assert.Len(t, locations, 2)

	assert.Equal(t, datastructure.NewLocation(1, "MSQ", "Main Square", false), locations[0])
	assert.Equal(t, int32(2), locations[1].ID)
	assert.Equal(t, "CG", locations[1].Code, "codes are whitespace-cleaned")
	assert.True(t, locations[1].HasParking)
}

func TestParseLocationsBadID(t *testing.T) {
	path := writeTempFile(t, "Locations.csv",
		"Location,Id,Code,Parking\nBroken,xx,BRK,0\n")

	_, err := ParseLocations(path)
	assert.Error(t, err)
}

func TestParseDistances(t *testing.T) {
	path := writeTempFile(t, "Distances.csv",
		"Location1,Location2,Driving,Walking\n"+
			"MSQ,CG,10,25\n"+
			"CG,PRK,X,5\n")

	edges, err := ParseDistances(path)
	assert.NoError(t, err)
	assert.Len(t, edges, 2)

	assert.Equal(t, EdgeRecord{From: "MSQ", To: "CG", DrivingTime: 10, WalkingTime: 25}, edges[0])
	assert.Equal(t, datastructure.TravelTimeUnavailable, edges[1].DrivingTime)
	assert.Equal(t, 5.0, edges[1].WalkingTime)
}

func TestBuildGraph(t *testing.T) {
	edges := []EdgeRecord{
		{From: "A", To: "B", DrivingTime: 4, WalkingTime: 9},
		{From: "B", To: "C", DrivingTime: datastructure.TravelTimeUnavailable, WalkingTime: 7},
	}

	g := BuildGraph(edges)
	assert.Equal(t, 3, g.GetNumNodes())

	aID, _ := g.GetNodeID("A")
	bID, _ := g.GetNodeID("B")
	edge, ok := g.GetEdgeBetween(bID, aID)
	assert.True(t, ok)
	assert.Equal(t, 4.0, edge.DrivingTime)
}

func TestCleanCode(t *testing.T) {
	assert.Equal(t, "ABC", CleanCode(" A B C \r"))
}
