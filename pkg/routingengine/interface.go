package routingengine

import "github.com/ecomove/routeplanner/pkg/datastructure"

type Graph interface {
	GetNodeID(code string) (int32, bool)
	GetNodeCode(nodeID int32) string
	GetNodeOutEdges(nodeID int32) []datastructure.EdgePair
	GetEdgeBetween(fromID, toID int32) (datastructure.EdgePair, bool)
	GetNumNodes() int
}
