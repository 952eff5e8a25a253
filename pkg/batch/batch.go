package batch

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ecomove/routeplanner/pkg/datastructure"
	"github.com/ecomove/routeplanner/pkg/routingengine"
)

type LocationDirectory interface {
	GetCodeByID(id int32) (string, error)
	GetIDByCode(code string) (int32, error)
	ParkingNodes() ([]string, error)
}

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

// Processor runs one batch query file and writes the result file. The file
// format speaks numeric location ids; codes stay inside the engine.
type Processor struct {
	rt  RoutePlanner
	eco EcoRouteFinder
	dir LocationDirectory
}

func NewProcessor(rt RoutePlanner, eco EcoRouteFinder, dir LocationDirectory) *Processor {
	return &Processor{rt: rt, eco: eco, dir: dir}
}

type query struct {
	mode            string
	sourceID        int32
	destID          int32
	includeID       int32
	maxWalkTime     float64
	avoidNodeIDs    []int32
	avoidSegmentIDs [][2]int32
}

func parseQuery(r io.Reader) (query, error) {
	q := query{sourceID: -1, destID: -1, includeID: -1, maxWalkTime: -1}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		switch {
		case strings.HasPrefix(line, "Mode:"):
			q.mode = strings.TrimSpace(line[len("Mode:"):])
		case strings.HasPrefix(line, "Source:"):
			id, err := strconv.Atoi(strings.TrimSpace(line[len("Source:"):]))
			if err != nil {
				return q, fmt.Errorf("bad source line %q: %w", line, err)
			}
			q.sourceID = int32(id)
		case strings.HasPrefix(line, "Destination:"):
			id, err := strconv.Atoi(strings.TrimSpace(line[len("Destination:"):]))
			if err != nil {
				return q, fmt.Errorf("bad destination line %q: %w", line, err)
			}
			q.destID = int32(id)
		case strings.HasPrefix(line, "IncludeNode:"):
			field := strings.TrimSpace(line[len("IncludeNode:"):])
			if field == "" {
				continue
			}
			id, err := strconv.Atoi(field)
			if err != nil {
				return q, fmt.Errorf("bad include-node line %q: %w", line, err)
			}
			q.includeID = int32(id)
		case strings.HasPrefix(line, "MaxWalkTime:"):
			field := strings.TrimSpace(line[len("MaxWalkTime:"):])
			if field == "" {
				continue
			}
			walk, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return q, fmt.Errorf("bad max-walk-time line %q: %w", line, err)
			}
			q.maxWalkTime = walk
		case strings.HasPrefix(line, "AvoidNodes:"):
			for _, field := range strings.Split(line[len("AvoidNodes:"):], ",") {
				field = strings.TrimSpace(field)
				if field == "" {
					continue
				}
				id, err := strconv.Atoi(field)
				if err != nil {
					return q, fmt.Errorf("bad avoid-nodes line %q: %w", line, err)
				}
				q.avoidNodeIDs = append(q.avoidNodeIDs, int32(id))
			}
		case strings.HasPrefix(line, "AvoidSegments:"):
			segments, err := parseSegmentPairs(line[len("AvoidSegments:"):])
			if err != nil {
				return q, fmt.Errorf("bad avoid-segments line %q: %w", line, err)
			}
			q.avoidSegmentIDs = append(q.avoidSegmentIDs, segments...)
		}
	}
	return q, scanner.Err()
}

// parseSegmentPairs reads the "(id1,id2),(id3,id4)" segment list.
func parseSegmentPairs(s string) ([][2]int32, error) {
	pairs := make([][2]int32, 0)
	for _, chunk := range strings.Split(s, ")") {
		open := strings.Index(chunk, "(")
		if open < 0 {
			continue
		}
		fields := strings.Split(chunk[open+1:], ",")
		if len(fields) != 2 {
			return nil, fmt.Errorf("segment %q is not a pair", chunk)
		}
		a, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil {
			return nil, err
		}
		b, err := strconv.Atoi(strings.TrimSpace(fields[1]))
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, [2]int32{int32(a), int32(b)})
	}
	return pairs, nil
}

// codeForID translates an id, empty for unknown ids so the query resolves to
// "none" instead of failing the whole batch.
func (p *Processor) codeForID(id int32) string {
	code, err := p.dir.GetCodeByID(id)
	if err != nil {
		return ""
	}
	return code
}

func (p *Processor) restrictions(q query) routingengine.Restrictions {
	rs := routingengine.Restrictions{}
	for _, id := range q.avoidNodeIDs {
		if code := p.codeForID(id); code != "" {
			rs.AvoidNodes = append(rs.AvoidNodes, code)
		}
	}
	for _, seg := range q.avoidSegmentIDs {
		a := p.codeForID(seg[0])
		b := p.codeForID(seg[1])
		if a != "" && b != "" {
			rs.AvoidSegments = append(rs.AvoidSegments, [2]string{a, b})
		}
	}
	if q.includeID >= 0 {
		rs.IncludeNode = p.codeForID(q.includeID)
	}
	return rs
}

func formatTime(t float64) string {
	return strconv.FormatFloat(t, 'f', -1, 64)
}

// formatRoute renders "id,id,...(time)" or "none" for the empty path.
func (p *Processor) formatRoute(path []string, time float64) string {
	if len(path) == 0 {
		return "none"
	}
	ids := make([]string, len(path))
	for i, code := range path {
		id, err := p.dir.GetIDByCode(code)
		if err != nil {
			return "none"
		}
		ids[i] = strconv.Itoa(int(id))
	}
	return strings.Join(ids, ",") + "(" + formatTime(time) + ")"
}

// ProcessFile reads one query from inputPath and writes the result to
// outputPath.
func (p *Processor) ProcessFile(inputPath, outputPath string) error {
	in, err := os.Open(inputPath)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer out.Close()

	q, err := parseQuery(in)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(out)
	p.writeResult(w, q)
	if err := w.Flush(); err != nil {
		return err
	}
	return nil
}

func (p *Processor) writeResult(w *bufio.Writer, q query) {
	fmt.Fprintf(w, "Source:%d\nDestination:%d\n", q.sourceID, q.destID)

	source := p.codeForID(q.sourceID)
	dest := p.codeForID(q.destID)
	rs := p.restrictions(q)

	switch q.mode {
	case "driving":
		main := p.rt.FastestRoute(source, dest)
		alt := p.rt.AlternativeRoute(source, dest, main)
		fmt.Fprintf(w, "BestDrivingRoute:%s\n", p.formatRoute(main, p.rt.TravelTime(main, datastructure.ModeDriving)))
		fmt.Fprintf(w, "AlternativeDrivingRoute:%s\n", p.formatRoute(alt, p.rt.TravelTime(alt, datastructure.ModeDriving)))

	case "driving-restricted":
		path := p.rt.RestrictedRoute(source, dest, rs)
		fmt.Fprintf(w, "RestrictedDrivingRoute:%s\n", p.formatRoute(path, p.rt.TravelTime(path, datastructure.ModeDriving)))

	case "driving-walking":
		parking, err := p.dir.ParkingNodes()
		if err != nil {
			parking = nil
		}
		route, err := p.eco.FindEcoRoute(source, dest, q.maxWalkTime, rs, parking)
		if err != nil {
			fmt.Fprintf(w, "DrivingRoute:none\nParkingNode:none\nWalkingRoute:none\nTotalTime:\n")
			fmt.Fprintf(w, "Message:%s\n", err.Error())
			return
		}
		parkingID, _ := p.dir.GetIDByCode(route.ParkingNode)
		fmt.Fprintf(w, "DrivingRoute:%s\n", p.formatRoute(route.DrivePath, route.DriveTime))
		fmt.Fprintf(w, "ParkingNode:%d\n", parkingID)
		fmt.Fprintf(w, "WalkingRoute:%s\n", p.formatRoute(route.WalkPath, route.WalkTime))
		fmt.Fprintf(w, "TotalTime:%s\n", formatTime(route.TotalTime()))
	}
}
