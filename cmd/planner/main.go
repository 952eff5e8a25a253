package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/ecomove/routeplanner/pkg/batch"
	"github.com/ecomove/routeplanner/pkg/datastructure"
	"github.com/ecomove/routeplanner/pkg/directory"
	"github.com/ecomove/routeplanner/pkg/parser"
	"github.com/ecomove/routeplanner/pkg/routingengine"
)

var (
	locationsFile = flag.String("locations", "Locations.csv", "locations csv file")
	distancesFile = flag.String("distances", "Distances.csv", "distances csv file")
	batchInput    = flag.String("batchin", "input.txt", "batch mode query file")
	batchOutput   = flag.String("batchout", "output.txt", "batch mode result file")
)

// planner is the terminal front end: numeric location ids in, route listings
// out, one query per menu round.
type planner struct {
	rt     *routingengine.RouteAlgorithm
	eco    *routingengine.EcoRouteFinder
	dir    *directory.InMemory
	proc   *batch.Processor
	reader *bufio.Reader
}

func main() {
	flag.Parse()

	locations, err := parser.ParseLocations(*locationsFile)
	if err != nil {
		log.Fatal(err)
	}
	edges, err := parser.ParseDistances(*distancesFile)
	if err != nil {
		log.Fatal(err)
	}
	g := parser.BuildGraph(edges)

	dir := directory.NewInMemory(locations)
	rt := routingengine.NewRouteAlgorithm(g)
	eco := routingengine.NewEcoRouteFinder(rt)

	p := &planner{
		rt:     rt,
		eco:    eco,
		dir:    dir,
		proc:   batch.NewProcessor(rt, eco, dir),
		reader: bufio.NewReader(os.Stdin),
	}
	p.run()
}

func (p *planner) run() {
	for {
		fmt.Println()
		fmt.Println("1. Fastest route")
		fmt.Println("2. Fastest + alternative route")
		fmt.Println("3. Restricted route")
		fmt.Println("4. Eco route (drive + walk)")
		fmt.Printf("5. Run batch file (%s -> %s)\n", *batchInput, *batchOutput)
		fmt.Println("6. Quit")
		fmt.Print("> ")

		choice, err := p.readLine()
		if err != nil {
			return
		}
		switch choice {
		case "1":
			p.fastestRoute()
		case "2":
			p.alternativeRoute()
		case "3":
			p.restrictedRoute()
		case "4":
			p.ecoRoute()
		case "5":
			if err := p.proc.ProcessFile(*batchInput, *batchOutput); err != nil {
				fmt.Println("batch run failed:", err)
				continue
			}
			fmt.Println("results written to", *batchOutput)
		case "6":
			return
		default:
			fmt.Println("unknown choice", choice)
		}
	}
}

func (p *planner) readLine() (string, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (p *planner) readID(prompt string) (string, bool) {
	fmt.Print(prompt)
	line, err := p.readLine()
	if err != nil {
		return "", false
	}
	id, err := strconv.Atoi(line)
	if err != nil {
		fmt.Println("not a location id:", line)
		return "", false
	}
	code, err := p.dir.GetCodeByID(int32(id))
	if err != nil {
		fmt.Println("location", id, "is not on the map")
		return "", false
	}
	return code, true
}

func (p *planner) readEndpoints() (string, string, bool) {
	source, ok := p.readID("source id: ")
	if !ok {
		return "", "", false
	}
	dest, ok := p.readID("destination id: ")
	if !ok {
		return "", "", false
	}
	return source, dest, true
}

func (p *planner) printRoute(label string, path []string, mode datastructure.TravelMode) {
	if len(path) == 0 {
		fmt.Printf("%s: none\n", label)
		return
	}
	ids := make([]string, len(path))
	for i, code := range path {
		id, err := p.dir.GetIDByCode(code)
		if err != nil {
			fmt.Printf("%s: none\n", label)
			return
		}
		ids[i] = strconv.Itoa(int(id))
	}
	t := p.rt.TravelTime(path, mode)
	fmt.Printf("%s: %s (%s)\n", label, strings.Join(ids, ","), strconv.FormatFloat(t, 'f', -1, 64))
}

func (p *planner) fastestRoute() {
	source, dest, ok := p.readEndpoints()
	if !ok {
		return
	}
	path := p.rt.FastestRoute(source, dest)
	p.printRoute("fastest route", path, datastructure.ModeDriving)
}

func (p *planner) alternativeRoute() {
	source, dest, ok := p.readEndpoints()
	if !ok {
		return
	}
	main := p.rt.FastestRoute(source, dest)
	p.printRoute("best route", main, datastructure.ModeDriving)
	alt := p.rt.AlternativeRoute(source, dest, main)
	p.printRoute("alternative route", alt, datastructure.ModeDriving)
}

func (p *planner) restrictedRoute() {
	source, dest, ok := p.readEndpoints()
	if !ok {
		return
	}
	rs := routingengine.Restrictions{}

	fmt.Print("avoid location ids (comma separated, empty for none): ")
	line, err := p.readLine()
	if err != nil {
		return
	}
	for _, field := range strings.Split(line, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		id, err := strconv.Atoi(field)
		if err != nil {
			fmt.Println("not a location id:", field)
			return
		}
		if code, err := p.dir.GetCodeByID(int32(id)); err == nil {
			rs.AvoidNodes = append(rs.AvoidNodes, code)
		}
	}

	fmt.Print("include location id (empty for none): ")
	line, err = p.readLine()
	if err != nil {
		return
	}
	if line != "" {
		id, err := strconv.Atoi(line)
		if err != nil {
			fmt.Println("not a location id:", line)
			return
		}
		code, err := p.dir.GetCodeByID(int32(id))
		if err != nil {
			fmt.Println("location", id, "is not on the map")
			return
		}
		rs.IncludeNode = code
	}

	path := p.rt.RestrictedRoute(source, dest, rs)
	p.printRoute("restricted route", path, datastructure.ModeDriving)
}

func (p *planner) ecoRoute() {
	source, dest, ok := p.readEndpoints()
	if !ok {
		return
	}
	fmt.Print("max walking time: ")
	line, err := p.readLine()
	if err != nil {
		return
	}
	maxWalk, err := strconv.ParseFloat(line, 64)
	if err != nil {
		fmt.Println("not a time:", line)
		return
	}

	parking, err := p.dir.ParkingNodes()
	if err != nil {
		fmt.Println("loading parking nodes:", err)
		return
	}
	route, err := p.eco.FindEcoRoute(source, dest, maxWalk, routingengine.Restrictions{}, parking)
	if err != nil {
		fmt.Println(err)
		return
	}

	p.printRoute("driving route", route.DrivePath, datastructure.ModeDriving)
	parkingID, _ := p.dir.GetIDByCode(route.ParkingNode)
	fmt.Println("parking node:", parkingID)
	p.printRoute("walking route", route.WalkPath, datastructure.ModeWalking)
	fmt.Printf("total time: %s\n", strconv.FormatFloat(route.TotalTime(), 'f', -1, 64))
}
