package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"

	"github.com/ecomove/routeplanner/pkg/directory"
	"github.com/ecomove/routeplanner/pkg/parser"
	"github.com/ecomove/routeplanner/pkg/routingengine"
	"github.com/ecomove/routeplanner/pkg/server/rest"
	"github.com/ecomove/routeplanner/pkg/server/rest/service"

	"github.com/dgraph-io/badger/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "net/http/pprof"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

var (
	listenAddr    = flag.String("listenaddr", ":5000", "server listen address")
	locationsFile = flag.String("locations", "Locations.csv", "locations csv file")
	distancesFile = flag.String("distances", "Distances.csv", "distances csv file")
	badgerDir     = flag.String("badgerdir", "./routeplanner_data", "badger location directory path")
)

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
	log.Printf("loaded %d locations, %d nodes on the map", len(locations), g.GetNumNodes())

	db, err := badger.Open(badger.DefaultOptions(*badgerDir))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	dir := directory.NewDirectory(db)
	if err := dir.SaveLocations(locations); err != nil {
		log.Fatal(err)
	}

	reg := prometheus.NewRegistry()
	m := rest.NewMetrics(reg)

	r := chi.NewRouter()

	r.Use(middleware.Logger)

	r.Use(rest.PromeHttpMiddleware(m)) // prometheus http middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Mount("/debug", middleware.Profiler())

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	rt := routingengine.NewRouteAlgorithm(g)
	eco := routingengine.NewEcoRouteFinder(rt)
	routingSvc := service.NewRoutingService(rt, eco, dir)

	rest.RoutePlannerRouter(r, routingSvc, m)

	fmt.Printf("\nserver started at %s\n", *listenAddr)

	log.Fatal(http.ListenAndServe(*listenAddr, r))
}
