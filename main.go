package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tidelab/detide/pkg/cache"
	"github.com/tidelab/detide/pkg/coops"
	"github.com/tidelab/detide/pkg/metrics"
	"github.com/tidelab/detide/pkg/noaa"
)

type Config struct {
	Port   string `default:"8080"`
	Prefix string `default:"/"`
	// CacheDir is where raw NOAA responses live. Startup fails
	// without it.
	CacheDir string `envconfig:"CACHE_DIR" required:"true"`
}

func main() {
	// A .env file is optional; real environment variables win.
	_ = godotenv.Load()

	var env Config
	if err := envconfig.Process("", &env); err != nil {
		log.Fatal(err.Error())
	}

	disk, err := cache.NewDisk(env.CacheDir)
	if err != nil {
		log.Fatalf("bad cache dir: %v", err)
	}

	srv := &server{
		coops:   coops.NewClient(),
		fetcher: noaa.NewFetcher(disk),
	}

	r := mux.NewRouter().StrictSlash(true)
	s := r.PathPrefix(env.Prefix).Subrouter()

	s.Handle("/metrics", promhttp.Handler())
	s.HandleFunc("/api/v1/predictions", srv.servePredictions)
	s.HandleFunc("/api/v1/surge", srv.serveSurge)

	httpSrv := &http.Server{
		Handler:      metrics.LatencyHandler(r),
		Addr:         "0.0.0.0:" + env.Port,
		WriteTimeout: 60 * time.Second,
		ReadTimeout:  15 * time.Second,
	}
	log.Printf("Listening and serving on %s%s", httpSrv.Addr, env.Prefix)
	log.Fatal(httpSrv.ListenAndServe())
}
