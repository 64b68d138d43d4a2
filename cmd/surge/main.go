package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/tidelab/detide/pkg/cache"
	"github.com/tidelab/detide/pkg/coops"
	"github.com/tidelab/detide/pkg/noaa"
	"github.com/tidelab/detide/pkg/surge"
	"github.com/tidelab/detide/pkg/units"
)

const timeFmt = "2006-01-02T15:04"

type Config struct {
	CacheDir string `envconfig:"CACHE_DIR" required:"true"`
}

func main() {
	_ = godotenv.Load()

	var env Config
	if err := envconfig.Process("", &env); err != nil {
		log.Fatal(err.Error())
	}

	station := flag.String("station", "9441102", "CO-OPS station id")
	landfallStr := flag.String("landfall", "", "landfall reference time, "+timeFmt+" (required)")
	beginStr := flag.String("begin", "", "window start (default two days before landfall)")
	endStr := flag.String("end", "", "window end (default two days after landfall)")
	verbose := flag.Bool("verbose", false, "print the station's constituents and datums first")
	flag.Parse()

	if *landfallStr == "" {
		log.Fatal("-landfall is required")
	}
	landfall, err := time.Parse(timeFmt, *landfallStr)
	if err != nil {
		log.Fatalf("bad -landfall: %v", err)
	}
	begin := landfall.Add(-48 * time.Hour)
	if *beginStr != "" {
		if begin, err = time.Parse(timeFmt, *beginStr); err != nil {
			log.Fatalf("bad -begin: %v", err)
		}
	}
	end := landfall.Add(48 * time.Hour)
	if *endStr != "" {
		if end, err = time.Parse(timeFmt, *endStr); err != nil {
			log.Fatalf("bad -end: %v", err)
		}
	}

	c := coops.NewClient()
	if *verbose {
		printStation(c, *station)
	}

	disk, err := cache.NewDisk(env.CacheDir)
	if err != nil {
		log.Fatalf("bad cache dir: %v", err)
	}

	result, err := surge.Run(c, noaa.NewFetcher(disk), *station, begin, end, landfall)
	if err != nil {
		log.Fatalf("computing surge: %+v", err)
	}

	fmt.Println("days_from_landfall  surge_m")
	for i := range result.Days {
		fmt.Printf("%18.5f %8.3f\n", result.Days[i], result.Surge[i])
	}
}

// printStation reports the harmonic and datum catalogs the way the
// station home pages display them.
func printStation(c *coops.Client, station string) {
	harcon, info, err := c.FetchHarcon(station, units.Meters)
	if err != nil {
		log.Fatalf("fetching constituents: %+v", err)
	}
	fmt.Printf("Harmonic constituents for station %s (served in %s):\n", station, info.Units)
	fmt.Println(" Name  amplitude (m)  phase (GMT)        speed")
	for _, h := range harcon {
		fmt.Printf("%5s %14.3f %12.3f %12.6f\n", h.Name, h.Amplitude, h.PhaseGMT, h.Speed)
	}

	datums, dinfo, err := c.FetchDatums(station, units.Meters)
	if err != nil {
		log.Fatalf("fetching datums: %+v", err)
	}
	fmt.Printf("Datums for station %s (epoch %s):\n", station, dinfo.Epoch)
	for _, d := range datums {
		fmt.Printf("%7s %11.3f m  %s\n", d.Name, d.Value, d.Description)
	}
}
