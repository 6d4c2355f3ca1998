package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"bullion-scraper/internal/scrape"
)

func main() {
	app := &cli.App{
		Name:   "bullion-scraper",
		Usage:  "scrape gold and silver prices from the BAJUS price page into JSON and CSV",
		Flags:  scrape.Flags,
		Action: scrape.Action,
		Commands: []*cli.Command{
			{
				Name:   "scrape",
				Usage:  "run the full fetch-extract-filter-export pipeline once",
				Flags:  scrape.Flags,
				Action: scrape.Action,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
