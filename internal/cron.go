package internal

import (
	"log"

	"github.com/robfig/cron/v3"
)

const CRON_SCHEDULE_STATIONS = "0 3 * * 1" // Mondays at 03:00
const CRON_SCHEDULE_BULLETIN = "0 6 * * 2" // Tuesdays at 06:00, after the weekly bulletin is published

func StartCron(client BulletinClient, repo PriceRepository) (*cron.Cron, error) {

	c := cron.New()

	log.Print("Starting CRON jobs to refresh stations and weekly reference prices")

	if _, err := c.AddFunc(CRON_SCHEDULE_STATIONS, func() {
		numStations, err := client.GetStations(repo.UpsertStations)
		if err != nil {
			log.Printf("Error fetching stations: %v\n", err)
			return
		}
		log.Printf("Upserted %d stations", numStations)
	}); err != nil {
		return nil, err
	}

	if _, err := c.AddFunc(CRON_SCHEDULE_BULLETIN, func() {
		numRecords, err := client.GetReferencePrices(repo.InsertReferencePrices)
		if err != nil {
			log.Printf("Error fetching reference prices: %v\n", err)
			return
		}
		log.Printf("Inserted %d reference price records", numRecords)
	}); err != nil {
		return nil, err
	}

	c.Start()
	return c, nil
}
