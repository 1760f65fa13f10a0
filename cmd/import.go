package cmd

import (
	"fmt"
	"log"

	"github.com/rcarag/presyo-api/internal/brands"
	"github.com/rcarag/presyo-api/internal/models"
)

func Import(dbPath string) error {

	client, repo, err := bootstrap(dbPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := repo.Close(); err != nil {
			log.Printf("failed to close repository: %v", err)
		}
	}()

	brandsMap, err := brands.GetBrandsMap()
	if err != nil {
		return fmt.Errorf("failed to load brand list: %w", err)
	}

	numStations, err := client.GetStations(func(batch []models.Station) (int, error) {
		// publisher data carries inconsistent brand casing
		for i := range batch {
			batch[i].Brand = brandsMap.Canonical(batch[i].Brand)
		}
		return repo.UpsertStations(batch)
	})
	if err != nil {
		return fmt.Errorf("failed to fetch stations: %w", err)
	}
	log.Printf("imported %d stations", numStations)

	numRecords, err := client.GetReferencePrices(repo.InsertReferencePrices)
	if err != nil {
		return fmt.Errorf("failed to fetch reference prices: %w", err)
	}
	log.Printf("imported %d reference price records", numRecords)

	return nil
}
