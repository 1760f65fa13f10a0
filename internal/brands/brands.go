package brands

import (
	_ "embed"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/rcarag/presyo-api/internal"
	"github.com/rcarag/presyo-api/internal/models"
)

//go:embed brands.csv
var brandsCSV string

func GetBrandsList() ([]*models.Brand, error) {
	arr := make([]*models.Brand, 0, 20)
	reader := strings.NewReader(brandsCSV)

	for record := range internal.ParseCSV(reader, false, models.BrandFromCSV) {
		if record.Error != nil {
			return nil, errors.Wrap(record.Error, "failed to load fuel brands")
		}
		arr = append(arr, record.Value)
	}

	return arr, nil
}

func GetBrandsMap() (Brands, error) {
	brands, err := GetBrandsList()
	if err != nil {
		return nil, err
	}

	m := make(map[string]*models.Brand, len(brands))
	for _, record := range brands {
		key := strings.ToLower(record.Name)
		if _, ok := m[key]; ok {
			return nil, errors.Newf("duplicate key detected: %s", record.Name)
		}
		m[key] = record
	}

	return m, nil
}

type Brands map[string]*models.Brand

// Canonical returns the canonical brand name for a possibly differently-cased
// import value, or the input unchanged when the brand is unknown.
func (b Brands) Canonical(name string) string {
	if brand, ok := b[strings.ToLower(strings.TrimSpace(name))]; ok {
		return brand.Name
	}
	return name
}
