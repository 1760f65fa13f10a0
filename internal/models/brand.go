package models

type Brand struct {
	Name    string
	Url     string
	Favicon *string
}

func (b *Brand) ToCSV() []string {
	row := []string{
		b.Name,
		b.Url,
		"",
	}
	if b.Favicon != nil {
		row[2] = *b.Favicon
	}

	return row
}

func BrandFromCSV(record, headers []string) (*Brand, error) {
	brand := &Brand{
		Name: record[0],
		Url:  record[1],
	}
	if len(record) == 3 && record[2] != "" {
		brand.Favicon = &record[2]
	}
	return brand, nil
}
