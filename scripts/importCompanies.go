package main

import (
	"encoding/json"
	"fmt"
	"log"

	"revio/config"
	"revio/database"
	"revio/models"

	"github.com/go-resty/resty/v2"
	"gorm.io/datatypes"
)

const importPageSize = 100

// apiCompany is the subset of the external record this importer maps onto a
// Company row. The full record is kept verbatim in ImportedFrom.
type apiCompany struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Industry    string `json:"industry"`
	Location    string `json:"location"`
	Website     string `json:"website"`
}

type apiPage struct {
	Companies []json.RawMessage `json:"companies"`
}

func main() {
	// Load config and connect to database
	config.LoadConfig()
	database.ConnectDb()

	client := resty.New()

	inserted := 0
	updated := 0
	skipped := 0

	for page := 1; ; page++ {
		log.Printf("Fetching page %d...", page)

		resp, err := client.R().
			SetHeader("Authorization", "Bearer "+config.AppConfig.CompanyApiKey).
			Get(fmt.Sprintf("%s?page=%d&limit=%d", config.AppConfig.CompanyApiURL, page, importPageSize))
		if err != nil {
			log.Fatalf("Failed to fetch page %d: %v", page, err)
		}
		if resp.StatusCode() != 200 {
			log.Fatalf("Non-200 status on page %d: %d, %s", page, resp.StatusCode(), resp.String())
		}

		var pageData apiPage
		if err := json.Unmarshal(resp.Body(), &pageData); err != nil {
			log.Fatalf("Failed to parse page %d: %v", page, err)
		}

		for _, raw := range pageData.Companies {
			var record apiCompany
			if err := json.Unmarshal(raw, &record); err != nil {
				log.Printf("Skipping unparseable record: %v", err)
				skipped++
				continue
			}

			if record.Name == "" || len(record.Name) > 50 {
				skipped++
				continue
			}
			if len(record.Description) > 500 {
				record.Description = record.Description[:500]
			}

			db := database.Database.Db

			// Upsert by name
			var existing models.Company
			result := db.Where("name = ?", record.Name).First(&existing)

			if result.Error != nil {
				company := models.Company{
					Name:         record.Name,
					Description:  record.Description,
					Industry:     record.Industry,
					Location:     record.Location,
					Website:      record.Website,
					ImportedFrom: datatypes.JSON(raw),
				}
				if err := db.Create(&company).Error; err != nil {
					log.Printf("Error inserting company %s: %v", record.Name, err)
					continue
				}
				inserted++
			} else {
				existing.Description = record.Description
				existing.Industry = record.Industry
				existing.Location = record.Location
				existing.Website = record.Website
				existing.ImportedFrom = datatypes.JSON(raw)
				if err := db.Save(&existing).Error; err != nil {
					log.Printf("Error updating company %s: %v", record.Name, err)
					continue
				}
				updated++
			}
		}

		// A short page means the listing is exhausted
		if len(pageData.Companies) < importPageSize {
			break
		}
	}

	log.Printf("Import complete. Inserted: %d, Updated: %d, Skipped: %d", inserted, updated, skipped)
}
