// One-shot reconciliation job: documents referenced by a submission must end
// up marked "pending". Run after restoring backups or upgrading from
// deployments that wrote the two stores non-atomically.
package main

import (
	"log"

	"conference-submission-api/config"
	"conference-submission-api/services"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config.InitDB()

	corrected, err := services.ReconcileDocumentStatuses(config.DB)
	if err != nil {
		log.Fatalf("Reconciliation failed: %v", err)
	}

	if corrected == 0 {
		log.Println("All referenced documents already marked pending")
		return
	}
	log.Printf("Corrected %d document(s) to pending", corrected)
}
