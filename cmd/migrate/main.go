package main

import (
	"database/sql"
	"log"
	"os"

	"meridian-schools/app/config"
)

func main() {
	log.Println("Applying database schema...")

	config.Load()
	db := config.GetDB()
	defer db.Close()

	executeSQLFile(db, "schema.sql")

	log.Println("Migration completed successfully")
}

func executeSQLFile(db *sql.DB, filePath string) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", filePath, err)
	}

	log.Printf("Executing %s...", filePath)
	if _, err := db.Exec(string(content)); err != nil {
		log.Fatalf("Error executing %s: %v", filePath, err)
	}
	log.Printf("Successfully executed %s", filePath)
}
