package main

import (
	"log"
	"os"

	"Frota/CronJobs"
	"Frota/FiberConfig"
	"Frota/Models"
	"Frota/Notifications"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	Models.Connect()

	if os.Getenv("FROTA_FIREBASE_CREDENTIALS") != "" {
		if err := Notifications.InitFirebase(); err != nil {
			log.Printf("Failed to initialize Firebase: %v\n", err)
		}
	}

	complianceChecker := CronJobs.NewComplianceChecker(Models.DB, 30, false)
	if err := complianceChecker.Start(); err != nil {
		log.Printf("Failed to start compliance checker: %v\n", err)
	}
	defer complianceChecker.Stop()

	FiberConfig.FiberConfig()
}
