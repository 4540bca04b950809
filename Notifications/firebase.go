package Notifications

import (
	"context"
	"fmt"
	"log"
	"os"

	"Frota/Models"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
	"gorm.io/gorm"
)

// Global Firebase client
var firebaseClient *messaging.Client
var ctx = context.Background()

// InitFirebase initializes the FCM client. Call once at startup.
func InitFirebase() error {
	credentialsPath := os.Getenv("FROTA_FIREBASE_CREDENTIALS")
	if credentialsPath == "" {
		credentialsPath = "./firebase-adminsdk.json"
	}
	opt := option.WithCredentialsFile(credentialsPath)

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return fmt.Errorf("error initializing Firebase app: %v", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return fmt.Errorf("error getting Messaging client: %v", err)
	}

	firebaseClient = client
	log.Println("Firebase initialized successfully")
	return nil
}

// SendToAll pushes a notification to every registered device token.
func SendToAll(db *gorm.DB, title, body string, data map[string]string) error {
	if firebaseClient == nil {
		return fmt.Errorf("firebase client not initialized - call InitFirebase() first")
	}

	var tokens []Models.FCMToken
	if err := db.Find(&tokens).Error; err != nil {
		return fmt.Errorf("failed to load device tokens: %v", err)
	}

	for _, token := range tokens {
		message := &messaging.Message{
			Token: token.Value,
			Data:  data,
			Notification: &messaging.Notification{
				Title: title,
				Body:  body,
			},
			Android: &messaging.AndroidConfig{
				Notification: &messaging.AndroidNotification{
					Sound: "default",
				},
				Priority: "high",
			},
		}

		response, err := firebaseClient.Send(ctx, message)
		if err != nil {
			log.Printf("Error sending notification to token %d: %v", token.ID, err)
			continue
		}
		log.Printf("Successfully sent Firebase notification: %s", response)
	}
	return nil
}
