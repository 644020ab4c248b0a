// Command orderreminders queries orders placed within the last 7 days through
// the CRM API and appends one reminder line per order to the reminder log.
// Any failure is recorded as a timestamped error line and the process exits
// non-zero.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"crm-service/config"
	"crm-service/internal/apiclient"
	"crm-service/internal/joblog"
	"crm-service/internal/util"
)

const reminderWindow = 7 * 24 * time.Hour

func main() {
	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	reminderLog, err := joblog.Open(cfg.Jobs.OrderReminderLog)
	if err != nil {
		log.Fatalf("Failed to open reminder log: %v", err)
	}
	defer reminderLog.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := apiclient.New(cfg.API.BaseURL)
	timestamp := time.Now().Format("2006-01-02 15:04:05")

	orders, err := client.ListOrders(ctx, time.Now().Add(-reminderWindow))
	if err != nil {
		line := fmt.Sprintf("[%s] Error processing order reminders: %v", timestamp, err)
		if werr := reminderLog.WriteLine(line); werr != nil {
			log.Printf("Failed to write reminder log: %v", werr)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	lines := make([]string, 0, len(orders))
	for _, order := range orders {
		lines = append(lines, fmt.Sprintf("[%s] Order ID: %d, Customer Email: %s",
			timestamp, order.ID, order.CustomerEmail))
	}

	if err := reminderLog.WriteLines(lines); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Order reminders processed!")
}
