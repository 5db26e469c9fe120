package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer sqlxDB.Close()

		db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlxDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		if clearData {
			for _, table := range []string{"invoice_line_items", "invoices", "time_logs", "engagements", "clients", "users"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear table %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		demoEmail := "dina@mail.com"
		var exists int
		row := db.Raw("SELECT 1 FROM users WHERE email = ?", demoEmail).Row()
		if err := row.Scan(&exists); err == nil {
			fmt.Println("demo user already exists:", demoEmail)
			return
		}

		if err := db.Exec(
			"INSERT INTO users (email, name, password_hash, is_active, created_at, updated_at) VALUES (?, ?, ?, true, now(), now())",
			demoEmail, "Dina", string(hash)).Error; err != nil {
			log.Fatalf("failed to insert demo user: %v", err)
		}
		fmt.Println("Seeded demo user:", demoEmail)

		var userID int64
		if err := db.Raw("SELECT id FROM users WHERE email = ?", demoEmail).Row().Scan(&userID); err != nil {
			log.Fatalf("failed to lookup demo user id: %v", err)
		}

		if err := db.Exec(
			"INSERT INTO clients (user_id, name, contact_name, email, address, created_at, updated_at) VALUES (?, ?, ?, ?, ?, now(), now())",
			userID, "Acme Corp", "Wile E.", "billing@acme.example", "1 Desert Rd").Error; err != nil {
			log.Fatalf("failed to insert client: %v", err)
		}

		var clientID int64
		if err := db.Raw("SELECT id FROM clients WHERE user_id = ? AND name = ?", userID, "Acme Corp").Row().Scan(&clientID); err != nil {
			log.Fatalf("failed to lookup client id: %v", err)
		}

		if err := db.Exec(
			"INSERT INTO engagements (user_id, client_id, project_name, engagement_type, hourly_rate, net_terms_days, start_date, end_date, created_at, updated_at) VALUES (?, ?, ?, 'hourly', 150.00, 30, '2026-01-01', '2026-12-31', now(), now())",
			userID, clientID, "Platform migration").Error; err != nil {
			log.Fatalf("failed to insert engagement: %v", err)
		}

		var engagementID int64
		if err := db.Raw("SELECT id FROM engagements WHERE user_id = ? AND project_name = ?", userID, "Platform migration").Row().Scan(&engagementID); err != nil {
			log.Fatalf("failed to lookup engagement id: %v", err)
		}

		timeLogs := []struct {
			Date  string
			Hours string
			Desc  string
		}{
			{"2026-01-05", "3.50", "Initial schema review"},
			{"2026-01-06", "5.75", "Data migration scripts"},
			{"2026-01-08", "2.25", "Cutover rehearsal"},
		}
		for _, tl := range timeLogs {
			if err := db.Exec(
				"INSERT INTO time_logs (user_id, engagement_id, log_date, hours, description, created_at, updated_at) VALUES (?, ?, ?, ?, ?, now(), now())",
				userID, engagementID, tl.Date, tl.Hours, tl.Desc).Error; err != nil {
				log.Fatalf("failed to insert time log: %v", err)
			}
		}

		fmt.Println("Sample client, engagement and time logs seeded successfully")
	},
}
