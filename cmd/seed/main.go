// Command main runs the demo data seeder for Psi Diário.
package main

import (
	"context"
	"flag"
	"log"

	"psidiario/internal/bootstrap"
	"psidiario/internal/config"
	"psidiario/internal/seed"
)

func main() {
	// Parse command line flags
	username := flag.String("username", "demo", "Username for the demo patient")
	fullName := flag.String("name", "Paciente de Demonstração", "Full name for the demo patient")
	password := flag.String("password", "demo123", "Password for the demo patient")
	numEntries := flag.Int("entries", 40, "Number of journal entries to create")
	maxDays := flag.Int("days", 120, "How far back the entries may land")
	shouldClean := flag.Bool("clean", true, "Clean collections before seeding")
	flag.Parse()

	log.Println("Demo Data Seeder")
	log.Println("================")
	log.Printf("Target: user %q with %d entries over %d days, clean=%v\n",
		*username, *numEntries, *maxDays, *shouldClean)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	st, _, err := bootstrap.OpenStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			log.Printf("error closing store: %v", cerr)
		}
	}()

	seeder := seed.NewSeeder(st)
	user, err := seeder.Run(context.Background(), seed.Options{
		Username:   *username,
		FullName:   *fullName,
		Password:   *password,
		NumEntries: *numEntries,
		MaxDays:    *maxDays,
		Clean:      *shouldClean,
	})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Done. Log in as %q with the configured password.", user.Username)
}
