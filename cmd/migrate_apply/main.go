package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"todo_webapp/internal/db"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	apply := flag.Bool("apply", false, "apply migrations")
	flag.Parse()

	migs, err := db.Migrations()
	if err != nil {
		log.Fatal(err)
	}

	if !*apply {
		for _, m := range migs {
			fmt.Println(m.Name)
		}
		return
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	for _, m := range migs {
		if _, err := pool.Exec(context.Background(), m.SQL); err != nil {
			log.Fatalf("failed to apply %s: %v", m.Name, err)
		}
		fmt.Printf("applied %s\n", m.Name)
	}
}
