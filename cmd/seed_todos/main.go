package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"todo_webapp/internal/db"
	"todo_webapp/internal/repository"
	"todo_webapp/internal/service"

	"github.com/joho/godotenv"
)

var samples = []struct {
	title, description string
	done               bool
}{
	{"Buy groceries", "Milk, eggs, bread", false},
	{"Read a book", "Finish chapter 5", false},
	{"Pay rent", "", true},
	{"Call mom", "", false},
	{"Clean the kitchen", "Dishes and floor", true},
}

func main() {
	_ = godotenv.Load()
	n := flag.Int("n", len(samples), "number of sample todos to insert")
	flag.Parse()

	// expects DATABASE_URL env var
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	ctx := context.Background()
	if err := db.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}

	svc := service.NewTodoService(repository.NewTodoRepository(pool), nil)
	for i := 0; i < *n; i++ {
		s := samples[i%len(samples)]
		title := s.title
		if i >= len(samples) {
			title = fmt.Sprintf("%s #%d", s.title, i/len(samples)+1)
		}

		todo, err := svc.Create(ctx, title, s.description)
		if err != nil {
			log.Fatalf("create %q: %v", title, err)
		}
		if s.done {
			if todo, err = svc.Toggle(ctx, todo.ID); err != nil {
				log.Fatalf("toggle %d: %v", todo.ID, err)
			}
		}
		log.Printf("created todo id=%d title=%q completed=%v", todo.ID, todo.Title, todo.Completed)
	}
}
