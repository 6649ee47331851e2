package main

import (
	"log"

	"gacha_roller/internal/app"
)

func main() {
	err := app.NewApp().Run()
	if err != nil {
		log.Fatalf("game loop stopped: %v", err)
	}
}
