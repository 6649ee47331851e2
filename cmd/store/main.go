package main

import (
	"log"

	"gacha_roller/internal/storeapp"
)

func main() {
	err := storeapp.NewApp().Run()
	if err != nil {
		log.Fatalf("store server stopped: %v", err)
	}
}
