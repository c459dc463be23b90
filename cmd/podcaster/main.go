package main

import (
	"podcaster/cmd/handlers"
	"podcaster/internal/logger"
)

func main() {
	logger.Init() // Initialize the logger
	handlers.Execute()
}
