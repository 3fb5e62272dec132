package main

import (
	"bitbucket.org/crgw/rental-hub/internal/cli"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env")
	cli.Execute()
}
