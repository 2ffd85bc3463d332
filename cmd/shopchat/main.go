package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// Local development keeps secrets in .env; absence is fine.
	if err := godotenv.Load(); err == nil {
		log.Println("[BOOT] loaded environment from .env")
	}

	var root = &cobra.Command{Use: "shopchat"}

	root.AddCommand(serveCMD(), migrateCMD(), tokenCMD())
	_ = root.Execute()
}
