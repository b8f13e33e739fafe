package main

import (
	"fmt"

	"github.com/rajendar38/dice2/internal/config"
)

func main() {
	fmt.Println("🔧 Testing config loading...")
	cfg := config.Load()
	fmt.Printf("✅ Config loaded successfully!\n")
	fmt.Printf("   Dice Email: %s\n", cfg.DiceEmail)
	fmt.Printf("   Resume Path: %s\n", cfg.ResumePath)
	fmt.Printf("   Search Query: %s\n", cfg.Search.Query)
	fmt.Printf("   Keywords: %v\n", cfg.Keywords)
	fmt.Printf("   Exclude Keywords: %v\n", cfg.ExcludeKeywords)
	fmt.Printf("   Registry Path: %s\n", cfg.RegistryPath)
	fmt.Printf("   Per-job Wait: %ds\n", cfg.PerJobWaitSeconds)
	fmt.Printf("   First page URL: %s\n", cfg.SearchURL(1))
}
