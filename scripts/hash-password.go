// Command hash-password generates an argon2id hash for OWNER_PASSWORD_HASH.
//
// Usage:
//
//	go run scripts/hash-password.go -password "your-password"
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/vitrine/vitrine/internal/auth"
)

type output struct {
	Hash string `json:"hash"`
}

func main() {
	var (
		password = flag.String("password", "", "Password to hash")
		format   = flag.String("format", "plain", "Output format: plain or json")
	)
	flag.Parse()

	if *password == "" {
		fmt.Fprintln(os.Stderr, "-password is required")
		os.Exit(1)
	}

	hash, err := auth.HashPassword(*password)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hash password:", err)
		os.Exit(1)
	}

	if *format == "json" {
		_ = json.NewEncoder(os.Stdout).Encode(output{Hash: hash})
		return
	}

	fmt.Println("Set this as OWNER_PASSWORD_HASH:")
	fmt.Println(hash)
}
