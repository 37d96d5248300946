// Command resetadmin asks a running backend to replace all admin accounts
// with a fresh default admin and prints the new credentials.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/webedt/webedt/internal/adminclient"
)

func main() {
	url := flag.String("u", "http://127.0.0.1:3001", "backend base URL")
	flag.Parse()

	token := os.Getenv("ADMIN_RESET_TOKEN")
	if token == "" {
		var err error
		token, err = adminclient.PromptToken(os.Stdout)
		if err != nil {
			log.Fatalf("read token: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	res, err := adminclient.New(*url).ResetAdmin(ctx, token)
	if err != nil {
		log.Fatalf("%v", err)
	}

	fmt.Println(res.Message)
	fmt.Printf("Email:    %s\n", res.User.Email)
	fmt.Printf("Password: %s\n", res.GeneratedPassword)
}
