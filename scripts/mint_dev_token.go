package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
)

func main() {
	// Parse command line flags
	user := flag.String("user", "dev-user", "Subject of the token")
	role := flag.String("role", "admin", "User role (admin or user)")
	ttl := flag.Duration("ttl", time.Hour, "Token lifetime")
	flag.Parse()

	if *role != "admin" && *role != "user" {
		log.Fatalf("Invalid role %q, allowed roles: admin, user", *role)
	}

	_ = godotenv.Load()
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"user": *user,
		"role": *role,
		"iat":  now.Unix(),
		"exp":  now.Add(*ttl).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		log.Fatal("Failed to sign token:", err)
	}

	fmt.Printf("✓ Development token minted for %s (role %s, valid %s)\n", *user, *role, *ttl)
	fmt.Printf("Token: %s\n", token)
	fmt.Println("\nUse it against protected endpoints:")
	fmt.Printf("curl -X POST http://localhost:8080/api/pizzas/ \\\n")
	fmt.Printf("  -H 'Authorization: Bearer %s' \\\n", token)
	fmt.Printf("  -H 'Content-Type: application/json' \\\n")
	fmt.Printf("  -d '{\"name\":\"Hawaiian\",\"ingredients\":\"Ham, pineapple, mozzarella\",\"price\":16.99,\"image\":\"images/hawaiian.jpg\"}'\n")
}
