package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oksasatya/go-hrm-service/config"
	"github.com/oksasatya/go-hrm-service/pkg/helpers"
)

var coreRoles = []string{"SUPER-ADMIN", "ADMIN", "MANAGER", "EMPLOYEE"}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	// Ensure the core role catalogue exists
	roleIDs := make(map[string]int32, len(coreRoles))
	for _, name := range coreRoles {
		var id int32
		if err := db.QueryRow(`
			INSERT INTO roles (name) VALUES ($1)
			ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			RETURNING role_id
		`, name).Scan(&id); err != nil {
			log.Fatalf("failed to upsert role %s: %v", name, err)
		}
		roleIDs[name] = id
	}
	fmt.Printf("roles ensured: %v\n", coreRoles)

	// Seed the super-admin account
	email := getenv("SEED_ADMIN_EMAIL", "admin@example.com")
	password := getenv("SEED_ADMIN_PASSWORD", "superadmin123")
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var userID int64
	err = db.QueryRow(`
		INSERT INTO users (email, password, full_name, is_active)
		VALUES ($1, $2, $3, TRUE)
		ON CONFLICT (email) DO UPDATE SET full_name = EXCLUDED.full_name
		RETURNING user_id
	`, email, hash, "Super Admin").Scan(&userID)
	if err != nil {
		log.Fatalf("failed to seed super admin: %v", err)
	}
	if _, err := db.Exec(`
		INSERT INTO user_roles (user_id, role_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, role_id) DO NOTHING
	`, userID, roleIDs["SUPER-ADMIN"]); err != nil {
		log.Fatalf("failed to assign super-admin role: %v", err)
	}
	fmt.Printf("seeded super admin: id=%d email=%s\n", userID, email)

	// Base org directory so designations have somewhere to hang
	var deptID int32
	err = db.QueryRow(`
		INSERT INTO department_list (dept_name, description)
		VALUES ('General', 'Default department')
		ON CONFLICT (dept_name) DO UPDATE SET dept_name = EXCLUDED.dept_name
		RETURNING dept_id
	`).Scan(&deptID)
	if err != nil {
		log.Fatalf("failed to seed department: %v", err)
	}
	if _, err := db.Exec(`
		INSERT INTO sub_department_list (dept_id, sub_dept_name, description)
		VALUES ($1, 'Operations', 'Default sub-department')
		ON CONFLICT (dept_id, sub_dept_name) DO NOTHING
	`, deptID); err != nil {
		log.Fatalf("failed to seed sub-department: %v", err)
	}
	fmt.Printf("seeded base org directory: dept_id=%d\n", deptID)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
