package main

import (
	"log"
	"strings"
	"time"

	"olc/config"
	"olc/database"
	"olc/models"

	"golang.org/x/crypto/bcrypt"
)

// Seeds an admin account and a couple of sample courses for local development.
func main() {
	config.LoadConfig()
	database.ConnectDb()
	db := database.Database.Db

	adminEmail := strings.ToLower("admin@example.com")
	var existing models.User
	if err := db.Where("email = ?", adminEmail).First(&existing).Error; err != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte("changeme"), config.AppConfig.SaltRound)
		if err != nil {
			log.Fatalf("Failed to hash admin password: %v", err)
		}
		admin := models.User{
			Username: "admin",
			Email:    adminEmail,
			Password: string(hashed),
			Role:     models.RoleAdmin,
		}
		if err := db.Create(&admin).Error; err != nil {
			log.Fatalf("Failed to seed admin user: %v", err)
		}
		log.Println("Seeded admin user admin@example.com")
	}

	dueWeb := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	dueAPI := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)

	courses := []models.Course{
		{
			Title:       "Intro to Web Development",
			Description: "HTML, CSS, and JavaScript fundamentals with hands-on tasks.",
			Content:     "Learn the full web basics from structure to interactivity and ship a real landing page.",
			Status:      true,
			DueDate:     &dueWeb,
			Modules: []models.CourseModule{
				{Title: "HTML Foundations", Summary: "Semantic structure, forms, and accessible markup.", Task: "Build a 3-section landing page using semantic tags."},
				{Title: "CSS Layout", Summary: "Flexbox, Grid, spacing systems, and responsive patterns.", Task: "Make the landing page responsive for mobile and desktop."},
				{Title: "JavaScript Basics", Summary: "Variables, functions, DOM selection, and events.", Task: "Add interactive FAQ toggle and a newsletter form validation."},
			},
		},
		{
			Title:       "Go API Mastery",
			Description: "Build REST APIs with Fiber, JWT auth, and PostgreSQL.",
			Content:     "Design robust APIs with authentication, validation, and deployment.",
			Status:      true,
			DueDate:     &dueAPI,
			Modules: []models.CourseModule{
				{Title: "Fiber Essentials", Summary: "Routing, middleware, and API structure.", Task: "Create a CRUD API with 3 endpoints."},
				{Title: "Authentication", Summary: "JWT, bcrypt, and protected routes.", Task: "Add register/login and protect a private endpoint."},
				{Title: "PostgreSQL", Summary: "Schema design and migrations with GORM.", Task: "Implement models and add validators."},
				{Title: "Deployment", Summary: "Environment variables and hosting.", Task: "Deploy the API and document it."},
			},
		},
	}

	for _, course := range courses {
		var found models.Course
		if err := db.Where("title = ?", course.Title).First(&found).Error; err == nil {
			continue
		}
		if err := db.Create(&course).Error; err != nil {
			log.Fatalf("Failed to seed course %q: %v", course.Title, err)
		}
		log.Printf("Seeded course %q with %d modules", course.Title, len(course.Modules))
	}

	log.Println("Seeding completed.")
}
