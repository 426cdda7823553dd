package main

import (
	"html/template"
	"log"
	"os"
	"time"

	"amthub/internal/db"
	"amthub/internal/handlers"
	"amthub/internal/router"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	// Initialize Database
	db.Init()

	// Google OAuth config
	handlers.InitGoogleOAuth()

	// Initialize Gin
	r := gin.Default()

	// Sessions hold the OAuth state token
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "secret_key_change_me"
	}
	store := cookie.NewStore([]byte(secret))
	r.Use(sessions.Sessions("amthub_session", store))

	// Landing pages for email links
	r.HTMLRender = loadTemplates("./web/templates")

	router.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("amthub server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

func loadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	funcMap := template.FuncMap{
		"year": func() int {
			return time.Now().Year()
		},
		"safeHTML": func(s string) template.HTML {
			return template.HTML(s)
		},
	}

	// Keys match the names handlers render with
	r.AddFromFilesFuncs("auth/verified.html", funcMap,
		templatesDir+"/layouts/base.html",
		templatesDir+"/views/auth/verified.html")
	r.AddFromFilesFuncs("auth/reset.html", funcMap,
		templatesDir+"/layouts/base.html",
		templatesDir+"/views/auth/reset.html")

	return r
}
