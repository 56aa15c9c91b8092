package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campuschat/chat"
	"campuschat/chatroom"
	"campuschat/db"
	"campuschat/main/routes"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"
)

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}

func rateLimitErrorHandler(c *gin.Context, info ratelimit.Info) {
	c.String(429, "Too many requests. Try again in "+time.Until(info.ResetTime).String())
}

func main() {
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	dbName := os.Getenv("DB_FILE")
	if dbName == "" {
		dbName = "./campuschat.db"
	}
	superAdminUser := os.Getenv("SUPER_ADMIN_USERNAME")
	superAdminPass := os.Getenv("SUPER_ADMIN_PASSWORD")

	var err error
	db.ChatDB, err = db.InitSQLite(dbName)
	if err != nil {
		log.Fatal("Error opening database:", err)
	}
	defer db.CloseDB(db.ChatDB)

	if err := db.EnsureSchema(); err != nil {
		log.Fatal("Error ensuring schema:", err)
	}
	if superAdminUser != "" && superAdminPass != "" {
		if err := db.SeedSuperAdmin(superAdminUser, superAdminPass); err != nil {
			log.Fatal("Error seeding super admin:", err)
		}
	}

	if err := os.MkdirAll(chat.AvatarDir(), 0o755); err != nil {
		log.Fatal("Error creating avatar directory:", err)
	}

	r := gin.Default()

	store := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{Rate: time.Second, Limit: 100})
	r.Use(ratelimit.RateLimiter(store, &ratelimit.Options{ErrorHandler: rateLimitErrorHandler, KeyFunc: keyFunc}))
	r.Use(cors.Default())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.Static("/images/avatars", chat.AvatarDir())

	routes.SetupAPIRoutes(r)
	routes.SetupWebSocketRoutes(r)

	stopSweeper := chatroom.StartRetentionSweeper(chatroom.SweepInterval)
	defer stopSweeper()

	server := &http.Server{Addr: ":" + port, Handler: r}

	go func() {
		log.Printf("Starting campus chat on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down campus chat...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("forced shutdown: %v", err)
	}
}
