package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "campusbus/internal/config"
	"campusbus/internal/db"
	"campusbus/internal/domain/models"
	router "campusbus/internal/http"
	"campusbus/internal/http/middleware"
	"campusbus/internal/repositories"
	"campusbus/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}
	middleware.SetJWTSecret(env.JWTSecret)

	conn := intconfig.ConnectDB(env)
	defer intconfig.CloseDB()

	if err := db.EnsureSchema(conn); err != nil {
		log.Fatalf("schema bootstrap failed: %v", err)
	}

	seedOperator(env)

	// Load upcoming trips and their bookings into the in-memory engine.
	if err := (services.TripService{}).Hydrate(); err != nil {
		log.Fatalf("engine hydration failed: %v", err)
	}

	r := router.NewRouter(env)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("server listening on http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown failed: %v", err)
	}

	log.Println("server stopped cleanly.")
}

// seedOperator creates the bootstrap operator account when the table is
// empty and the seed variables are set.
func seedOperator(env intconfig.Env) {
	if env.OperatorSeedEmployeeID == "" || env.OperatorSeedPassword == "" {
		return
	}

	repo := repositories.OperatorRepository{}
	n, err := repo.Count()
	if err != nil {
		log.Printf("warning: operator seed check failed: %v", err)
		return
	}
	if n > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(env.OperatorSeedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("warning: operator seed hash failed: %v", err)
		return
	}

	name := env.OperatorSeedName
	if name == "" {
		name = "Bus Operator"
	}
	op := models.Operator{
		ID:           uuid.NewString(),
		Name:         name,
		EmployeeID:   env.OperatorSeedEmployeeID,
		PasswordHash: string(hash),
	}
	if err := repo.Insert(op); err != nil {
		log.Printf("warning: operator seed insert failed: %v", err)
		return
	}
	log.Printf("seeded operator account %s", op.EmployeeID)
}
