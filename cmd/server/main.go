package main

import (
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"fleetreserve/internal/api"
	"fleetreserve/internal/auth"
	"fleetreserve/internal/config"
	"fleetreserve/internal/repository"
	"fleetreserve/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	database, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := database.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	reservationRepo := repository.NewReservationRepository(database)
	vehicleRepo := repository.NewVehicleRepository(database)
	userRepo := repository.NewUserRepository(database)
	recordRepo := repository.NewRecordRepository(database)
	jobRepo := repository.NewJobRepository(database)

	notifySvc := service.NewNotifyService(cfg)
	reservationSvc := service.NewReservationService(reservationRepo, vehicleRepo, userRepo, notifySvc, cfg.ModificationWindow)
	vehicleSvc := service.NewVehicleService(vehicleRepo)
	userSvc := service.NewUserService(userRepo)
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	recordSvc := service.NewRecordService(recordRepo, vehicleRepo)
	jobSvc := service.NewJobService(jobRepo, notifySvc, time.Duration(cfg.InspectionLookaheadDays)*24*time.Hour)

	authHandler := api.NewAuthHandler(authSvc)
	reservationHandler := api.NewReservationHandler(reservationSvc)
	vehicleHandler := api.NewVehicleHandler(vehicleSvc)
	userHandler := api.NewUserHandler(userSvc)
	recordHandler := api.NewRecordHandler(recordSvc)

	mw := auth.NewMiddleware(cfg.JWTSecret, userRepo)

	r := mux.NewRouter()
	root := r.PathPrefix("/api").Subrouter()

	// Public endpoint
	root.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Everything else requires a valid token
	protected := root.PathPrefix("/").Subrouter()
	protected.Use(mw.Authenticate)

	protected.HandleFunc("/auth/me", authHandler.Me).Methods("GET")
	protected.HandleFunc("/auth/logout", authHandler.Logout).Methods("POST")

	protected.HandleFunc("/reservations", reservationHandler.ListReservations).Methods("GET")
	protected.HandleFunc("/reservations", reservationHandler.CreateReservation).Methods("POST")
	protected.HandleFunc("/calendar", reservationHandler.GetCalendar).Methods("GET")
	protected.HandleFunc("/reservations/{id}", reservationHandler.GetReservation).Methods("GET")
	protected.HandleFunc("/reservations/{id}", reservationHandler.UpdateReservation).Methods("PUT")
	protected.HandleFunc("/reservations/{id}", reservationHandler.CancelReservation).Methods("DELETE")

	protected.HandleFunc("/vehicles", vehicleHandler.ListVehicles).Methods("GET")
	protected.HandleFunc("/vehicles", vehicleHandler.CreateVehicle).Methods("POST")
	protected.HandleFunc("/vehicles/{id}", vehicleHandler.GetVehicle).Methods("GET")
	protected.HandleFunc("/vehicles/{id}", vehicleHandler.UpdateVehicle).Methods("PUT")
	protected.HandleFunc("/vehicles/{id}", vehicleHandler.ArchiveVehicle).Methods("DELETE")
	protected.HandleFunc("/vehicles/{id}/availability", reservationHandler.CheckAvailability).Methods("GET")

	protected.HandleFunc("/service-records", recordHandler.ListServiceRecords).Methods("GET")
	protected.HandleFunc("/service-records", recordHandler.CreateServiceRecord).Methods("POST")
	protected.HandleFunc("/service-records/{id}", recordHandler.GetServiceRecord).Methods("GET")
	protected.HandleFunc("/service-records/{id}", recordHandler.UpdateServiceRecord).Methods("PUT")
	protected.HandleFunc("/service-records/{id}", recordHandler.DeleteServiceRecord).Methods("DELETE")

	protected.HandleFunc("/damage-records", recordHandler.ListDamageRecords).Methods("GET")
	protected.HandleFunc("/damage-records", recordHandler.CreateDamageRecord).Methods("POST")
	protected.HandleFunc("/damage-records/{id}", recordHandler.GetDamageRecord).Methods("GET")
	protected.HandleFunc("/damage-records/{id}", recordHandler.UpdateDamageRecord).Methods("PUT")
	protected.HandleFunc("/damage-records/{id}", recordHandler.DeleteDamageRecord).Methods("DELETE")

	protected.HandleFunc("/users", userHandler.ListUsers).Methods("GET")
	protected.HandleFunc("/users/{id}", userHandler.GetUser).Methods("GET")
	protected.HandleFunc("/users/{id}/role", userHandler.UpdateUserRole).Methods("PUT")
	protected.HandleFunc("/users/{id}/status", userHandler.UpdateUserStatus).Methods("PUT")
	protected.HandleFunc("/roles", userHandler.ListRoles).Methods("GET")
	protected.HandleFunc("/roles", userHandler.CreateRole).Methods("POST")

	c := cron.New()
	if _, err := c.AddFunc(cfg.InspectionCronSpec, func() {
		if err := jobSvc.SendInspectionReminders(); err != nil {
			log.Printf("inspection reminder job failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule inspection reminders: %v", err)
	}
	c.Start()
	defer c.Stop()

	corsHandler := handlers.CORS(
		handlers.AllowedOrigins(cfg.CORSOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)(r)

	log.Printf("Server running on port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, corsHandler))
}
