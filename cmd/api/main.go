package main

import (
	"fmt"
	"net/http"

	"github.com/attendhub/attend-backend-go/internal/config"
	appHTTP "github.com/attendhub/attend-backend-go/internal/handler/http"
	"github.com/attendhub/attend-backend-go/internal/pkg/database"
	"github.com/attendhub/attend-backend-go/internal/pkg/jwt"
	"github.com/attendhub/attend-backend-go/internal/repository/postgresql"
	"github.com/attendhub/attend-backend-go/internal/service/assignment"
	authService "github.com/attendhub/attend-backend-go/internal/service/auth"
	leaveService "github.com/attendhub/attend-backend-go/internal/service/leave"
	overtimeService "github.com/attendhub/attend-backend-go/internal/service/overtime"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveAppRepo := postgresql.NewLeaveApplicationRepository(db)
	overtimeAppRepo := postgresql.NewOvertimeApplicationRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	assigner := assignment.NewAssigner(userRepo, departmentRepo)
	authSvc := authService.NewAuthService(userRepo, JWTService)
	leaveSvc := leaveService.NewService(leaveTypeRepo, leaveAppRepo, assigner)
	overtimeSvc := overtimeService.NewService(overtimeAppRepo, assigner)

	authHandler := appHTTP.NewAuthHandler(authSvc, JWTService)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc, userRepo)
	overtimeHandler := appHTTP.NewOvertimeHandler(overtimeSvc, userRepo)

	router := appHTTP.NewRouter(cfg, JWTService, authHandler, leaveHandler, overtimeHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
