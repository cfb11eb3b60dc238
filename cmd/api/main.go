package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/absenta/attendance-backend-go/internal/config"
	appHTTP "github.com/absenta/attendance-backend-go/internal/handler/http"
	"github.com/absenta/attendance-backend-go/internal/pkg/cron"
	"github.com/absenta/attendance-backend-go/internal/pkg/database"
	"github.com/absenta/attendance-backend-go/internal/pkg/jwt"
	"github.com/absenta/attendance-backend-go/internal/pkg/oauth"
	"github.com/absenta/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/absenta/attendance-backend-go/internal/service/attendance"
	authService "github.com/absenta/attendance-backend-go/internal/service/auth"
	reportService "github.com/absenta/attendance-backend-go/internal/service/report"
	settingService "github.com/absenta/attendance-backend-go/internal/service/setting"
	userService "github.com/absenta/attendance-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	location, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Fatal("Invalid APP_TIMEZONE: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	settingRepo := postgresql.NewSettingRepository(db)
	activityRepo := postgresql.NewActivityRepository(db)
	jwtRepo := postgresql.NewJWTRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	settingSvc := settingService.NewSettingService(settingRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, userRepo, activityRepo, settingSvc, location)
	reportSvc := reportService.NewReportService(attendanceRepo, userRepo, location)
	authSvc := authService.NewAuthService(db, userRepo, jwtService, jwtRepo)
	userSvc := userService.NewUserService(userRepo)

	authHandler := appHTTP.NewAuthHandler(jwtService, authSvc, googleService, cfg.App.FrontendURL)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	settingHandler := appHTTP.NewSettingHandler(settingSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)
	userHandler := appHTTP.NewUserHandler(userSvc)

	scheduler := cron.NewScheduler()
	attendanceJobs := cron.NewAttendanceJobs(attendanceRepo, userRepo, location)
	attendanceJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AppName:        "absenta",
			AppVersion:     "v1.0.0",
			AppEnv:         cfg.App.Env,
			AllowedOrigins: cfg.App.AllowedOrigins,
		},
		jwtService,
		authHandler,
		attendanceHandler,
		settingHandler,
		reportHandler,
		userHandler,
	)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	log.Println("Listening on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server error: ", err)
	}
}
