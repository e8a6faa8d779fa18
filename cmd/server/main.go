// Command server runs the customer API: a CRUD REST backend over customer
// records, gated by JWT bearer authentication.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skillsenselab/customer-api/auth"
	"github.com/skillsenselab/customer-api/auth/password"
	"github.com/skillsenselab/customer-api/auth/token"
	"github.com/skillsenselab/customer-api/config"
	"github.com/skillsenselab/customer-api/customers"
	"github.com/skillsenselab/customer-api/database"
	"github.com/skillsenselab/customer-api/logger"
	"github.com/skillsenselab/customer-api/server"
	"github.com/skillsenselab/customer-api/server/middleware"
	"github.com/skillsenselab/customer-api/users"
)

func main() {
	configFile := flag.String("config", "", "path to config.yml (optional; environment variables also apply)")
	flag.Parse()

	if err := run(*configFile); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func run(configFile string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	log := logger.New(cfg.Logging, cfg.Name)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	db, err := database.Open(connectCtx, cfg.Database, log)
	cancel()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.AutoMigrate(&users.User{}, &customers.Customer{}); err != nil {
		return err
	}

	tokens, err := token.NewService(cfg.Auth.Token)
	if err != nil {
		return err
	}
	hasher := password.NewBcryptHasher(password.WithCost(cfg.Auth.Password.BcryptCost))

	userStore := users.NewGormStore(db.Gorm)
	authSvc := auth.NewService(userStore, hasher, tokens, log)
	customerSvc := customers.NewService(db.Gorm, log)

	srv := server.New(cfg.Server, log)
	srv.ApplyMiddleware()
	srv.RegisterDefaultEndpoints(cfg.Name, db.Ping)

	engine := srv.Engine()
	auth.NewHandler(authSvc).Register(engine)

	protected := engine.Group("", middleware.Auth(tokens))
	customers.NewHandler(customerSvc).Register(protected)

	if err := srv.Start(ctx); err != nil {
		return err
	}

	log.Info("Service ready", map[string]interface{}{
		"addr":        srv.Addr(),
		"environment": cfg.Environment,
	})

	<-ctx.Done()
	stop()

	return srv.Stop(context.Background())
}
