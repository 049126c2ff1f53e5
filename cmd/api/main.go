package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/extraccion-core/internal/infrastructure/secrets"
	httpRouter "github.com/jhoicas/extraccion-core/internal/interfaces/http"
	"github.com/jhoicas/extraccion-core/pkg/config"
	"github.com/jhoicas/extraccion-core/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	// Secrets Manager es opcional: sin AWS_SECRET_NAME la API de extracción
	// funciona igual, solo se omiten las rutas de configuración dinámica.
	var secretsManager *secrets.Manager
	if cfg.AWS.SecretName != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(cfg.AWS.Region),
		)
		if err != nil {
			log.Fatal().Err(err).Msg("configuración de AWS")
		}
		client := secretsmanager.NewFromConfig(awsCfg)
		secretsManager = secrets.NewManager(client, cfg.AWS.SecretName, cfg.AWS.CacheTTL())
		log.Info().
			Str("secret", cfg.AWS.SecretName).
			Str("region", cfg.AWS.Region).
			Msg("secrets manager habilitado")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(log),
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		Log:     log,
		Secrets: secretsManager,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("servidor detenido")
}
