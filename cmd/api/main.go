package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"certificate-hub/certificate-hub-backend/internal/api"
	"certificate-hub/certificate-hub-backend/internal/certificates"
	"certificate-hub/certificate-hub-backend/internal/config"
	"certificate-hub/certificate-hub-backend/pkg/pdf"
	"certificate-hub/certificate-hub-backend/pkg/storage"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.json"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// AWS clients
	awsOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWS.Region),
	}
	if cfg.AWS.AccessKeyID != "" {
		awsOpts = append(awsOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWS.AccessKeyID, cfg.AWS.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsOpts...)
	if err != nil {
		logger.Fatal("Failed to load AWS config", zap.Error(err))
	}

	dynamoClient := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.AWS.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.AWS.Endpoint)
		}
	})
	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.AWS.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.AWS.Endpoint)
			o.UsePathStyle = true
		}
	})

	// ---------------- CERTIFICATES ----------------
	rendererOpts := []pdf.Option{pdf.WithTimeout(cfg.Renderer.Timeout)}
	if cfg.Renderer.ChromePath != "" {
		rendererOpts = append(rendererOpts, pdf.WithChromePath(cfg.Renderer.ChromePath))
	}
	if cfg.Renderer.NoSandbox {
		rendererOpts = append(rendererOpts, pdf.WithNoSandbox())
	}
	renderer := pdf.NewChromeRenderer(rendererOpts...)

	store := storage.NewS3Store(s3Client, cfg.Certificates.Bucket, cfg.AWS.Region, cfg.AWS.Endpoint)
	repo := certificates.NewRepository(dynamoClient, cfg.Certificates.Table)

	var serviceOpts []certificates.ServiceOption
	if cfg.Renderer.DebugPath != "" {
		serviceOpts = append(serviceOpts, certificates.WithDebugPath(cfg.Renderer.DebugPath))
	}
	service := certificates.NewService(repo, store, renderer, logger, serviceOpts...)
	handler := certificates.NewHandler(service, logger)

	// Setup Router
	router := gin.Default()
	router.Use(api.CORS())
	router.Use(api.RequestID())

	v1 := router.Group("/api/v1")
	{
		handler.RegisterRoutes(v1)
	}

	// ---------------- PING ----------------
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "API alive!"})
	})

	// Start Server
	srv := &http.Server{
		Addr:         cfg.Server.GetServerAddr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	logger.Info("Server started", zap.String("addr", srv.Addr))

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}
