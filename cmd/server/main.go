package main

import (
	"context"
	"log"
	"time"

	"paperbase/internal/authz/engine"
	"paperbase/internal/config"
	"paperbase/internal/db"
	"paperbase/internal/document"
	healthhandler "paperbase/internal/health/handler"
	identityservice "paperbase/internal/identity/service"
	"paperbase/internal/logs"
	"paperbase/internal/platform/rbac"
	"paperbase/internal/security"
	"paperbase/internal/server"
	"paperbase/internal/server/handler"
	"paperbase/internal/session"
	"paperbase/internal/telemetry/otel"
	"paperbase/internal/tenant"
	tenantservice "paperbase/internal/tenant/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logs.Init(logs.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}
	pool, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	providers, err := otel.NewProviders(context.Background(), cfg.OTLPEndpoint, "paperbase", cfg.OTLPInsecure)
	if err != nil {
		log.Fatalf("telemetry: %v", err)
	}
	providers.SetGlobal()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = providers.Shutdown(ctx)
	}()

	privateKey, err := security.ParsePrivateKey(cfg.JWTPrivateKey)
	if err != nil {
		log.Fatalf("JWT_PRIVATE_KEY: %v", err)
	}
	publicKey, err := security.ParsePublicKey(cfg.JWTPublicKey)
	if err != nil {
		log.Fatalf("JWT_PUBLIC_KEY: %v", err)
	}
	tokens := security.NewTokenProvider(privateKey, publicKey, cfg.JWTIssuer, cfg.JWTAudience, cfg.SessionTTL())
	hasher := security.NewHasher(cfg.BcryptCost)
	sessions := session.NewManager(tokens, cfg.IsProduction())

	authorizer, err := engine.NewOPAEvaluator()
	if err != nil {
		log.Fatalf("access policy: %v", err)
	}

	blobs, err := document.NewBlobStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("blob store: %v", err)
	}

	store := tenant.NewSQLStore(pool)
	lifecycle := tenantservice.New(store, hasher)
	auth := identityservice.NewAuthService(
		store.Users(), store.Memberships(), store.Companies(), hasher, tokens, authorizer)
	guard := rbac.NewGuard(store.Memberships(), authorizer)

	router := server.NewRouter(server.Deps{
		Auth:       handler.NewAuthHandler(auth, sessions),
		Companies:  handler.NewCompanyHandler(lifecycle, guard, blobs),
		Staff:      handler.NewStaffHandler(lifecycle, guard),
		Documents:  handler.NewDocumentHandler(store.Documents(), blobs, guard),
		Health:     healthhandler.NewHandler(pool),
		Sessions:   sessions,
		UploadsDir: cfg.UploadDir,
	})

	app := &server.App{Addr: cfg.HTTPAddr, Router: router}
	if err := app.Run(); err != nil {
		log.Fatalf("server: %v", err)
	}
}
