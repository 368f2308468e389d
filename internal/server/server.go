package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/billfold/billfold/internal/config"
	obslogger "github.com/billfold/billfold/internal/observability/logger"
	obstracing "github.com/billfold/billfold/internal/observability/tracing"
	"github.com/billfold/billfold/internal/user"
	userdomain "github.com/billfold/billfold/internal/user/domain"
	"github.com/billfold/billfold/internal/wallet"
	walletdomain "github.com/billfold/billfold/internal/wallet/domain"
	"github.com/billfold/billfold/pkg/eventbus"
)

var Module = fx.Module("http.server",
	eventbus.Module,
	user.Module,
	wallet.Module,
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server) { s.RegisterAPIRoutes() }),
	fx.Invoke(RunHTTP),
)

func NewEngine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware())
	r.Use(obstracing.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

type Server struct {
	engine    *gin.Engine
	cfg       config.Config
	db        *gorm.DB
	userSvc   userdomain.Service
	walletSvc walletdomain.Service
}

type ServerParams struct {
	fx.In

	Gin       *gin.Engine
	Cfg       config.Config
	DB        *gorm.DB
	UserSvc   userdomain.Service
	WalletSvc walletdomain.Service
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:    p.Gin,
		cfg:       p.Cfg,
		db:        p.DB,
		userSvc:   p.UserSvc,
		walletSvc: p.WalletSvc,
	}
}

func (s *Server) RegisterAPIRoutes() {
	v1 := s.engine.Group("/v1")

	users := v1.Group("/users")
	users.POST("", s.CreateUser)
	users.GET("", s.ListUsers)
	users.GET("/:id", s.GetUser)
	users.DELETE("/:id", s.DeleteUser)
	users.GET("/:id/wallet", s.GetWallet)
	users.POST("/:id/wallet/credit", s.CreditWallet)
	users.POST("/:id/wallet/debit", s.DebitWallet)

	if s.cfg.Environment != "production" {
		v1.POST("/test/cleanup", s.TestCleanup)
	}
}

func RunHTTP(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
