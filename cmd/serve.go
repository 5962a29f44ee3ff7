package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"BlockJack/config"
	"BlockJack/internal/auth"
	"BlockJack/internal/game/manager"
	"BlockJack/internal/lobby"
	"BlockJack/internal/middleware"
	"BlockJack/internal/storage"
	"BlockJack/internal/utils"
	"BlockJack/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type ServeCmd struct {
	Port string `help:"Listen address, overrides server.port"`
}

func (s *ServeCmd) Run(cli *CLI) error {
	logger := utils.Init(config.C.Log.Level, os.Stderr)
	if s.Port != "" {
		config.C.Server.Port = s.Port
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//-------------------------------------------------------
	// 1. 大厅存储：配置了 Redis 就用 Redis，否则内存
	//-------------------------------------------------------
	repo := lobby.NewMemoryRepo()
	if config.C.Redis.Addr != "" {
		rdb, err := storage.NewRedis(ctx, config.C.Redis.Addr, config.C.Redis.Password, config.C.Redis.DB)
		if err != nil {
			return err
		}
		defer rdb.Close()
		repo = lobby.NewRedisRepo(rdb)
		logger.Info("lobby backed by redis", "addr", config.C.Redis.Addr)
	}

	//-------------------------------------------------------
	// 2. Hub，OnIncoming 挂好后再 Run
	//-------------------------------------------------------
	hub := websocket.NewHub()

	//-------------------------------------------------------
	// 3. GameManager + Lobby
	//-------------------------------------------------------
	mgr := manager.NewGameManager(hub,
		manager.WithSourceFactory(sourceFactory(config.C.Game.Seed)),
		manager.WithReshuffleThreshold(config.C.Game.ReshuffleThreshold),
	)
	hub.OnIncoming = mgr.HandlePlayerMessage
	go hub.Run()
	defer hub.Close()

	svc := lobby.NewService(repo, config.C.Server.SessionTTL, config.C.Game.StartingBalance, hub)
	svc.OnTableReady = mgr.StartTable
	svc.OnLeave = func(addr string) {
		if done := mgr.StopSession(addr); done != nil {
			<-done
		}
	}
	mgr.OnSessionEnd = func(addr string, balance int) {
		logger.Info("session end", "address", addr, "balance", balance)
		if err := svc.Release(context.Background(), addr); err != nil {
			logger.Warn("release seat", "address", addr, "err", err)
		}
	}

	//-------------------------------------------------------
	// 4. Gin + CORS + 路由
	//-------------------------------------------------------
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "tables": len(mgr.Sessions())})
	})

	secret := []byte(config.C.JWT.Secret)
	ah := auth.NewHandler(secret)
	authGroup := r.Group("/auth")
	{
		authGroup.GET("/nonce", ah.Nonce)
		authGroup.POST("/login", ah.Login)
	}

	lh := lobby.NewHandler(svc)
	protected := r.Group("/", middleware.JwtAuthMiddleware(secret))
	{
		protected.GET("/ws", websocket.ServeWS(hub))
		protected.POST("/table/join", lh.Join)
		protected.POST("/table/leave", lh.Leave)
		protected.GET("/table", lh.Current)
		protected.GET("/table/state", func(c *gin.Context) {
			snap, ok := mgr.Snapshot(c.GetString("address"))
			if !ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "no running table"})
				return
			}
			c.JSON(http.StatusOK, snap)
		})
	}

	//-------------------------------------------------------
	// 5. 启动服务器，收到信号后优雅退出
	//-------------------------------------------------------
	srv := &http.Server{Addr: config.C.Server.Port, Handler: r}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server running", "addr", config.C.Server.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	mgr.Shutdown()
	return srv.Shutdown(shutdownCtx)
}
