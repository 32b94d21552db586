package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/kingieX/MediRoute-sub000/config"
	"github.com/kingieX/MediRoute-sub000/internal/api/handler"
	"github.com/kingieX/MediRoute-sub000/internal/api/router"
	"github.com/kingieX/MediRoute-sub000/internal/queue"
	"github.com/kingieX/MediRoute-sub000/internal/repository"
	"github.com/kingieX/MediRoute-sub000/internal/service"
	"github.com/kingieX/MediRoute-sub000/internal/ws"
	"github.com/kingieX/MediRoute-sub000/pkg/database"
	applogger "github.com/kingieX/MediRoute-sub000/pkg/logger"
	"github.com/kingieX/MediRoute-sub000/pkg/redis"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 连接数据库
	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}

	// 3.1 执行数据库迁移
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}

	// 4. 连接 Redis（轮转游标存储；与任务队列共用实例）
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Fatal("Redis 连接失败", zap.Error(err))
	}

	// 5. 事件广播中心
	hub := ws.NewHub(logger)
	go hub.Run()

	// 6. 任务队列客户端
	queueClient := queue.NewClient(&cfg.Redis, &cfg.Queue, logger)

	// 7. 依赖注入: Repository → Service → Handler
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, rdb, queueClient, hub, logger)
	h := handler.NewHandler(svc, hub)

	// 8. 排班 Worker（消费端）
	worker := queue.NewWorker(&cfg.Redis, &cfg.Queue, svc.Assignment, logger)
	go func() {
		if err := worker.Run(); err != nil {
			logger.Fatal("排班 Worker 异常退出", zap.Error(err))
		}
	}()

	// 9. 每日排班调度：启动时为每个科室注册重复任务
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	asynqScheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{})
	dailyScheduler := queue.NewDailyScheduler(asynqScheduler, repo.Department, &cfg.Queue, logger)

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	if err := dailyScheduler.ScheduleAllDepartments(startupCtx); err != nil {
		// 单科室注册失败不致命，聚合错误只记日志
		logger.Error("部分科室排班调度注册失败", zap.Error(err))
	}
	cancelStartup()

	if err := asynqScheduler.Start(); err != nil {
		logger.Fatal("启动排班调度器失败", zap.Error(err))
	}

	// 10. 初始化路由并启动 HTTP 服务器（优雅关闭）
	engine := router.Setup(cfg, h, logger)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 11. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	// 停止调度与消费端（等待在途任务完成）
	asynqScheduler.Shutdown()
	worker.Shutdown()

	// 关闭队列客户端、Redis 与数据库连接
	if err := queueClient.Close(); err != nil {
		logger.Warn("关闭队列客户端异常", zap.Error(err))
	}
	if err := rdb.Close(); err != nil {
		logger.Warn("关闭 Redis 连接异常", zap.Error(err))
	}
	if closeDB, _ := db.DB(); closeDB != nil {
		closeDB.Close()
	}

	logger.Info("服务器已关闭")
}
