package main

import (
	"CheerioGo/config"
	"CheerioGo/middleware"
	"CheerioGo/models"
	"CheerioGo/routes"
	"CheerioGo/services"
	"CheerioGo/utils"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func main() {
	// 初始化日志
	if err := config.InitLogger(); err != nil {
		log.Fatalf("无法初始化日志: %v", err)
	}
	defer config.Logger.Sync()

	// 加载配置
	conf, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("无法加载配置: %v", err)
		return
	}
	utils.InitJWT(conf)

	// 初始化数据库
	if err := config.InitDB(conf); err != nil {
		log.Fatalf("无法初始化数据库: %v", err)
		return
	}

	// 初始化Redis
	if err := config.InitRedis(conf); err != nil {
		log.Fatalf("无法初始化Redis: %v", err)
		return
	}

	// 装配健康分析与监测服务
	sampler := services.NewSyntheticSampler(time.Now().UnixNano())
	analysis := services.NewAnalysisService(conf, sampler)
	monitor := services.NewMonitorService(conf, analysis)
	monitor.Start()

	// 挑战引擎，完成时把积分落到用户表
	engine := services.NewChallengeEngine(services.RedisCompletionStore{})
	engine.OnPointsEarned(func(userID string, points int) {
		err := config.DB.Model(&models.User{}).Where("id = ?", userID).
			Update("total_points", gorm.Expr("total_points + ?", points)).Error
		if err != nil {
			config.Logger.Errorw("发放积分失败", "uid", userID, "points", points, "error", err)
		}
	})
	engine.OnChallengeCompleted(func(userID string, def models.ChallengeDefinition) {
		// 完成记录入库，活动数加一
		state := models.ChallengeState{
			UserID:      userID,
			ChallengeID: def.ID,
			Progress:    def.Target,
		}
		now := time.Now()
		state.CompletedAt = &now
		if err := config.DB.Create(&state).Error; err != nil {
			config.Logger.Warnw("保存挑战完成记录失败", "uid", userID, "challengeID", def.ID, "error", err)
		}
		err := config.DB.Model(&models.User{}).Where("id = ?", userID).
			Update("activities_completed", gorm.Expr("activities_completed + ?", 1)).Error
		if err != nil {
			config.Logger.Warnw("累积活动数失败", "uid", userID, "error", err)
		}
		config.Logger.Infow("挑战完成", "uid", userID, "challengeID", def.ID, "points", def.Points)
	})
	engine.Start()

	pets := services.NewPetService(time.Now().UnixNano())

	// 订阅用户资料变更广播
	subCtx, subCancel := context.WithCancel(context.Background())
	services.SubscribeUserUpdates(subCtx, monitor)

	// 设置Gin模式
	if conf.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建Gin引擎
	r := gin.Default()

	// 设置中间件
	middleware.SetupMiddleware(r)

	// 注册路由
	routes.RegisterRoutes(r, analysis, monitor, engine, pets, services.GormStateStore{})

	// 创建HTTP服务器
	srv := &http.Server{
		Addr:    ":" + conf.ServerPort,
		Handler: r,
	}

	// 在goroutine中启动服务器
	go func() {
		log.Printf("启动服务器，监听端口: %s", conf.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("服务器启动失败: %v", err)
		}
	}()

	// 等待中断信号以实现优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("正在关闭服务器...")

	// 创建超时上下文
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 优雅关闭服务器
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务器关闭失败: %v", err)
	}

	log.Println("服务器已关闭")

	// 等待后台循环退出
	log.Println("正在等待所有后台任务完成...")
	subCancel()
	engine.Stop()
	monitor.Stop()
	engine.Wait()
	monitor.Wait()
	log.Println("所有后台任务已完成")
}
