// 创建或提升管理员账号
//
// 邮箱已注册时将其角色改为 admin，否则新建一个 admin 账号。
//
// 用法: go run scripts/create_admin.go -email admin@skypath.kr -password <密码> -name 관리자

package main

import (
	"context"
	"flag"
	"log"
	"time"

	"skypath_backend/internal/config"
	"skypath_backend/internal/repository"
	"skypath_backend/internal/service"
	"skypath_backend/pkg/database"
	"skypath_backend/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	email := flag.String("email", "", "管理员邮箱")
	password := flag.String("password", "", "新建账号时使用的密码")
	name := flag.String("name", "Administrator", "新建账号时使用的名称")
	configDir := flag.String("config", "configs", "配置文件所在目录")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("-email 与 -password 必填")
	}

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	auth := service.NewAuthService(repository.NewUserRepository(db), cfg)
	user, created, err := auth.EnsureAdmin(ctx, *email, *password, *name)
	if err != nil {
		log.Fatalf("创建管理员失败: %v", err)
	}

	if created {
		logger.Log.Info("Admin account created", zap.String("email", user.Email), zap.String("id", user.ID))
	} else {
		logger.Log.Info("Existing account upgraded to admin", zap.String("email", user.Email), zap.String("id", user.ID))
	}
}
