package database

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/hanulpark/portal/config"
	"github.com/hanulpark/portal/internal/model"
	"github.com/hanulpark/portal/pkg/logger"
)

// InitDB 按配置选择驱动建立连接：sqlite 走本地文件，postgres 走 DSN。
// 连接池参数两种驱动统一应用。
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Database.Driver {
	case "sqlite":
		if err := ensureDir(cfg.Database.Path); err != nil {
			return nil, fmt.Errorf("ensure database dir: %w", err)
		}
		// WAL + busy_timeout：多个请求读写同一文件库时避免立刻报锁冲突
		dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000", cfg.Database.Path)
		db, err = gorm.Open(sqlite.Open(dsn), gormCfg)
	case "postgres":
		db, err = gorm.Open(postgres.Open(cfg.Database.DSN), gormCfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	logger.Info("database connected")
	return db, nil
}

// Migrate 建表（photos 的 (user_id, slot_number) 复合唯一键由模型标签声明）
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Photo{},
		&model.Deceased{},
		&model.GuestbookPost{},
	)
}

// Seed 写入缺省数据：admin 账号与一条故人档案。已存在则跳过。
func Seed(db *gorm.DB) error {
	var cnt int64
	if err := db.Model(&model.User{}).Where("username = ?", "admin").Count(&cnt).Error; err != nil {
		return err
	}
	if cnt == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		if err := db.Create(&model.User{Username: "admin", Password: string(hash)}).Error; err != nil {
			return err
		}
		logger.Info("default admin user created")
	}

	if err := db.Model(&model.Deceased{}).Where("name = ?", "고인").Count(&cnt).Error; err != nil {
		return err
	}
	if cnt == 0 {
		d := &model.Deceased{Name: "고인", Location: "D-9", ImageURL: "/location_maps/d9.png"}
		if err := db.Create(d).Error; err != nil {
			return err
		}
		logger.Info("seeded deceased record")
	}
	return nil
}

// Close 排空连接池
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
