// 管理工具：在线下为园区登记故人档案或开设访客账号。
// 与服务进程共用同一份配置与存储。
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/hanulpark/portal/config"
	"github.com/hanulpark/portal/internal/model"
	"github.com/hanulpark/portal/internal/repository"
	"github.com/hanulpark/portal/pkg/database"
	"github.com/hanulpark/portal/pkg/logger"
)

func main() {
	var (
		deceasedName = flag.String("deceased", "", "deceased name to register")
		location     = flag.String("location", "", "plot location, e.g. D-9")
		mapURL       = flag.String("map-url", "", "static map image path, e.g. /location_maps/d9.png")
		mapFile      = flag.String("map-file", "", "image file to store in the map binary column")
		username     = flag.String("username", "", "visitor account to create")
		password     = flag.String("password", "", "password for the new account")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := logger.Init(cfg.Server.Mode); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	defer database.Close(db)
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	ctx := context.Background()

	if *deceasedName != "" {
		d := &model.Deceased{Name: *deceasedName, Location: *location, ImageURL: *mapURL}
		if *mapFile != "" {
			data, err := os.ReadFile(*mapFile)
			if err != nil {
				log.Fatalf("read map file: %v", err)
			}
			d.MapImage = data
			d.MapImageType = http.DetectContentType(data)
			d.ImageURL = ""
		}
		if err := repository.NewDeceasedRepository(db).Create(ctx, d); err != nil {
			log.Fatalf("create deceased record: %v", err)
		}
		log.Printf("registered %q at %q (id=%d)", d.Name, d.Location, d.ID)
	}

	if *username != "" {
		if *password == "" {
			log.Fatal("-password is required with -username")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("hash password: %v", err)
		}
		u := &model.User{Username: *username, Password: string(hash)}
		if err := repository.NewUserRepository(db).Create(ctx, u); err != nil {
			log.Fatalf("create user: %v", err)
		}
		log.Printf("created user %q (id=%d)", u.Username, u.ID)
	}

	if *deceasedName == "" && *username == "" {
		flag.Usage()
	}
}
