package main

import (
	"context"
	"strconv"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/usecase"
	"app/internal/view"

	"github.com/golang-jwt/jwt/v4"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func (i *jwtIssuer) Issue(userID int64, role model.Role, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":  strconv.FormatInt(userID, 10),
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	logger := log.New("api")

	//.envが無い環境（本番）では環境変数だけで動く
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("config: %v", err)
	}

	//devだけ詳細ログ
	if cfg.GoEnv == "dev" {
		logger.SetLevel(log.DEBUG)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		logger.Fatalf("db connect: %v", err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Vendor{},
		&model.MenuItem{},
		&model.Location{},
		&model.Order{},
		&model.OrderItem{},
		&model.AuditLog{},
	); err != nil {
		logger.Fatalf("migrate: %v", err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	vendorRepo := infraRepo.NewVendorGormRepository(gormDB)
	menuItemRepo := infraRepo.NewMenuItemGormRepository(gormDB)
	locationRepo := infraRepo.NewLocationGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//カートはプロセス内メモリ
	cartStore := infraRepo.NewCartMemoryStore()

	//JWT issuer
	issuer := &jwtIssuer{
		secret: []byte(cfg.JWTSecret),
		//refresh token無しの構成なので長め
		accessTTL: 24 * time.Hour,
	}

	//Usecase生成
	authUC := usecase.NewAuthUsecase(userRepo, issuer)
	cartUC := usecase.NewCartUsecase(cartStore, vendorRepo, menuItemRepo)
	orderUC := usecase.NewOrderUsecase(txManager, cartStore)
	vendorOrderUC := usecase.NewVendorOrderUsecase(txManager, vendorRepo)
	adminOrderUC := usecase.NewAdminOrderUsecase(txManager, auditRepo)
	vendorUC := usecase.NewVendorUsecase(vendorRepo, menuItemRepo)
	locationUC := usecase.NewLocationUsecase(locationRepo)

	//管理画面の注文一覧は10秒間隔のポーリングで追従する
	adminLogView := view.NewAdminOrderLogView(adminOrderUC, logger)
	adminLogView.Start(context.Background())
	defer adminLogView.Stop()

	//Echo
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	if cfg.FEURL != "" {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins: []string{cfg.FEURL},
		}))
	}

	//Handler生成
	handler.NewAuthHandler(authUC).RegisterRoutes(e)
	handler.NewCartHandler(cartUC).RegisterRoutes(e, cfg)
	handler.NewOrderHandler(orderUC).RegisterRoutes(e, cfg)
	handler.NewVendorOrderHandler(vendorOrderUC).RegisterRoutes(e, cfg)
	handler.NewAdminOrderHandler(adminOrderUC, adminLogView).RegisterRoutes(e, cfg)
	handler.NewVendorHandler(vendorUC).RegisterRoutes(e, cfg)
	handler.NewLocationHandler(locationUC).RegisterRoutes(e, cfg)

	//Server起動
	addr := ":" + cfg.Port
	if cfg.Port[0] == ':' {
		addr = cfg.Port
	}

	if err := e.Start(addr); err != nil {
		logger.Fatalf("server: %v", err)
	}
}
