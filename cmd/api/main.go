package main

import (
	"log"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/server"
	"app/internal/usecase"
	"app/internal/validator"

	"github.com/joho/godotenv"
)

func main() {
	//.envは無くても環境変数があれば動く
	if err := godotenv.Load(".env"); err != nil {
		log.Println(".env not loaded:", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		log.Fatal(err)
	}
	if err := gormDB.AutoMigrate(
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.User{},
	); err != nil {
		log.Fatal(err)
	}

	//セッションカート用Redis
	rdb := db.ConnectRedis()

	//Repository（GORM/Redis実装）生成
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	cartStore := infraRepo.NewCartRedisStore(rdb)

	//Validator生成
	checkoutV := validator.NewCheckoutValidator()
	authV := validator.NewAuthValidator(userRepo)

	//Usecase生成
	productUC := usecase.NewProductUsecase(productRepo)
	cartUC := usecase.NewCartUsecase(productRepo)
	checkoutUC := usecase.NewCheckoutUsecase(productRepo, orderRepo, checkoutV)
	adminOrderUC := usecase.NewAdminOrderUsecase(orderRepo)
	authUC := usecase.NewAuthUsecase(cfg, userRepo, authV)

	//Handler生成
	productH := handler.NewProductHandler(productUC)
	cartH := handler.NewCartHandler(cartUC, cartStore)
	orderH := handler.NewOrderHandler(checkoutUC, cartStore)
	authH := handler.NewAuthHandler(authUC)
	adminProductH := handler.NewAdminProductHandler(productUC)
	adminOrderH := handler.NewAdminOrderHandler(adminOrderUC)

	e := server.New()
	server.RegisterRoutes(e, cfg, productH, cartH, orderH, authH, adminProductH, adminOrderH)

	log.Fatal(e.Start(":" + cfg.Port))
}
