package main

import (
	"log"

	"storefront/internal/config"
	"storefront/internal/domain/model"
	"storefront/internal/handler"
	"storefront/internal/infra/db"
	infraRepo "storefront/internal/infra/repository"
	"storefront/internal/server"
	"storefront/internal/usecase"
	"storefront/internal/validator"

	"github.com/joho/godotenv"
)

func main() {
	//.envは無くても起動できる（本番は環境変数で渡す）
	_ = godotenv.Load()

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
		&model.User{},
		&model.Product{},
		&model.ProductOption{},
		&model.Cart{},
		&model.CartItem{},
		&model.Address{},
		&model.Order{},
		&model.OrderItem{},
		&model.Shipment{},
		&model.Invoice{},
		&model.AuditLog{},
	); err != nil {
		log.Fatal(err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	optionRepo := infraRepo.NewProductOptionGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	cartItemRepo := infraRepo.NewCartItemGormRepository(gormDB)
	addressRepo := infraRepo.NewAddressGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	orderItemRepo := infraRepo.NewOrderItemGormRepository(gormDB)
	shipmentRepo := infraRepo.NewShipmentGormRepository(gormDB)
	invoiceRepo := infraRepo.NewInvoiceGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//Validator生成
	checkoutValidator := validator.NewCheckoutValidator()
	authValidator := validator.NewAuthValidator(userRepo)

	//Usecase生成
	authUC := usecase.NewAuthUsecase(cfg, userRepo, authValidator)
	catalogueUC := usecase.NewCatalogueUsecase(productRepo, optionRepo)
	cartUC := usecase.NewCartUsecase(cartRepo, cartItemRepo, productRepo, optionRepo)
	checkoutUC := usecase.NewCheckoutUsecase(txManager, addressRepo, checkoutValidator)
	orderUC := usecase.NewOrderUsecase(txManager, orderRepo, orderItemRepo)
	shipmentUC := usecase.NewShipmentUsecase(txManager, shipmentRepo, orderRepo)
	invoiceUC := usecase.NewInvoiceUsecase(invoiceRepo, orderRepo)
	addressUC := usecase.NewAddressUsecase(addressRepo, checkoutValidator)
	auditUC := usecase.NewAuditUsecase(auditRepo)

	//Handler生成
	handlers := server.Handlers{
		Auth:          handler.NewAuthHandler(authUC),
		Product:       handler.NewProductHandler(catalogueUC),
		Cart:          handler.NewCartHandler(cartUC),
		Checkout:      handler.NewCheckoutHandler(checkoutUC),
		Order:         handler.NewOrderHandler(orderUC, shipmentUC, invoiceUC),
		Address:       handler.NewAddressHandler(addressUC),
		AdminProduct:  handler.NewAdminProductHandler(catalogueUC),
		AdminOrder:    handler.NewAdminOrderHandler(orderUC, shipmentUC, invoiceUC),
		AdminShipment: handler.NewAdminShipmentHandler(shipmentUC),
		AdminAudit:    handler.NewAdminAuditHandler(auditUC),
	}

	//Server起動
	e := server.New(cfg, handlers)
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
