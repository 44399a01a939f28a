package handlers

import (
	"itemshop/internal/config"
	"itemshop/internal/repos"
	"itemshop/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	Config         config.Config
	Auth           *services.AuthService
	ShopHandler    *ShopHandler
	AdminHandler   *AdminHandler
	AccountHandler *AccountHandler
	AuthHandler    *AuthHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, shops *services.ShopService) *Deps {
	userRepo := repos.NewUserRepo(db)
	profileRepo := repos.NewProfileRepo(db)

	authSvc := &services.AuthService{Users: userRepo}
	accountSvc := services.NewAccountService(userRepo, services.NewProfileTemplates(cfg.ProfilesDir))

	return &Deps{
		Config:         cfg,
		Auth:           authSvc,
		ShopHandler:    &ShopHandler{Shops: shops},
		AdminHandler:   &AdminHandler{Shops: shops},
		AccountHandler: &AccountHandler{Accounts: accountSvc, Profiles: profileRepo},
		AuthHandler:    &AuthHandler{Auth: authSvc},
	}
}
