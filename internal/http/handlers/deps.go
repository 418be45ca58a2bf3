package handlers

import (
	applog "soukel/internal/log"
	"soukel/internal/services"
	"soukel/internal/store"
)

type Deps struct {
	ListingHandler *ListingHandler
	PostHandler    *PostHandler
	AdminHandler   *AdminHandler
}

func NewDeps(st store.Store, auth *services.AuthService, log *applog.Logger) *Deps {
	listings := services.NewListingService(st)
	return &Deps{
		ListingHandler: &ListingHandler{Listings: listings, Log: log},
		PostHandler:    &PostHandler{Listings: listings, Auth: auth, Log: log},
		AdminHandler:   &AdminHandler{Listings: listings, Log: log},
	}
}
