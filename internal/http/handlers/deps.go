package handlers

import (
	"time"

	"github.com/jmoiron/sqlx"

	"phonelister/internal/config"
	"phonelister/internal/events"
	applog "phonelister/internal/log"
	"phonelister/internal/locks"
	"phonelister/internal/repos"
	"phonelister/internal/services"
)

type Deps struct {
	PhoneHandler     *PhoneHandler
	ListingHandler   *ListingHandler
	ImportHandler    *ImportHandler
	LogHandler       *LogHandler
	InventoryHandler *InventoryHandler
	AdminHandler     *AdminHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, locker locks.Locker, pub events.Publisher) *Deps {
	phoneRepo := repos.NewPhoneRepo(db)
	logRepo := repos.NewListingLogRepo(db)
	loc := displayLocation(cfg.DisplayTZ)

	phoneSvc := services.NewPhoneService(phoneRepo)
	listingSvc := services.NewListingService(phoneRepo, logRepo, locker, pub)
	importSvc := services.NewImportService(phoneRepo)
	auditSvc := services.NewAuditService(logRepo, cfg.LogLimit, loc)
	invSvc := services.NewInventoryService(phoneRepo)

	return &Deps{
		PhoneHandler:     &PhoneHandler{Phones: phoneSvc, Loc: loc},
		ListingHandler:   &ListingHandler{Listing: listingSvc},
		ImportHandler:    &ImportHandler{Import: importSvc},
		LogHandler:       &LogHandler{Audit: auditSvc, Loc: loc},
		InventoryHandler: &InventoryHandler{Inv: invSvc},
		AdminHandler:     &AdminHandler{Phones: phoneSvc, Listing: listingSvc, Loc: loc},
	}
}

func displayLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		applog.Logger().WithError(err).WithField("tz", name).Warn("config.display_tz.invalid")
		return time.UTC
	}
	return loc
}
