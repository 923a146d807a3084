package handlers

import (
	"socialite-server/db"
	"socialite-server/storage"
	"socialite-server/tasks"
)

// Api bundles the injected collaborators. One instance is constructed at
// startup and its methods are registered as route handlers.
type Api struct {
	store     *db.Store
	uploader  *storage.Uploader
	scheduler *tasks.Scheduler
}

func NewApi(store *db.Store, uploader *storage.Uploader, scheduler *tasks.Scheduler) *Api {
	return &Api{
		store:     store,
		uploader:  uploader,
		scheduler: scheduler,
	}
}
