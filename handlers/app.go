package handlers

import (
	"boutiqueapi/config"
	"boutiqueapi/orders"
	"boutiqueapi/store"
)

// App bundles the dependencies the handlers need.
type App struct {
	Cfg   config.Config
	Store store.Store
	// Orders is the only component allowed to decrement stock. All other
	// handlers use the store's direct, last-write-wins methods.
	Orders *orders.Coordinator
}

// NewApp wires handlers over a store and the order coordinator.
func NewApp(cfg config.Config, st store.Store, coord *orders.Coordinator) *App {
	return &App{Cfg: cfg, Store: st, Orders: coord}
}
