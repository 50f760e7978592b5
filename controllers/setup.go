package controllers

import (
	"github.com/Lakshay1509/carheroz-tracker/services"
	"gorm.io/gorm"
)

var (
	recordStore   *services.RecordStore
	batchComposer *services.BatchComposer
)

// Setup wires the controllers to a database handle. Called once at startup,
// and by tests that bring their own database.
func Setup(db *gorm.DB) {
	recordStore = services.NewRecordStore(db)
	batchComposer = services.NewBatchComposer(recordStore)
}

// StartSchedulers launches the background jobs that depend on Setup.
func StartSchedulers() {
	batchComposer.StartCleanup()
}
