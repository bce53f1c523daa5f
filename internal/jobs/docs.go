// Package jobs provides scheduled background tasks for the fulfillment service.
//
// Jobs use github.com/robfig/cron/v3 with a seconds field.
//
// # Available Jobs
//
// OverdueOrdersJob - logs a warning for every order that is neither DELIVERED nor
// CANCELLED and whose estimated delivery time has passed. Orders without an
// estimate are never reported. Runs on OVERDUE_ORDERS_SCHEDULE, every five
// minutes by default.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(overdueHandler, "0 */5 * * * *", logger)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed check is logged and retried at the next tick.
package jobs
