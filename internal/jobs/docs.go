// Package jobs provides scheduled background tasks that drain the transactional outbox.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. OutboxRelayJob - Runs every second, and on every outbox notification, to deliver
// restaurant and customer notifications and to publish order events
// 2. ReconciliationJob - Runs every 10 seconds to retry ledger side effects (delivery
// creation, cancellation and status changes) that were not settled inline
//
// # Usage
//
//	relay, _ := jobs.NewOutboxRelayJob(processHandler, jobs.OutboxJobConfig{BatchSize: 50, Lease: time.Minute}, logger)
//	reconciliation, _ := jobs.NewReconciliationJob(processHandler, jobs.OutboxJobConfig{BatchSize: 20, Lease: time.Minute}, logger)
//
//	jobManager := jobs.NewJobManager(relay, reconciliation, listener)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Failures of single messages are recorded on the messages by the command handler; the
// jobs only log failures to claim a batch. Several instances may run the jobs at the same
// time: claims use SELECT ... FOR UPDATE SKIP LOCKED and a lease.
package jobs
