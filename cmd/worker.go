package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/adrianhartanto/timebill/internal/invoice"
	invoicepg "github.com/adrianhartanto/timebill/internal/invoice/postgres"
	"github.com/adrianhartanto/timebill/pkg/logger"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start background workers",
	Long:  `Start and manage background jobs like the overdue invoice sweep.`,
}

var overdueWorkerCmd = &cobra.Command{
	Use:   "overdue",
	Short: "Start the overdue invoice sweeper",
	Long:  `Periodically marks submitted invoices past their due date as overdue.`,
	Run: func(cmd *cobra.Command, args []string) {
		startOverdueWorker()
	},
}

var sweepInterval time.Duration

func init() {
	overdueWorkerCmd.Flags().DurationVar(&sweepInterval, "interval", time.Hour, "Time between overdue sweeps")
	workerCmd.AddCommand(overdueWorkerCmd)
}

// sweeper is the slice of the invoice service the worker needs.
type sweeper interface {
	SweepOverdue() (int64, error)
}

func startOverdueWorker() {
	cfg, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(os.Getenv("APP_ENV"))
	log := logger.LoggerWrapper()

	db, err := initDB(cfg.Database)
	if err != nil {
		log.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		log.Error("failed to initialize gorm", "error", err)
		os.Exit(1)
	}

	invoiceRepo := invoicepg.NewInvoiceRepository(gormDB, cfg.Billing.InvoiceNumberPrefix)
	svc := invoice.NewSweepService(invoiceRepo, log)

	log.Info("overdue sweeper started", "interval", sweepInterval.String())
	runSweepLoop(svc, log.With("worker", "overdue"))
}

func runSweepLoop(svc sweeper, log *slog.Logger) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Sweep once at startup so a restarted worker catches up immediately.
	if _, err := svc.SweepOverdue(); err != nil {
		log.Error("initial sweep failed", "error", err)
	}

	for {
		select {
		case <-ticker.C:
			if _, err := svc.SweepOverdue(); err != nil {
				log.Error("sweep failed", "error", err)
			}
		case sig := <-sigChan:
			log.Info("received signal, stopping sweeper", "signal", sig.String())
			return
		}
	}
}
