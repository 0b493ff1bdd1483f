package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"
	"time"

	"shoguntrade/internal/handlers/business"
	"shoguntrade/pkg/config"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

func accrue(ctx context.Context, day time.Time) {
	summary, err := business.RunAccrual(ctx, config.DB, day)
	if err != nil {
		log.Errorf("Daily accrual for %s failed: %v", day.Format("2006-01-02"), err)
		return
	}
	if summary.Skipped {
		log.Infof("Daily accrual skipped for %s (weekend)", summary.Day)
	}
}

// accrualDay is the day a run at now accrues: the calendar day that has
// just ended, so a run shortly after midnight covers a complete day.
func accrualDay(now time.Time) time.Time {
	return business.DateOnly(now.AddDate(0, 0, -1))
}

func main() {
	once := flag.String("date", "", "run accrual once for YYYY-MM-DD and exit")
	flag.Parse()

	config.LoadEnv()
	config.InitLogger("logs/accrual.log")
	log.Info("> Initializing accrual scheduler...")

	config.InitDB()

	if *once != "" {
		day, err := time.Parse("2006-01-02", *once)
		if err != nil {
			log.Fatalf("Invalid -date %q: %v", *once, err)
		}
		accrue(context.Background(), day)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := cron.New(cron.WithSeconds())
	spec := config.GetEnv("ACCRUAL_CRON", "0 0 1 * * *")
	_, err := c.AddFunc(spec, func() {
		accrue(ctx, accrualDay(time.Now()))
	})
	if err != nil {
		log.Fatalf("> Failed to add accrual job: %v", err)
	}

	log.Infof("> Accrual job scheduled with %q", spec)
	c.Start()

	<-ctx.Done()
	<-c.Stop().Done()
	log.Info("> Accrual scheduler stopped")
}
