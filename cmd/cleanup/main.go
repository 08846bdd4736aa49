package main

import (
	"flag"
	"time"

	"bookinghub/internal/config"
	"bookinghub/internal/database"
	"bookinghub/internal/domain/booking"
	"bookinghub/internal/domain/notification"
	"bookinghub/internal/pkg/logger"

	"github.com/rs/zerolog/log"
)

// cleanup removes read notifications and soft-deleted bookings older than the retention window.
func main() {
	retention := flag.Duration("retention", 90*24*time.Hour, "age after which read notifications and deleted bookings are purged")
	dryRun := flag.Bool("dry-run", false, "count rows without deleting")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	logger.Setup(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}

	cutoff := time.Now().UTC().Add(-*retention)

	notifications := db.Where("is_read = ? AND created_at < ?", true, cutoff)
	bookings := db.Unscoped().Where("deleted_at IS NOT NULL AND deleted_at < ?", cutoff)

	if *dryRun {
		var n, b int64
		if err := notifications.Model(&notification.Notification{}).Count(&n).Error; err != nil {
			log.Fatal().Err(err).Msg("count notifications failed")
		}
		if err := bookings.Model(&booking.Booking{}).Count(&b).Error; err != nil {
			log.Fatal().Err(err).Msg("count bookings failed")
		}
		log.Info().Int64("notifications", n).Int64("bookings", b).Time("cutoff", cutoff).Msg("cleanup dry run")
		return
	}

	res1 := notifications.Delete(&notification.Notification{})
	if res1.Error != nil {
		log.Fatal().Err(res1.Error).Msg("cleanup notifications failed")
	}

	res2 := bookings.Delete(&booking.Booking{})
	if res2.Error != nil {
		log.Fatal().Err(res2.Error).Msg("cleanup bookings failed")
	}

	log.Info().
		Int64("notifications", res1.RowsAffected).
		Int64("bookings", res2.RowsAffected).
		Time("cutoff", cutoff).
		Msg("cleanup completed")
}
