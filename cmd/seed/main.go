package main

import (
	"fmt"
	"time"

	"bookinghub/internal/config"
	"bookinghub/internal/database"
	"bookinghub/internal/domain/auth"
	"bookinghub/internal/domain/booking"
	"bookinghub/internal/domain/facility"
	"bookinghub/internal/pkg/logger"
	"bookinghub/internal/server"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	logger.Setup(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("DB connection failed")
	}
	if err := database.Migrate(db, server.Models()...); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	// Cleanup old data in dependency order.
	log.Info().Msg("cleaning old data")
	for _, table := range []string{"notifications", "bookings", "resources", "facilities", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Fatal().Err(err).Str("table", table).Msg("cleanup failed")
		}
	}

	if err := db.Transaction(seed); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
	log.Info().Msg("seed completed")
}

func seed(tx *gorm.DB) error {
	operator, err := createUser(tx, "operator@bookinghub.local", "operator123", auth.RoleOperator, "Facility Operator")
	if err != nil {
		return err
	}
	log.Info().Str("email", operator.Email).Msg("operator created (password operator123)")

	var clients []*auth.User
	for i, email := range []string{"alice@mail.local", "bob@mail.local", "carol@mail.local"} {
		u, err := createUser(tx, email, "client123", auth.RoleClient, fmt.Sprintf("Client %d", i+1))
		if err != nil {
			return err
		}
		clients = append(clients, u)
	}
	log.Info().Int("count", len(clients)).Msg("clients created (password client123)")

	arena := &facility.Facility{
		OwnerID:          operator.ID,
		Name:             "City Sports Arena",
		Address:          "12 Stadium Road",
		DailyStart:       "08:00",
		DailyEnd:         "22:00",
		UTCOffsetMinutes: 300,
	}
	if err := tx.Create(arena).Error; err != nil {
		return fmt.Errorf("create facility: %w", err)
	}

	var courts []facility.Resource
	for i := 1; i <= 3; i++ {
		r := facility.Resource{FacilityID: arena.ID, OwnerID: operator.ID, Name: fmt.Sprintf("Court %d", i)}
		if err := tx.Create(&r).Error; err != nil {
			return fmt.Errorf("create resource: %w", err)
		}
		courts = append(courts, r)
	}
	log.Info().Int64("facility_id", arena.ID).Int("resources", len(courts)).Msg("facility created")

	hours, err := arena.Hours()
	if err != nil {
		return err
	}
	y, m, d := time.Now().In(hours.Location).AddDate(0, 0, 1).Date()
	tomorrow := time.Date(y, m, d, 0, 0, 0, 0, hours.Location)

	bookings := []booking.Booking{
		{ResourceID: courts[0].ID, StartTime: tomorrow.Add(10 * time.Hour), EndTime: tomorrow.Add(11*time.Hour + 30*time.Minute), Status: booking.StatusAccepted, CreatedBy: clients[0].ID, UpdatedBy: operator.ID, FullName: clients[0].Name},
		{ResourceID: courts[1].ID, StartTime: tomorrow.Add(10 * time.Hour), EndTime: tomorrow.Add(12 * time.Hour), Status: booking.StatusPending, CreatedBy: clients[1].ID, UpdatedBy: clients[1].ID, FullName: clients[1].Name},
		{ResourceID: courts[0].ID, StartTime: tomorrow.Add(18 * time.Hour), EndTime: tomorrow.Add(19 * time.Hour), Status: booking.StatusPending, CreatedBy: clients[2].ID, UpdatedBy: clients[2].ID, FullName: clients[2].Name},
	}
	for i := range bookings {
		bookings[i].StartTime = bookings[i].StartTime.UTC()
		bookings[i].EndTime = bookings[i].EndTime.UTC()
		if err := tx.Create(&bookings[i]).Error; err != nil {
			return fmt.Errorf("create booking: %w", err)
		}
	}
	log.Info().Int("count", len(bookings)).Msg("bookings created")
	return nil
}

func createUser(tx *gorm.DB, email, password string, role auth.UserRole, name string) (*auth.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &auth.User{Email: email, PasswordHash: string(hash), Role: role, Name: name}
	if err := tx.Create(u).Error; err != nil {
		return nil, fmt.Errorf("create user %s: %w", email, err)
	}
	return u, nil
}
