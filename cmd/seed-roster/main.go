package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/troopdesk/troopdesk-backend/internal/config"
	"github.com/troopdesk/troopdesk-backend/internal/database"
	"github.com/troopdesk/troopdesk-backend/internal/logger"
	"github.com/troopdesk/troopdesk-backend/internal/model"
	"github.com/troopdesk/troopdesk-backend/internal/repository"
)

func main() {
	var path string
	flag.StringVar(&path, "file", "seed/roster.yaml", "Path to the roster fixture")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	file, err := os.Open(path)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open fixture")
	}
	fx, err := loadFixture(file)
	file.Close()
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("Invalid fixture")
	}

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	members := repository.NewMemberRepository(pool)
	activities := repository.NewActivityRepository(pool)
	records := repository.NewAttendanceRepository(pool)

	fmt.Printf("=== Seeding %d members, %d activities ===\n", len(fx.Members), len(fx.Activities))

	memberIDs := make(map[string]string, len(fx.Members))
	for _, mf := range fx.Members {
		m := &model.Member{
			Name:               mf.Name,
			GroupName:          mf.Group,
			Status:             mf.Status,
			Age:                mf.Age,
			JoinDate:           mf.JoinDate,
			ContactEmail:       mf.ContactEmail,
			ContactPhone:       mf.ContactPhone,
			ParentGuardianName: mf.ParentGuardianName,
		}
		if err := members.Create(ctx, m); err != nil {
			log.Fatal().Err(err).Str("member", mf.Name).Msg("Failed to create member")
		}
		memberIDs[mf.Name] = m.ID
	}

	activityIDs := make(map[string]string, len(fx.Activities))
	for _, af := range fx.Activities {
		a := &model.Activity{
			Title:       af.Title,
			Type:        af.Type,
			Date:        af.Date,
			Time:        af.Time,
			Location:    af.Location,
			Capacity:    af.Capacity,
			Description: af.Description,
		}
		if err := activities.Create(ctx, a); err != nil {
			log.Fatal().Err(err).Str("activity", af.Title).Msg("Failed to create activity")
		}
		activityIDs[af.Title] = a.ID
	}

	successCount := 0
	for _, rf := range fx.Attendance {
		_, err := records.Insert(ctx, model.NewAttendance{
			MemberID:   memberIDs[rf.Member],
			ActivityID: activityIDs[rf.Activity],
			Status:     rf.Status,
			Note:       rf.Note,
		})
		if err != nil {
			fmt.Printf("Error recording %s at %s: %v\n", rf.Member, rf.Activity, err)
			continue
		}
		successCount++
	}

	fmt.Printf("\nSeed completed! Recorded %d/%d attendance entries.\n", successCount, len(fx.Attendance))
}
