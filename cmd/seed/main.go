package main

import (
	"context"
	"fmt"
	"time"

	"github.com/engivid/engivid-backend/internal/config"
	"github.com/engivid/engivid-backend/internal/database"
	"github.com/engivid/engivid-backend/internal/logger"
	"github.com/engivid/engivid-backend/internal/model"
	"github.com/engivid/engivid-backend/internal/repository"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	branchRepo := repository.NewBranchRepository(pool)
	semesterRepo := repository.NewSemesterRepository(pool)
	subjectRepo := repository.NewSubjectRepository(pool)
	lecturerRepo := repository.NewLecturerRepository(pool)
	videoRepo := repository.NewVideoRepository(pool)

	fmt.Println("=== Seeding Catalog ===")

	// ─── Branches ──────────────────────────────────────────────────────
	branches := []model.Branch{
		{Name: "Computer Science Engineering", Code: "CSE", IsActive: true, ComingSoon: false},
		{Name: "Electronics & Communication Engineering", Code: "ECE", IsActive: false, ComingSoon: true},
		{Name: "Mechanical Engineering", Code: "ME", IsActive: false, ComingSoon: true},
		{Name: "Civil Engineering", Code: "CE", IsActive: false, ComingSoon: true},
		{Name: "Electrical Engineering", Code: "EE", IsActive: false, ComingSoon: true},
	}

	var cse model.Branch
	for i := range branches {
		if err := branchRepo.Upsert(ctx, &branches[i]); err != nil {
			log.Fatal().Err(err).Str("code", branches[i].Code).Msg("Failed to seed branch")
		}
		if branches[i].Code == "CSE" {
			cse = branches[i]
		}
	}
	fmt.Printf("Branches seeded: %d\n", len(branches))

	// ─── Semesters (CSE 1..8) ──────────────────────────────────────────
	var firstSemester *model.Semester
	for number := 1; number <= 8; number++ {
		semester, err := semesterRepo.Upsert(ctx, cse.ID, number)
		if err != nil {
			log.Fatal().Err(err).Int("number", number).Msg("Failed to seed semester")
		}
		if number == 1 {
			firstSemester = semester
		}
	}
	fmt.Println("Semesters seeded: 8")

	// ─── Semester 1 Subjects ───────────────────────────────────────────
	subjects := []model.Subject{
		{
			Name:        "Engineering Mathematics I",
			Description: "Introduction to calculus, differential equations, and linear algebra",
			SemesterID:  firstSemester.ID,
			BranchID:    cse.ID,
		},
		{
			Name:        "Physics",
			Description: "Mechanics, electromagnetism, and modern physics",
			SemesterID:  firstSemester.ID,
			BranchID:    cse.ID,
		},
		{
			Name:        "Introduction to Computing",
			Description: "Basic computer organization, algorithms, and programming concepts",
			SemesterID:  firstSemester.ID,
			BranchID:    cse.ID,
		},
	}
	for i := range subjects {
		if err := subjectRepo.Upsert(ctx, &subjects[i]); err != nil {
			log.Fatal().Err(err).Str("name", subjects[i].Name).Msg("Failed to seed subject")
		}
	}
	fmt.Printf("Subjects seeded: %d\n", len(subjects))

	// ─── Lecturers ─────────────────────────────────────────────────────
	lecturers := []model.Lecturer{
		{Name: "Dr. John Smith", Title: "Professor", Institution: "MIT"},
		{Name: "Dr. Sarah Johnson", Title: "Associate Professor", Institution: "Stanford University"},
	}

	existing, err := lecturerRepo.GetAll(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to list lecturers")
	}
	byName := make(map[string]model.Lecturer, len(existing))
	for _, l := range existing {
		byName[l.Name+"|"+l.Institution] = l
	}

	for i := range lecturers {
		key := lecturers[i].Name + "|" + lecturers[i].Institution
		if found, ok := byName[key]; ok {
			lecturers[i] = found
			continue
		}
		if err := lecturerRepo.Create(ctx, &lecturers[i]); err != nil {
			log.Fatal().Err(err).Str("name", lecturers[i].Name).Msg("Failed to seed lecturer")
		}
	}
	fmt.Printf("Lecturers seeded: %d\n", len(lecturers))

	// ─── Example Videos ────────────────────────────────────────────────
	now := time.Now().UTC()
	videos := []model.Video{
		{
			Title:       "Introduction to Calculus",
			Description: strPtr("Learn the basics of calculus, limits, derivatives, and integrals"),
			YouTubeID:   "dQw4w9WgXcQ",
			Duration:    3600,
			SubjectID:   subjects[0].ID,
			LecturerID:  lecturers[0].ID,
			PublishedAt: &now,
		},
		{
			Title:       "Newton's Laws of Motion",
			Description: strPtr("Detailed explanation of Newton's three laws of motion with examples"),
			YouTubeID:   "XGgus_oEVq4",
			Duration:    2700,
			SubjectID:   subjects[1].ID,
			LecturerID:  lecturers[1].ID,
			PublishedAt: &now,
		},
	}

	seeded := 0
	for i := range videos {
		current, err := videoRepo.ListBySubject(ctx, videos[i].SubjectID)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to check existing videos")
		}
		if len(current) > 0 {
			continue
		}
		if err := videoRepo.Create(ctx, &videos[i]); err != nil {
			log.Fatal().Err(err).Str("title", videos[i].Title).Msg("Failed to seed video")
		}
		seeded++
	}
	fmt.Printf("Videos seeded: %d\n", seeded)

	fmt.Println("\nSeed completed!")
}

func strPtr(s string) *string {
	return &s
}
