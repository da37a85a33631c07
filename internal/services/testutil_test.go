package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/Shaurya01836/Hackzen-sub006/internal/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	err = db.AutoMigrate(
		&models.Hackathon{},
		&models.Round{},
		&models.Criterion{},
		&models.Submission{},
		&models.Score{},
		&models.AggregateResult{},
		&models.Winner{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// seedHackathon creates a hackathon with the given number of rounds.
// Open rounds end an hour from now; closed rounds ended an hour ago.
func seedHackathon(t *testing.T, db *gorm.DB, roundCount int, open bool) *models.Hackathon {
	t.Helper()

	end := time.Now().Add(time.Hour)
	if !open {
		end = time.Now().Add(-time.Hour)
	}

	roundMode := models.RoundModeSingle
	if roundCount > 1 {
		roundMode = models.RoundModeMulti
	}

	hackathon := models.Hackathon{
		Title:          "Test Hackathon",
		SubmissionType: models.SubmissionTypeSingleProject,
		RoundMode:      roundMode,
		WinnerCount:    1,
	}
	for i := 0; i < roundCount; i++ {
		hackathon.Rounds = append(hackathon.Rounds, models.Round{
			Index:     i,
			Name:      fmt.Sprintf("Round %d", i+1),
			Type:      models.RoundTypeProject,
			StartDate: time.Now().Add(-2 * time.Hour),
			EndDate:   end,
		})
	}
	if err := db.Create(&hackathon).Error; err != nil {
		t.Fatalf("seed hackathon: %v", err)
	}
	return &hackathon
}

func seedCriteria(t *testing.T, db *gorm.DB, hackathon *models.Hackathon, roundIndex int, criteria ...models.Criterion) {
	t.Helper()
	for i := range criteria {
		criteria[i].HackathonID = hackathon.ID
		criteria[i].RoundIndex = roundIndex
		criteria[i].SubmissionType = hackathon.SubmissionType
		if err := db.Create(&criteria[i]).Error; err != nil {
			t.Fatalf("seed criterion: %v", err)
		}
	}
}

// seedSubmission inserts directly, bypassing the deadline check, so
// closed-round scenarios can still be populated.
func seedSubmission(t *testing.T, db *gorm.DB, hackathon *models.Hackathon, roundIndex int, ownerID uint, submittedAt time.Time) *models.Submission {
	t.Helper()
	submission := models.Submission{
		PublicID:    uuid.NewString(),
		HackathonID: hackathon.ID,
		RoundIndex:  roundIndex,
		OwnerType:   models.OwnerTypeParticipant,
		OwnerID:     ownerID,
		ProblemStatement: models.ProblemStatement{
			Statement: "Build something useful",
			Type:      models.ProblemTypeText,
		},
		Status:      models.StatusSubmitted,
		SubmittedAt: submittedAt,
	}
	if err := db.Create(&submission).Error; err != nil {
		t.Fatalf("seed submission: %v", err)
	}
	return &submission
}

func submissionStatus(t *testing.T, db *gorm.DB, id uint) string {
	t.Helper()
	var submission models.Submission
	if err := db.First(&submission, id).Error; err != nil {
		t.Fatalf("load submission %d: %v", id, err)
	}
	return submission.Status
}
