package services

import (
	"testing"
	"time"

	"github.com/Shaurya01836/Hackzen-sub006/internal/apperr"
	"github.com/Shaurya01836/Hackzen-sub006/internal/models"
)

func validHackathonInput(roundCount int) HackathonInput {
	in := HackathonInput{
		Title:          "Spring Hack",
		SubmissionType: models.SubmissionTypeSingleProject,
		RoundMode:      models.RoundModeSingle,
		WinnerCount:    3,
	}
	if roundCount > 1 {
		in.RoundMode = models.RoundModeMulti
	}
	start := time.Now()
	for i := 0; i < roundCount; i++ {
		in.Rounds = append(in.Rounds, RoundInput{
			Name:      "Round",
			Type:      models.RoundTypeProject,
			StartDate: start.Add(time.Duration(i) * 48 * time.Hour),
			EndDate:   start.Add(time.Duration(i)*48*time.Hour + 24*time.Hour),
		})
	}
	return in
}

func TestCreateHackathonIndexesRounds(t *testing.T) {
	db := newTestDB(t)
	service := NewHackathonService(db)

	created, err := service.Create(validHackathonInput(3))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := service.Get(created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Rounds) != 3 {
		t.Fatalf("expected 3 rounds, got %d", len(got.Rounds))
	}
	for i, round := range got.Rounds {
		if round.Index != i {
			t.Errorf("round %d has index %d", i, round.Index)
		}
	}
	if got.TerminalRoundIndex() != 2 {
		t.Errorf("terminal round index = %d", got.TerminalRoundIndex())
	}
}

func TestCreateHackathonInvalidSubmissionType(t *testing.T) {
	service := NewHackathonService(newTestDB(t))

	in := validHackathonInput(1)
	in.SubmissionType = "triple_project"
	if _, err := service.Create(in); !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("expected validation, got %v", err)
	}
}

func TestCreateHackathonSingleModeRoundCount(t *testing.T) {
	service := NewHackathonService(newTestDB(t))

	in := validHackathonInput(2)
	in.RoundMode = models.RoundModeSingle
	if _, err := service.Create(in); !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("expected validation, got %v", err)
	}
}

func TestCreateHackathonInvalidRoundWindow(t *testing.T) {
	service := NewHackathonService(newTestDB(t))

	in := validHackathonInput(1)
	in.Rounds[0].EndDate = in.Rounds[0].StartDate.Add(-time.Hour)
	if _, err := service.Create(in); !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("expected validation, got %v", err)
	}
}

func TestCreateHackathonInvalidRoundType(t *testing.T) {
	service := NewHackathonService(newTestDB(t))

	in := validHackathonInput(1)
	in.Rounds[0].Type = "karaoke"
	if _, err := service.Create(in); !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("expected validation, got %v", err)
	}
}

func TestGetHackathonNotFound(t *testing.T) {
	service := NewHackathonService(newTestDB(t))

	if _, err := service.Get(99); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}
