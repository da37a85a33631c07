package services

import (
	"sync"
	"testing"
	"time"

	"github.com/Shaurya01836/Hackzen-sub006/internal/apperr"
	"github.com/Shaurya01836/Hackzen-sub006/internal/models"

	"gorm.io/gorm"
)

// progressionFixture seeds a two-round hackathon with three scored
// submissions in round 0 averaging 9, 7 and 5, plus services wired to
// the same database.
type progressionFixture struct {
	db          *gorm.DB
	hackathon   *models.Hackathon
	submissions []*models.Submission
	progression *ProgressionService
	judging     *JudgingService
}

func newProgressionFixture(t *testing.T, roundCount int) *progressionFixture {
	t.Helper()
	db := newTestDB(t)
	hackathon := seedHackathon(t, db, roundCount, false)
	seedCriteria(t, db, hackathon, 0,
		models.Criterion{Name: "Quality", MaxScore: 10, Weight: 1},
	)

	judging := NewJudgingService(db, NewCriteriaService(db))
	base := time.Now().Add(-3 * time.Hour)
	var submissions []*models.Submission
	for i, raw := range []float64{9, 7, 5} {
		submission := seedSubmission(t, db, hackathon, 0, uint(i+1), base.Add(time.Duration(i)*time.Minute))
		if _, err := judging.SubmitScore(1, submission.ID, map[string]float64{"Quality": raw}, ""); err != nil {
			t.Fatalf("score submission %d: %v", i, err)
		}
		submissions = append(submissions, submission)
	}

	return &progressionFixture{
		db:          db,
		hackathon:   hackathon,
		submissions: submissions,
		progression: NewProgressionService(db, nil),
		judging:     judging,
	}
}

func TestShortlistCutoffCount(t *testing.T) {
	f := newProgressionFixture(t, 2)

	result, err := f.progression.Shortlist(f.hackathon.ID, 0, Cutoff{Count: 2}, false)
	if err != nil {
		t.Fatalf("shortlist: %v", err)
	}

	if !result.Changed {
		t.Error("first run should report changes")
	}
	if len(result.Shortlisted) != 2 || len(result.Rejected) != 1 {
		t.Fatalf("expected 2 shortlisted / 1 rejected, got %d / %d",
			len(result.Shortlisted), len(result.Rejected))
	}
	if result.Shortlisted[0].AverageScore != 9 || result.Shortlisted[1].AverageScore != 7 {
		t.Errorf("shortlist not ordered by average: %g, %g",
			result.Shortlisted[0].AverageScore, result.Shortlisted[1].AverageScore)
	}
	if result.Shortlisted[0].Rank != 1 {
		t.Errorf("top submission should have rank 1, got %d", result.Shortlisted[0].Rank)
	}

	if got := submissionStatus(t, f.db, f.submissions[0].ID); got != models.StatusShortlisted {
		t.Errorf("top submission status = %s", got)
	}
	if got := submissionStatus(t, f.db, f.submissions[2].ID); got != models.StatusRejected {
		t.Errorf("lowest submission status = %s", got)
	}
}

func TestShortlistIdempotent(t *testing.T) {
	f := newProgressionFixture(t, 2)

	if _, err := f.progression.Shortlist(f.hackathon.ID, 0, Cutoff{Count: 2}, false); err != nil {
		t.Fatalf("first shortlist: %v", err)
	}
	again, err := f.progression.Shortlist(f.hackathon.ID, 0, Cutoff{Count: 2}, false)
	if err != nil {
		t.Fatalf("second shortlist: %v", err)
	}

	if again.Changed {
		t.Error("re-running shortlisting must not change anything")
	}
	if !again.AlreadyProcessed {
		t.Error("second run should report the round as already processed")
	}

	statuses := []string{models.StatusShortlisted, models.StatusShortlisted, models.StatusRejected}
	for i, want := range statuses {
		if got := submissionStatus(t, f.db, f.submissions[i].ID); got != want {
			t.Errorf("submission %d status changed on re-run: %s != %s", i, got, want)
		}
	}
}

func TestShortlistConcurrentRunsApplyOnce(t *testing.T) {
	f := newProgressionFixture(t, 2)

	const runs = 4
	results := make([]*ShortlistResult, runs)
	errs := make([]error, runs)
	var wg sync.WaitGroup
	for i := 0; i < runs; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = f.progression.Shortlist(f.hackathon.ID, 0, Cutoff{Count: 2}, false)
		}(i)
	}
	wg.Wait()

	changed := 0
	for i := 0; i < runs; i++ {
		if errs[i] != nil {
			t.Fatalf("run %d: %v", i, errs[i])
		}
		if results[i].Changed {
			changed++
		} else if !results[i].AlreadyProcessed {
			t.Errorf("run %d neither applied changes nor saw the round as processed", i)
		}
	}
	if changed != 1 {
		t.Fatalf("expected exactly one run to apply changes, got %d", changed)
	}

	statuses := []string{models.StatusShortlisted, models.StatusShortlisted, models.StatusRejected}
	for i, want := range statuses {
		if got := submissionStatus(t, f.db, f.submissions[i].ID); got != want {
			t.Errorf("submission %d status = %s, want %s", i, got, want)
		}
	}
}

func TestShortlistRoundNotClosed(t *testing.T) {
	db := newTestDB(t)
	hackathon := seedHackathon(t, db, 1, true)
	progression := NewProgressionService(db, nil)

	_, err := progression.Shortlist(hackathon.ID, 0, Cutoff{Count: 1}, false)
	if !apperr.IsKind(err, apperr.KindRoundNotClosed) {
		t.Fatalf("expected round_not_closed, got %v", err)
	}

	// Explicit organizer override skips the deadline check.
	if _, err := progression.Shortlist(hackathon.ID, 0, Cutoff{Count: 1}, true); err != nil {
		t.Fatalf("override shortlist: %v", err)
	}
}

func TestShortlistLeavesUnscoredAlone(t *testing.T) {
	f := newProgressionFixture(t, 2)
	unscored := seedSubmission(t, f.db, f.hackathon, 0, 9, time.Now().Add(-time.Hour))

	result, err := f.progression.Shortlist(f.hackathon.ID, 0, Cutoff{Count: 2}, false)
	if err != nil {
		t.Fatalf("shortlist: %v", err)
	}

	if len(result.Unscored) != 1 || result.Unscored[0].ID != unscored.ID {
		t.Fatalf("unscored submission should be reported, got %d entries", len(result.Unscored))
	}
	if got := submissionStatus(t, f.db, unscored.ID); got != models.StatusSubmitted {
		t.Errorf("unscored submission must stay submitted, got %s", got)
	}
}

func TestShortlistTieBreakEarliestSubmission(t *testing.T) {
	db := newTestDB(t)
	hackathon := seedHackathon(t, db, 1, false)
	seedCriteria(t, db, hackathon, 0,
		models.Criterion{Name: "Quality", MaxScore: 10, Weight: 1},
	)
	judging := NewJudgingService(db, NewCriteriaService(db))

	base := time.Now().Add(-3 * time.Hour)
	late := seedSubmission(t, db, hackathon, 0, 2, base.Add(time.Minute))
	early := seedSubmission(t, db, hackathon, 0, 1, base)
	for _, submission := range []*models.Submission{late, early} {
		if _, err := judging.SubmitScore(1, submission.ID, map[string]float64{"Quality": 8}, ""); err != nil {
			t.Fatalf("score: %v", err)
		}
	}

	progression := NewProgressionService(db, nil)
	result, err := progression.Shortlist(hackathon.ID, 0, Cutoff{Count: 1}, false)
	if err != nil {
		t.Fatalf("shortlist: %v", err)
	}

	if result.Shortlisted[0].Submission.ID != early.ID {
		t.Error("tie should go to the earlier submission")
	}
	if got := submissionStatus(t, db, late.ID); got != models.StatusRejected {
		t.Errorf("later tied submission should be rejected, got %s", got)
	}
}

func TestShortlistMinScoreThreshold(t *testing.T) {
	f := newProgressionFixture(t, 2)

	minScore := 6.5
	result, err := f.progression.Shortlist(f.hackathon.ID, 0, Cutoff{MinScore: &minScore}, false)
	if err != nil {
		t.Fatalf("shortlist: %v", err)
	}

	if len(result.Shortlisted) != 2 || len(result.Rejected) != 1 {
		t.Fatalf("threshold 6.5 over averages 9/7/5 should keep two, got %d / %d",
			len(result.Shortlisted), len(result.Rejected))
	}
}

func TestShortlistRequiresCutoff(t *testing.T) {
	f := newProgressionFixture(t, 2)

	_, err := f.progression.Shortlist(f.hackathon.ID, 0, Cutoff{}, false)
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("expected validation, got %v", err)
	}
}

func TestAdvanceCreatesNextRoundSubmissions(t *testing.T) {
	f := newProgressionFixture(t, 2)

	if _, err := f.progression.Shortlist(f.hackathon.ID, 0, Cutoff{Count: 2}, false); err != nil {
		t.Fatalf("shortlist: %v", err)
	}
	result, err := f.progression.Advance(f.hackathon.ID, 0)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}

	if !result.Changed || len(result.Advanced) != 2 {
		t.Fatalf("expected 2 advanced submissions, got %d", len(result.Advanced))
	}
	for _, next := range result.Advanced {
		if next.RoundIndex != 1 {
			t.Errorf("advanced submission in round %d", next.RoundIndex)
		}
		if next.Status != models.StatusSubmitted {
			t.Errorf("advanced submission status = %s", next.Status)
		}
		if next.AdvancedFromID == nil {
			t.Error("advanced submission should link its source record")
		}
		if next.ProblemStatement.Statement == "" {
			t.Error("problem statement should carry forward")
		}
	}
	if got := submissionStatus(t, f.db, f.submissions[0].ID); got != models.StatusAdvanced {
		t.Errorf("source submission status = %s", got)
	}

	// Second run finds nothing shortlisted.
	again, err := f.progression.Advance(f.hackathon.ID, 0)
	if err != nil {
		t.Fatalf("second advance: %v", err)
	}
	if again.Changed {
		t.Error("re-running advancement must be a no-op")
	}

	var count int64
	f.db.Model(&models.Submission{}).Where("round_index = ?", 1).Count(&count)
	if count != 2 {
		t.Errorf("expected 2 round-1 submissions after re-run, found %d", count)
	}
}

func TestAdvanceRefusedOnTerminalRound(t *testing.T) {
	f := newProgressionFixture(t, 1)

	_, err := f.progression.Advance(f.hackathon.ID, 0)
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("expected validation, got %v", err)
	}
}

func TestFinalizeAssignsPositions(t *testing.T) {
	f := newProgressionFixture(t, 1)

	result, err := f.progression.Finalize(f.hackathon.ID, 2, false)
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}

	if len(result.Winners) != 2 {
		t.Fatalf("expected 2 winners, got %d", len(result.Winners))
	}
	for i, winner := range result.Winners {
		if winner.Position != i+1 {
			t.Errorf("winner %d has position %d", i, winner.Position)
		}
	}
	if result.Winners[0].SubmissionID != f.submissions[0].ID {
		t.Error("highest average should take position 1")
	}
	if got := submissionStatus(t, f.db, f.submissions[0].ID); got != models.StatusWinner {
		t.Errorf("winning submission status = %s", got)
	}
	if got := submissionStatus(t, f.db, f.submissions[2].ID); got != models.StatusSubmitted {
		t.Errorf("non-winning submission should be untouched, got %s", got)
	}
}

func TestFinalizeIsOneShot(t *testing.T) {
	f := newProgressionFixture(t, 1)

	first, err := f.progression.Finalize(f.hackathon.ID, 1, false)
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}

	_, err = f.progression.Finalize(f.hackathon.ID, 1, false)
	if !apperr.IsKind(err, apperr.KindAlreadyFinalized) {
		t.Fatalf("expected already_finalized, got %v", err)
	}

	var winners []models.Winner
	f.db.Where("hackathon_id = ?", f.hackathon.ID).Find(&winners)
	if len(winners) != len(first.Winners) {
		t.Errorf("winner records changed by failed re-finalization: %d != %d",
			len(winners), len(first.Winners))
	}
}

func TestFinalizeWithoutScores(t *testing.T) {
	db := newTestDB(t)
	hackathon := seedHackathon(t, db, 1, false)
	seedSubmission(t, db, hackathon, 0, 1, time.Now().Add(-2*time.Hour))
	progression := NewProgressionService(db, nil)

	_, err := progression.Finalize(hackathon.ID, 1, false)
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("expected validation when nothing is scored, got %v", err)
	}
}

func TestResetFinalization(t *testing.T) {
	f := newProgressionFixture(t, 1)

	if _, err := f.progression.Finalize(f.hackathon.ID, 1, false); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if err := f.progression.ResetFinalization(f.hackathon.ID); err != nil {
		t.Fatalf("reset: %v", err)
	}

	var count int64
	f.db.Model(&models.Winner{}).Where("hackathon_id = ?", f.hackathon.ID).Count(&count)
	if count != 0 {
		t.Errorf("winner records should be deleted, found %d", count)
	}
	if got := submissionStatus(t, f.db, f.submissions[0].ID); got != models.StatusSubmitted {
		t.Errorf("winner submission should return to submitted, got %s", got)
	}

	// The one-shot guard re-arms after the reset.
	if _, err := f.progression.Finalize(f.hackathon.ID, 1, false); err != nil {
		t.Fatalf("re-finalize after reset: %v", err)
	}
}

func TestResetRestoresPriorStatus(t *testing.T) {
	f := newProgressionFixture(t, 1)

	if _, err := f.progression.Shortlist(f.hackathon.ID, 0, Cutoff{Count: 2}, false); err != nil {
		t.Fatalf("shortlist: %v", err)
	}
	if _, err := f.progression.Finalize(f.hackathon.ID, 1, false); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if got := submissionStatus(t, f.db, f.submissions[0].ID); got != models.StatusWinner {
		t.Fatalf("top submission status = %s", got)
	}

	if err := f.progression.ResetFinalization(f.hackathon.ID); err != nil {
		t.Fatalf("reset: %v", err)
	}

	// The winner was shortlisted before finalization, not submitted.
	if got := submissionStatus(t, f.db, f.submissions[0].ID); got != models.StatusShortlisted {
		t.Errorf("reset should restore shortlisted, got %s", got)
	}
	if got := submissionStatus(t, f.db, f.submissions[1].ID); got != models.StatusShortlisted {
		t.Errorf("runner-up should stay shortlisted, got %s", got)
	}
}

func TestResetWithoutFinalization(t *testing.T) {
	f := newProgressionFixture(t, 1)

	err := f.progression.ResetFinalization(f.hackathon.ID)
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}
