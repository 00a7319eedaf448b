package textquality

import (
	"math"
	"strings"
	"testing"
)

func TestScoreText_SpecificAndActionable(t *testing.T) {
	// Timestamp + element + dB reference + suggestion verb
	text := "The kick at 1:30 is too loud, try reducing it by 3dB"

	score := ScoreText(text)

	if score.Specificity < 0.35 {
		t.Errorf("expected high specificity for timestamp+element+dB text, got %.2f", score.Specificity)
	}
	if score.Actionability < 0.3 {
		t.Errorf("expected high actionability for suggestion text, got %.2f", score.Actionability)
	}
}

func TestScoreText_GenericPraise(t *testing.T) {
	// Two or more generic filler phrases forfeit the actionability bonus
	text := "sounds good nice track keep it up"

	score := ScoreText(text)

	if score.Actionability != 0 {
		t.Errorf("expected 0 actionability for pure filler, got %.2f", score.Actionability)
	}
	if score.Specificity > 0.05 {
		t.Errorf("expected near-zero specificity for filler, got %.2f", score.Specificity)
	}
}

func TestScoreText_GenericOutscoredBySpecific(t *testing.T) {
	specific := ScoreText("The kick at 1:30 is too loud, try reducing it by 3dB")
	generic := ScoreText("sounds good nice track keep it up")

	if specific.Overall <= generic.Overall {
		t.Errorf("expected specific text (%.2f) to outscore generic text (%.2f)",
			specific.Overall, generic.Overall)
	}
}

func TestScoreText_OverallIsWeightedComposite(t *testing.T) {
	texts := []string{
		"",
		"ok",
		"The kick at 1:30 is too loud, try reducing it by 3dB",
		"Try cutting 200hz on the bass because the low end is muddy compared to a reference track. Consider sidechain compression so that the kick punches through the mix.",
		"sounds good nice track keep it up",
	}

	for _, text := range texts {
		score := ScoreText(text)
		want := score.Specificity*0.35 + score.Actionability*0.40 + score.TechnicalDepth*0.25
		if math.Abs(score.Overall-want) > 1e-9 {
			t.Errorf("overall %.6f != weighted composite %.6f for %q", score.Overall, want, text)
		}
	}
}

func TestScoreText_AllScoresInRange(t *testing.T) {
	texts := []string{
		"",
		"   ",
		"x",
		strings.Repeat("reverb delay chorus kick snare vocal eq sidechain compression lufs ", 20),
		"0:15 1:30 2:45 3:10 timestamps everywhere 100hz 5khz -3dB 12 dB",
		"Try try try consider maybe boost cut add remove because since so that compared to similar to",
	}

	for _, text := range texts {
		score := ScoreText(text)
		for name, v := range map[string]float64{
			"specificity":    score.Specificity,
			"actionability":  score.Actionability,
			"technicalDepth": score.TechnicalDepth,
			"overall":        score.Overall,
		} {
			if v < 0 || v > 1 {
				t.Errorf("%s out of [0,1] for %q: %.4f", name, text, v)
			}
		}
	}
}

func TestScoreText_EmptyYieldsZero(t *testing.T) {
	for _, text := range []string{"", "  ", "hey"} {
		score := ScoreText(text)
		if score.Specificity != 0 || score.Actionability != 0 || score.TechnicalDepth != 0 || score.Overall != 0 {
			t.Errorf("expected all-zero score for near-empty text %q, got %+v", text, score)
		}
	}
}

func TestScoreText_TwoTimestampsBeatOne(t *testing.T) {
	one := ScoreText("The drop at 1:30 feels weak and needs work")
	two := ScoreText("The drop at 1:30 feels weak and 2:45 needs work")

	if two.Specificity <= one.Specificity {
		t.Errorf("expected two timestamps (%.3f) to outscore one (%.3f)",
			two.Specificity, one.Specificity)
	}
}

func TestScoreText_TechnicalVocabulary(t *testing.T) {
	deep := ScoreText("The low end is muddy, the transient attack on the kick needs compression, and the stereo imaging collapses in mono. Check your gain staging and LUFS targets.")
	shallow := ScoreText("I enjoyed listening to this one on my drive home today")

	if deep.TechnicalDepth <= shallow.TechnicalDepth {
		t.Errorf("expected technical text (%.3f) to outscore casual text (%.3f)",
			deep.TechnicalDepth, shallow.TechnicalDepth)
	}
	if deep.TechnicalDepth < 0.5 {
		t.Errorf("expected technical depth >= 0.5 for production-heavy text, got %.3f", deep.TechnicalDepth)
	}
}

func TestScoreText_Deterministic(t *testing.T) {
	text := "Try cutting 200hz on the bass because the low end is muddy. The chorus at 1:15 could use more width."

	first := ScoreText(text)
	for i := 0; i < 10; i++ {
		if got := ScoreText(text); got != first {
			t.Fatalf("non-deterministic score: %+v vs %+v", got, first)
		}
	}
}

func TestScoreReview_SkipsEmptyFields(t *testing.T) {
	result := ScoreReview(map[string]string{
		"bestPart":    "The kick at 1:30 is too loud, try reducing it by 3dB",
		"weakestPart": "",
		"notes":       "   ",
	})

	if len(result.Fields) != 1 {
		t.Fatalf("expected 1 scored field, got %d", len(result.Fields))
	}
	if _, ok := result.Fields["bestPart"]; !ok {
		t.Error("expected bestPart to be scored")
	}

	// Single scored field: composites equal that field's score
	score := result.Fields["bestPart"]
	if math.Abs(result.CompositeOverall-score.Overall) > 1e-9 {
		t.Errorf("composite %.4f != single field score %.4f", result.CompositeOverall, score.Overall)
	}
}

func TestScoreReview_AllEmpty(t *testing.T) {
	result := ScoreReview(map[string]string{"bestPart": "", "weakestPart": " "})

	if len(result.Fields) != 0 {
		t.Errorf("expected no scored fields, got %d", len(result.Fields))
	}
	if result.CompositeOverall != 0 || result.CompositeSpecificity != 0 {
		t.Errorf("expected zero composites for empty review, got %+v", result)
	}
}

func TestScoreReview_MeansAcrossFields(t *testing.T) {
	result := ScoreReview(map[string]string{
		"bestPart":    "The kick at 1:30 is too loud, try reducing it by 3dB",
		"weakestPart": "sounds good nice track keep it up",
	})

	if len(result.Fields) != 2 {
		t.Fatalf("expected 2 scored fields, got %d", len(result.Fields))
	}

	a := result.Fields["bestPart"]
	b := result.Fields["weakestPart"]
	wantOverall := (a.Overall + b.Overall) / 2
	if math.Abs(result.CompositeOverall-wantOverall) > 1e-9 {
		t.Errorf("composite overall %.4f != mean %.4f", result.CompositeOverall, wantOverall)
	}
}
