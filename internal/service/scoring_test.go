package service

import (
	"testing"

	"learnhub_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func mcExercise(points float64) *model.Exercise {
	return &model.Exercise{
		BaseModel: model.BaseModel{ID: 1},
		Type:      model.MultipleChoice,
		Points:    points,
		Options: []model.ExerciseOption{
			{Text: "A", IsCorrect: false, Position: 0},
			{Text: "B", IsCorrect: true, Position: 1},
			{Text: "B", IsCorrect: false, Position: 2},
		},
	}
}

func TestScoreMultipleChoice(t *testing.T) {
	ex := mcExercise(5)

	assert.Equal(t, 5.0, ScoreExercise(ex, "B"), "correct option earns full points")
	assert.Equal(t, 0.0, ScoreExercise(ex, "A"), "wrong option earns zero")
	assert.Equal(t, 0.0, ScoreExercise(ex, "C"), "answer matching no option earns zero")
	assert.Equal(t, 0.0, ScoreExercise(ex, "b"), "option match is case sensitive")
}

func TestScoreMultipleChoiceFirstMatchWins(t *testing.T) {
	// 两个同文本选项，第一个命中的决定结果
	ex := &model.Exercise{
		Type:   model.MultipleChoice,
		Points: 3,
		Options: []model.ExerciseOption{
			{Text: "X", IsCorrect: false},
			{Text: "X", IsCorrect: true},
		},
	}
	assert.Equal(t, 0.0, ScoreExercise(ex, "X"))
}

func TestScoreTrueFalse(t *testing.T) {
	ex := &model.Exercise{
		Type:          model.TrueFalse,
		Points:        2,
		CorrectAnswer: "true",
	}

	assert.Equal(t, 2.0, ScoreExercise(ex, "true"))
	assert.Equal(t, 0.0, ScoreExercise(ex, "false"))
	assert.Equal(t, 0.0, ScoreExercise(ex, "True"), "true/false comparison is case sensitive")
	assert.Equal(t, 0.0, ScoreExercise(ex, " true"), "no whitespace trimming")
}

func TestScoreShortAnswer(t *testing.T) {
	ex := &model.Exercise{
		Type:          model.ShortAnswer,
		Points:        4,
		CorrectAnswer: "Goroutine",
	}

	assert.Equal(t, 4.0, ScoreExercise(ex, "Goroutine"))
	assert.Equal(t, 4.0, ScoreExercise(ex, "goroutine"), "short answer ignores case")
	assert.Equal(t, 4.0, ScoreExercise(ex, "GOROUTINE"))
	assert.Equal(t, 0.0, ScoreExercise(ex, "Goroutine "), "no whitespace trimming")
	assert.Equal(t, 0.0, ScoreExercise(ex, "Channel"))
}

func TestScorePractical(t *testing.T) {
	ex := &model.Exercise{
		Type:          model.Practical,
		Points:        10,
		CorrectAnswer: "anything",
	}

	assert.Equal(t, 0.0, ScoreExercise(ex, "anything"), "practical submissions always score zero until graded")
	assert.Equal(t, 0.0, ScoreExercise(ex, ""))
}

func TestScoreUnknownType(t *testing.T) {
	ex := &model.Exercise{Type: model.ExerciseType("essay"), Points: 7}
	assert.Equal(t, 0.0, ScoreExercise(ex, "whatever"))
}
