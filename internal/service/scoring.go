package service

import (
	"learnhub_backend/internal/model"
	"strings"
)

// scoreFunc 按题型计算单次作答得分，纯函数，无副作用
type scoreFunc func(exercise *model.Exercise, answer string) float64

var scorers = map[model.ExerciseType]scoreFunc{
	model.MultipleChoice: scoreMultipleChoice,
	model.TrueFalse:      scoreTrueFalse,
	model.ShortAnswer:    scoreShortAnswer,
	model.Practical:      scorePractical,
}

// ScoreExercise 计算提交答案的得分。任何题型都没有部分得分。
func ScoreExercise(exercise *model.Exercise, answer string) float64 {
	if fn, ok := scorers[exercise.Type]; ok {
		return fn(exercise, answer)
	}
	return 0
}

// 选项文本精确匹配，命中且 IsCorrect 为真才得分；未命中任何选项记 0 分，不算错误
func scoreMultipleChoice(exercise *model.Exercise, answer string) float64 {
	for _, opt := range exercise.Options {
		if opt.Text == answer {
			if opt.IsCorrect {
				return exercise.Points
			}
			return 0
		}
	}
	return 0
}

// 区分大小写的精确比较
func scoreTrueFalse(exercise *model.Exercise, answer string) float64 {
	if answer == exercise.CorrectAnswer {
		return exercise.Points
	}
	return 0
}

// 忽略大小写，不做空白裁剪
func scoreShortAnswer(exercise *model.Exercise, answer string) float64 {
	if strings.EqualFold(answer, exercise.CorrectAnswer) {
		return exercise.Points
	}
	return 0
}

// 实操题提交时恒为 0 分，讲师通过人工评分接口给分
func scorePractical(_ *model.Exercise, _ string) float64 {
	return 0
}
