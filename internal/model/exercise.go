package model

type ExerciseType string

const (
	MultipleChoice ExerciseType = "multiple_choice"
	TrueFalse      ExerciseType = "true_false"
	ShortAnswer    ExerciseType = "short_answer"
	Practical      ExerciseType = "practical"
)

// swagger:model Exercise
type Exercise struct {
	BaseModel
	Title       string       `gorm:"size:200;not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	Question    string       `gorm:"type:text;not null" json:"question"`
	Type        ExerciseType `gorm:"type:enum('multiple_choice','true_false','short_answer','practical');not null" json:"type"`
	// 选择题选项，其他题型为空
	Options []ExerciseOption `gorm:"constraint:OnDelete:CASCADE" json:"options,omitempty"`
	// true_false / short_answer 的标准答案，practical 无标准答案
	CorrectAnswer string  `gorm:"size:255" json:"-"`
	Points        float64 `gorm:"default:1" json:"points"`
	// 练习创建后所属课程不可变更
	CourseID uint  `gorm:"not null;index" json:"courseId"`
	TopicID  *uint `gorm:"index" json:"topicId,omitempty"`
}

func (Exercise) TableName() string {
	return "exercises"
}

// swagger:model ExerciseOption
type ExerciseOption struct {
	ID         uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ExerciseID uint   `gorm:"not null;index" json:"-"`
	Text       string `gorm:"size:255;not null" json:"text"`
	IsCorrect  bool   `gorm:"default:false" json:"-"`
	Position   int    `gorm:"default:0" json:"position"`
}

func (ExerciseOption) TableName() string {
	return "exercise_options"
}
