package model

type CourseLevel string

const (
	LevelBeginner     CourseLevel = "beginner"
	LevelIntermediate CourseLevel = "intermediate"
	LevelAdvanced     CourseLevel = "advanced"
)

// swagger:model Course
type Course struct {
	BaseModel
	Title       string      `gorm:"size:200;not null" json:"title"`
	Description string      `gorm:"type:text" json:"description"`
	// 课程创建后讲师不可变更
	InstructorID     uint        `gorm:"not null;index" json:"instructorId"`
	Instructor       *User       `gorm:"foreignKey:InstructorID" json:"instructor,omitempty"`
	Level            CourseLevel `gorm:"type:enum('beginner','intermediate','advanced');default:'beginner'" json:"level"`
	Duration         int         `gorm:"default:0" json:"duration"` // 分钟
	Topics           []Topic     `gorm:"constraint:OnDelete:CASCADE" json:"topics"`
	EnrolledStudents []User      `gorm:"many2many:course_enrollments" json:"enrolledStudents,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// Topic 课程主题，生命周期归属于课程，Position 决定顺序
// swagger:model Topic
type Topic struct {
	BaseModel
	CourseID      uint       `gorm:"not null;index" json:"courseId"`
	Title         string     `gorm:"size:200;not null" json:"title"`
	Description   string     `gorm:"type:text" json:"description"`
	VideoURL      string     `gorm:"size:255" json:"videoUrl"`
	VideoDuration float64    `gorm:"default:0" json:"videoDuration"` // 秒
	Position      int        `gorm:"default:0" json:"position"`
	Exercises     []Exercise `gorm:"foreignKey:TopicID" json:"exercises,omitempty"`
}

func (Topic) TableName() string {
	return "topics"
}

// HasTopic 判断主题是否属于该课程
func (c *Course) HasTopic(topicID uint) bool {
	for _, t := range c.Topics {
		if t.ID == topicID {
			return true
		}
	}
	return false
}
