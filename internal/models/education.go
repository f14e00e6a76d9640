package models

// ContentBlock is one unit of lesson content inside a module. The Type
// field selects which of the optional fields are meaningful (text, video,
// quiz, interactive, calculator).
type ContentBlock struct {
	Type      string         `json:"type"`
	Title     string         `json:"title,omitempty"`
	Content   string         `json:"content,omitempty"`
	URL       string         `json:"url,omitempty"`
	Duration  string         `json:"duration,omitempty"`
	Component string         `json:"component,omitempty"`
	Questions []QuizQuestion `json:"questions,omitempty"`
}

// QuizQuestion is a multiple-choice quiz entry. Correct is the index
// into Options of the right answer.
type QuizQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Correct  int      `json:"correct"`
}

// Module is one financial literacy module in a given language.
type Module struct {
	ID          int64          `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Content     []ContentBlock `json:"content"`
}

// ProgressUpdate is a single progress report submitted by the client
// after finishing a lesson.
type ProgressUpdate struct {
	ModuleID  int64 `json:"moduleId"`
	LessonID  int64 `json:"lessonId"`
	Completed bool  `json:"completed"`
	Score     int   `json:"score"`
}

// Progress tracks a user's advancement through the education modules.
type Progress struct {
	CompletedModules []int64  `json:"completedModules"`
	CurrentModule    int64    `json:"currentModule"`
	TotalScore       int      `json:"totalScore"`
	Certificates     []string `json:"certificates"`
	StreakDays       int      `json:"streakDays"`
}
