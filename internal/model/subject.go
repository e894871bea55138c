package model

// 科目标签与视频的 subject 字段取值一致
const (
	SubjectKorean  = "국어"
	SubjectMath    = "수학"
	SubjectEnglish = "영어"
	SubjectScience = "과학"
)

// WeakScoreThreshold 低于该分数的科目视为薄弱科目
const WeakScoreThreshold = 80
