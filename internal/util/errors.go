package util

import "errors"

var (
	ErrUserNotFound         = errors.New("User not found")
	ErrEmailRegistered      = errors.New("Email already exists")
	ErrInvalidCredentials   = errors.New("Invalid credentials")
	ErrWrongPassword        = errors.New("Current password is incorrect")
	ErrPasswordTooLong      = errors.New("Password must be at most 72 bytes")
	ErrVideoNotFound        = errors.New("Video not found")
	ErrVideoFileRequired    = errors.New("Video file required")
	ErrVideoTooLarge        = errors.New("Video file exceeds 5GB limit")
	ErrInvalidVideoContent  = errors.New("Uploaded file is not a video")
	ErrSearchQueryRequired  = errors.New("Search query required")
	ErrScoreFieldsRequired  = errors.New("All fields required")
	ErrInvalidPeriod        = errors.New("Invalid date format. Use YYYY-MM")
	ErrScoreOutOfRange      = errors.New("Scores must be between 0 and 100")
	ErrScoreDateExists      = errors.New("Score for this date already exists")
	ErrScoreHistoryNotFound = errors.New("Score history not found")
	ErrInvalidProgress      = errors.New("Progress must be between 0 and 100")
	ErrDuplicateKey         = errors.New("duplicate key")
)
