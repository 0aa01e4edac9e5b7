package domain

import "errors"

var (
	ErrProfileNotFound = errors.New("author profile not found")
	ErrScoreNotFound   = errors.New("score record not found")
)
