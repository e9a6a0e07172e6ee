package apperrors

import "errors"

var ErrTokenNotFound = errors.New("invalid or expired token")
var ErrAlreadyCast = errors.New("vote has already been cast")
var ErrDuplicateToken = errors.New("token already exists")

var ErrApplicationNotFound = errors.New("application not found")
var ErrAttachmentNotFound = errors.New("attachment not found")

var ErrNoBoardMembers = errors.New("no board members configured")
var ErrNegativeCosts = errors.New("costs must not be negative")
